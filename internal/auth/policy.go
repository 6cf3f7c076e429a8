package auth

import "github.com/nexus-care/complaint-service/internal/domain"

// Action identifies a complaint operation for authorization purposes.
type Action string

const (
	ActionCreateComplaint Action = "complaint.create"
	ActionListComplaints  Action = "complaint.list"
	ActionUpdateStatus    Action = "complaint.update_status"
	ActionDeleteComplaint Action = "complaint.delete"
)

// Actions lists every gated operation.
var Actions = []Action{
	ActionCreateComplaint,
	ActionListComplaints,
	ActionUpdateStatus,
	ActionDeleteComplaint,
}

// policy is the full decision table: any authenticated principal may create
// and list; only Admin may change status or delete. There is no
// ownership-based restriction.
var policy = map[domain.Role]map[Action]bool{
	domain.RoleResident: {
		ActionCreateComplaint: true,
		ActionListComplaints:  true,
	},
	domain.RoleSecurity: {
		ActionCreateComplaint: true,
		ActionListComplaints:  true,
	},
	domain.RoleMedical: {
		ActionCreateComplaint: true,
		ActionListComplaints:  true,
	},
	domain.RoleAdmin: {
		ActionCreateComplaint: true,
		ActionListComplaints:  true,
		ActionUpdateStatus:    true,
		ActionDeleteComplaint: true,
	},
}

// Allows evaluates the decision table. Unknown roles and unknown actions
// are denied.
func Allows(role domain.Role, action Action) bool {
	grants, ok := policy[role]
	if !ok {
		return false
	}
	return grants[action]
}
