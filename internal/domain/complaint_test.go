package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidComplaintStatus(t *testing.T) {
	for _, status := range ComplaintStatuses {
		assert.True(t, ValidComplaintStatus(status))
	}
	assert.False(t, ValidComplaintStatus("Bogus"))
	assert.False(t, ValidComplaintStatus(""))
	assert.False(t, ValidComplaintStatus("pending"), "status values are case sensitive")
}

func TestValidRole(t *testing.T) {
	for _, role := range Roles {
		assert.True(t, ValidRole(role))
	}
	assert.False(t, ValidRole("SuperAdmin"))
	assert.False(t, ValidRole(""))
}

func TestSessionExpired(t *testing.T) {
	assert.False(t, Session{}.Expired(), "zero expiry means no expiry")
	assert.False(t, Session{ExpiresAt: time.Now().Add(time.Hour)}.Expired())
	assert.True(t, Session{ExpiresAt: time.Now().Add(-time.Second)}.Expired())
}
