package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{AppointmentStatusScheduled, AppointmentStatusInProgress, true},
		{AppointmentStatusScheduled, AppointmentStatusDone, true},
		{AppointmentStatusScheduled, AppointmentStatusCancelled, true},
		{AppointmentStatusInProgress, AppointmentStatusDone, true},
		{AppointmentStatusInProgress, AppointmentStatusCancelled, true},
		{AppointmentStatusInProgress, AppointmentStatusScheduled, false},
		{AppointmentStatusDone, AppointmentStatusCancelled, false},
		{AppointmentStatusDone, AppointmentStatusScheduled, false},
		{AppointmentStatusDone, AppointmentStatusInProgress, false},
		{AppointmentStatusCancelled, AppointmentStatusScheduled, false},
		{AppointmentStatusCancelled, AppointmentStatusInProgress, false},
		{AppointmentStatusCancelled, AppointmentStatusDone, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			a := &Appointment{Status: tt.from}
			assert.Equal(t, tt.allowed, a.CanTransition(tt.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, (&Appointment{Status: AppointmentStatusScheduled}).IsTerminal())
	assert.False(t, (&Appointment{Status: AppointmentStatusInProgress}).IsTerminal())
	assert.True(t, (&Appointment{Status: AppointmentStatusDone}).IsTerminal())
	assert.True(t, (&Appointment{Status: AppointmentStatusCancelled}).IsTerminal())
}

func TestRoleIDByName(t *testing.T) {
	id, ok := RoleIDByName("doctor")
	assert.True(t, ok)
	assert.Equal(t, RoleIDDoctor, id)

	_, ok = RoleIDByName("superuser")
	assert.False(t, ok)
}
