package entity

import (
	"time"

	"github.com/google/uuid"
)

// ListPage holds validated pagination and sorting shared by every filtered
// query. SortBy is already resolved against the resource's allow-list by
// the parameter-parsing layer.
type ListPage struct {
	Offset    int
	Limit     int
	SortBy    string
	SortOrder string // "asc" or "desc"
}

// AppointmentFilter is a domain-level filter for querying appointments.
// DoctorID/PatientID act as scope constraints: set by the caller from the
// session, never from client input, and always AND-ed in.
type AppointmentFilter struct {
	DoctorID  *uuid.UUID
	PatientID *uuid.UUID
	Status    AppointmentStatus
	Type      AppointmentType
	NameTerms []string // each term ORs over patient/doctor first+last name, terms are AND-ed
	From      *time.Time
	To        *time.Time
	Page      ListPage
}

// UserFilter is a domain-level filter for the admin user list.
type UserFilter struct {
	RoleID    *int
	Verified  *bool
	Active    *bool
	NameTerms []string
	From      *time.Time
	To        *time.Time
	Page      ListPage
}

// DoctorFilter is a domain-level filter for the public doctor directory.
// Only active, verified doctors are returned; that constraint is applied
// by the repository, not the client.
type DoctorFilter struct {
	Specialization string
	NameTerms      []string
	Page           ListPage
}

// AuditLogFilter is a domain-level filter for the admin audit trail.
type AuditLogFilter struct {
	UserID *uuid.UUID
	Action string
	From   *time.Time
	To     *time.Time
	Page   ListPage
}
