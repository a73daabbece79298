package entity

// Role represents a user role in the system. Role is immutable after the
// user is created; there is no mutation path for RoleID.
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Users []User `gorm:"foreignKey:RoleID" json:"users,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role ID constants
const (
	RoleIDAdmin   = 1
	RoleIDDoctor  = 2
	RoleIDPatient = 3
)

// RoleNames constants
const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// RoleNames lists every legal role name, keyed for enum-filter validation.
var RoleNames = []string{RoleAdmin, RoleDoctor, RolePatient}

// RoleIDByName resolves a role name to its ID; ok is false for unknown names.
func RoleIDByName(name string) (int, bool) {
	switch name {
	case RoleAdmin:
		return RoleIDAdmin, true
	case RoleDoctor:
		return RoleIDDoctor, true
	case RolePatient:
		return RoleIDPatient, true
	}
	return 0, false
}
