package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	// RoleAdmin is the role for facility administrators who manage jobs and applicants
	RoleAdmin = "ADMIN"
	// RoleUser is the role for nurses applying to jobs
	RoleUser = "USER"
)

// User is gorm model for every account in the system, both nurses and admins
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	GoogleID  string    `gorm:"type:text;index" json:"-"`
	Name      string    `gorm:"type:text" json:"name"`
	Email     string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"type:text" json:"-"`
	Role      string    `gorm:"type:text;not null;check:role IN ('ADMIN','USER')" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Profile *NurseProfile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

// EditableNurseInfo is the part of a nurse profile that profile edits may change
type EditableNurseInfo struct {
	Specialization  string         `gorm:"type:text" json:"specialization"`
	YearsExperience int            `gorm:"not null;default:0" json:"years_experience"`
	Certifications  pq.StringArray `gorm:"type:text[]" json:"certifications"`
	PreferredShifts pq.StringArray `gorm:"type:text[]" json:"preferred_shifts"`
	PriorFacilities pq.StringArray `gorm:"type:text[]" json:"prior_facilities"`
}

// NurseProfile holds the candidate-side attributes used by the matching engine
type NurseProfile struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;references:ID" json:"-"`
	EditableNurseInfo
	Skills []Skill `gorm:"many2many:nurse_skills" json:"skills"`
}
