package model

import (
	"time"

	"github.com/google/uuid"
)

var (
	// ApplicationStatusApplied indicates that the application is pending an admin decision
	ApplicationStatusApplied = "APPLIED"
	// ApplicationStatusAccepted indicates that the application has been accepted
	ApplicationStatusAccepted = "ACCEPTED"
	// ApplicationStatusRejected indicates that the application has been rejected
	ApplicationStatusRejected = "REJECTED"
)

// Application represents a job application record.
// The composite unique index on (candidate_id, job_id) enforces at most one
// application per candidate per job at the storage level.
type Application struct {
	ID uint `gorm:"primaryKey;autoIncrement;->" json:"id"`

	CandidateID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_candidate_job;<-:create" json:"candidate_id"`
	Candidate   User      `gorm:"foreignKey:CandidateID;references:ID" json:"-"`

	JobID uint `gorm:"not null;uniqueIndex:idx_applications_candidate_job;<-:create" json:"job_id"`
	Job   Job  `gorm:"foreignKey:JobID;references:ID" json:"-"`

	Status        string `gorm:"type:text;not null;default:'APPLIED';check:status IN ('APPLIED','ACCEPTED','REJECTED')" json:"status"`
	MatchingScore int    `gorm:"not null;default:0;check:matching_score >= 0 AND matching_score <= 100" json:"matching_score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Terminal reports whether the application reached a state that permits no
// further transition.
func (a *Application) Terminal() bool {
	return a.Status == ApplicationStatusAccepted || a.Status == ApplicationStatusRejected
}
