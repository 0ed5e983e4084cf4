package model

import (
	"time"

	"github.com/google/uuid"
)

var (
	// JobStatusActive indicates the job is open and accepting applications
	JobStatusActive = "ACTIVE"
	// JobStatusClosed indicates the job no longer accepts applications
	JobStatusClosed = "CLOSED"
	// JobStatusDraft indicates the job is not yet published
	JobStatusDraft = "DRAFT"
)

// EditableJobInfo is part of a job posting that can be edited
type EditableJobInfo struct {
	Title      string `gorm:"type:text" json:"title"`
	Desc       string `gorm:"type:text" json:"desc"`
	Facility   string `gorm:"type:text" json:"facility"`
	Department string `gorm:"type:text" json:"department"`
	ShiftType  string `gorm:"type:text" json:"shift_type"`
	PayRate    string `gorm:"type:text" json:"pay_rate"`
	Status     string `gorm:"type:text;not null;default:'DRAFT';check:status IN ('ACTIVE','CLOSED','DRAFT')" json:"status"`
}

// Job is gorm model for store job posting data in DB
type Job struct {
	ID         uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	PostedByID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"posted_by_id"`
	PostedBy   User      `gorm:"foreignKey:PostedByID;references:ID" json:"-"`
	EditableJobInfo
	RequiredSkills []Skill       `gorm:"many2many:job_skills" json:"required_skills"`
	Shifts         []Shift       `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"shifts,omitempty"`
	Applications   []Application `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
	PostTime       time.Time     `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"post_time"`
}

// Shift is a scheduled working period attached to a job posting
type Shift struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	JobID     uint      `gorm:"not null;index" json:"job_id"`
	Date      time.Time `gorm:"type:date" json:"date"`
	StartTime string    `gorm:"type:text" json:"start_time"`
	EndTime   string    `gorm:"type:text" json:"end_time"`
}
