// Package notification appends audit-style messages for candidates whenever
// an application lifecycle event occurs.
package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/database"
	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/model"
)

// Dispatcher writes Notification rows. Lifecycle events pass their open
// transaction so the notification commits or rolls back with the event itself.
type Dispatcher struct {
	DB *database.DBinstanceStruct
}

// NewDispatcher creates a new Dispatcher backed by the given database.
func NewDispatcher(db *database.DBinstanceStruct) *Dispatcher {
	return &Dispatcher{DB: db}
}

// Applied records that the candidate submitted an application, including the
// computed matching score.
func (d *Dispatcher) Applied(tx *gorm.DB, recipientID uuid.UUID, job model.Job, score int) error {
	n := model.Notification{
		RecipientID: recipientID,
		Message: fmt.Sprintf("You applied for %q at %s. Estimated match score: %d/100.",
			job.Title, job.Facility, score),
	}
	if err := tx.Create(&n).Error; err != nil {
		return fmt.Errorf("create applied notification: %w", err)
	}
	return nil
}

// Decided records the admin's accept/reject outcome for the candidate.
func (d *Dispatcher) Decided(tx *gorm.DB, recipientID uuid.UUID, job model.Job, status string) error {
	var msg string
	switch status {
	case model.ApplicationStatusAccepted:
		msg = fmt.Sprintf("Congratulations! Your application for %q at %s was accepted.", job.Title, job.Facility)
	case model.ApplicationStatusRejected:
		msg = fmt.Sprintf("Your application for %q at %s was not successful this time.", job.Title, job.Facility)
	default:
		return fmt.Errorf("no notification for status %q", status)
	}

	n := model.Notification{
		RecipientID: recipientID,
		Message:     msg,
	}
	if err := tx.Create(&n).Error; err != nil {
		return fmt.Errorf("create decision notification: %w", err)
	}
	return nil
}

// ListForUser returns the user's notifications, newest first.
func (d *Dispatcher) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	var notifications []model.Notification
	err := d.DB.WithContext(ctx).
		Where("recipient_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}
