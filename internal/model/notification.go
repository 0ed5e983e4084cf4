package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an append-only audit entry created as a side effect of
// application lifecycle events. Rows are never updated except for the read flag.
type Notification struct {
	ID          uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"recipient_id"`
	Recipient   User      `gorm:"foreignKey:RecipientID;references:ID" json:"-"`
	Message     string    `gorm:"type:text;not null;<-:create" json:"message"`
	Read        bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}
