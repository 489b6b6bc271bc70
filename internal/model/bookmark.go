package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bookmark is a link saved by a user.
type Bookmark struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID `json:"userId" gorm:"type:char(36);not null;index"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Link        string    `json:"link" gorm:"size:2048;not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (b *Bookmark) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
