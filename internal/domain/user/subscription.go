package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription records that UserID follows AuthorID. A user can never follow themselves.
type Subscription struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscription_user_author,priority:1" json:"user_id"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_subscription_user_author,priority:2;check:chk_subscription_not_self,user_id <> author_id" json:"author_id"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (Subscription) TableName() string { return "subscription" }

func (s *Subscription) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
