package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null;size:254;column:email" json:"email"`
	Username  string    `gorm:"uniqueIndex;not null;size:150;column:username" json:"username"`
	FirstName string    `gorm:"not null;size:150;column:first_name" json:"first_name"`
	LastName  string    `gorm:"not null;size:150;column:last_name" json:"last_name"`
	Password  string    `gorm:"not null;column:password" json:"-"`
	IsStaff   bool      `gorm:"not null;default:false;column:is_staff" json:"-"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "user" }

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
