package auth

import "time"

type UserRole string

const (
	RoleClient   UserRole = "client"
	RoleOperator UserRole = "operator"
)

func (r UserRole) Valid() bool {
	return r == RoleClient || r == RoleOperator
}

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"size:20;not null"`
	Name         string    `json:"name" gorm:"size:255"`
	Phone        string    `json:"phone,omitempty" gorm:"size:32"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
