package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

func (r UserRole) Valid() bool {
	return r == Student || r == Teacher || r == Admin
}

type SubscriptionStatus string

const (
	SubscriptionNone    SubscriptionStatus = "none"
	SubscriptionActive  SubscriptionStatus = "active"
	SubscriptionExpired SubscriptionStatus = "expired"
)

// swagger:model User
type User struct {
	BaseModel
	Name               string             `gorm:"size:100;not null" json:"name"`
	Email              string             `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password           string             `gorm:"size:100;not null" json:"-"`
	Role               UserRole           `gorm:"size:20;default:'student'" json:"role"`
	IsVerified         bool               `gorm:"default:false" json:"isVerified"`
	SubscriptionStatus SubscriptionStatus `gorm:"size:20;default:'none'" json:"subscriptionStatus"`
	Disabled           bool               `gorm:"default:false" json:"disabled"`
	LastLogin          *time.Time         `json:"lastLogin,omitempty"`
}

func (User) TableName() string {
	return "users"
}
