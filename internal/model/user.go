package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
	Master  UserRole = "master"
)

// IsPrivileged admin 与 master 拥有管理权限
func (r UserRole) IsPrivileged() bool {
	return r == Admin || r == Master
}

type SubscriptionPlan string

const (
	PlanFree    SubscriptionPlan = "free"
	PlanBasic   SubscriptionPlan = "basic"
	PlanPremium SubscriptionPlan = "premium"
)

type Subscription struct {
	Plan      SubscriptionPlan `gorm:"size:20;default:'free'" json:"plan"`
	StartDate *time.Time       `json:"startDate,omitempty"`
	EndDate   *time.Time       `json:"endDate,omitempty"`
}

// Scores 四门科目的当前成绩
type Scores struct {
	Korean  int `gorm:"default:0" json:"korean"`
	Math    int `gorm:"default:0" json:"math"`
	English int `gorm:"default:0" json:"english"`
	Science int `gorm:"default:0" json:"science"`
}

// swagger:model User
type User struct {
	UUIDBase
	Email        string       `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password     string       `gorm:"size:100;not null" json:"-"`
	Name         string       `gorm:"size:100;not null" json:"name"`
	Role         UserRole     `gorm:"size:20;default:'student';not null" json:"role"`
	Grade        string       `gorm:"size:50" json:"grade"`
	School       string       `gorm:"size:255" json:"school"`
	Subscription Subscription `gorm:"embedded;embeddedPrefix:subscription_" json:"subscription"`
	Scores       Scores       `gorm:"embedded;embeddedPrefix:score_" json:"scores"`
	WatchHistory []Progress   `gorm:"foreignKey:UserID" json:"watchHistory,omitempty"`
	LastLogin    *time.Time   `json:"lastLogin,omitempty"`
}

func (User) TableName() string {
	return "users"
}
