package model

import (
	"strings"
	"time"
)

type UserRole string

const (
	Psychologist UserRole = "psychologist"
	Admin        UserRole = "admin"
)

func (r UserRole) Valid() bool {
	return r == Psychologist || r == Admin
}

// User 系统用户（管理员、心理师）。学生不登录，见 Student
// swagger:model User
type User struct {
	BaseModel
	FirstName string     `gorm:"size:100;not null" json:"firstName"`
	LastName  string     `gorm:"size:100;not null" json:"lastName"`
	Email     string     `gorm:"size:100;unique;not null" json:"email"`
	Password  string     `gorm:"size:100;not null" json:"-"`
	Role      UserRole   `gorm:"type:enum('psychologist','admin');default:'psychologist'" json:"role"`
	Status    bool       `gorm:"default:true" json:"status"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	LastSeen  *time.Time `json:"lastSeen,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
