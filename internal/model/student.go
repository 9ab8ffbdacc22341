package model

import "strings"

// Student 被评估的学生
// swagger:model Student
type Student struct {
	BaseModel
	FirstName string `gorm:"size:100;not null" json:"firstName"`
	LastName  string `gorm:"size:100;not null" json:"lastName"`
	Email     string `gorm:"size:100;index" json:"email"`
	Grade     string `gorm:"size:50" json:"grade"`
	Status    bool   `gorm:"default:true" json:"status"`
}

func (Student) TableName() string {
	return "students"
}

func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}
