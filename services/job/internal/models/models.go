package models

import "time"

type Job struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)"     json:"id"`
	Title       string    `gorm:"not null"                        json:"title"`
	Description string    `json:"description"`
	MinSalary   string    `json:"minSalary"`
	MaxSalary   string    `json:"maxSalary"`
	Location    string    `json:"location"`
	CompanyID   string    `gorm:"index;not null;type:varchar(36)" json:"companyId"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
