package models

import "time"

type Rating struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"     json:"id"`
	Title     string    `gorm:"not null"                        json:"title"`
	Feedback  string    `json:"feedback"`
	Ratings   float64   `gorm:"not null"                        json:"ratings"`
	CompanyID string    `gorm:"index;not null;type:varchar(36)" json:"companyId"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
