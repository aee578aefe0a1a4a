package models

import (
	"time"
)

// Task is a to-do item owned by the tasks service. UserID refers to a user of
// the identity service; there is no foreign key across the two databases.
type Task struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	UserID      uint64    `gorm:"not null;index:idx_tasks_user_created,priority:1" json:"userId"`
	CreatedAt   time.Time `gorm:"index:idx_tasks_user_created,priority:2" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
