package models

import "time"

// Consulente è chi segue la consulenza dei lead.
type Consulente struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Nome     string    `gorm:"uniqueIndex;size:120;not null" json:"nome"`
	IsActive bool      `gorm:"default:true" json:"is_active"`
	CreatoIl time.Time `gorm:"autoCreateTime;column:creato_il" json:"creato_il"`
}

func (Consulente) TableName() string { return "consulenti" }
