package models

import (
	"time"
)

// BaseModel provides the identity and timestamp columns shared by registry tables.
// Timestamps are owned by the application, so gorm's auto-time hooks are off.
type BaseModel struct {
	ID        string     `gorm:"type:varchar(50);primaryKey"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false"`
}

// Timestamps returns created and updated times in domain form. A nil
// updated time means the row was never updated.
func (m *BaseModel) Timestamps() (time.Time, *time.Time) {
	if m.UpdatedAt == nil {
		return m.CreatedAt, nil
	}
	updated := *m.UpdatedAt
	return m.CreatedAt, &updated
}

// SetTimestamps populates the timestamp columns
func (m *BaseModel) SetTimestamps(created time.Time, updated *time.Time) {
	m.CreatedAt = created
	m.UpdatedAt = nil
	if updated != nil {
		u := *updated
		m.UpdatedAt = &u
	}
}
