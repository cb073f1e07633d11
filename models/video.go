package models

import "time"

// Video records metadata for one downloaded file. Filename points into the
// upload directory and is never changed after insert; deleting a record does
// not delete the file.
type Video struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Filename    string    `gorm:"size:255;not null" json:"filename"`
	Title       string    `gorm:"size:255" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Date        string    `gorm:"size:32" json:"date"`
	Restricted  bool      `gorm:"default:false" json:"restricted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
