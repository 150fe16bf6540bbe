package models

import "time"

// FeaturedFarmer is a community spotlight profile. At most one row exists per
// owning user; writes are create-or-replace keyed on UserID. Photo carries a
// base64 data URL produced by the client.
type FeaturedFarmer struct {
	BaseModel
	UserID string    `gorm:"uniqueIndex;column:user_id" json:"userId"`
	Name   string    `json:"name"`
	Bio    string    `json:"bio"`
	Photo  string    `gorm:"type:text" json:"photo"`
	Date   time.Time `json:"date"`
}
