package models

import "time"

const (
	ComplaintPending  = "Pending"
	ComplaintResolved = "Resolved"
)

// Complaint is a report filed by a farmer against a trader. Only status may
// change after creation.
type Complaint struct {
	BaseModel
	UserID     string    `gorm:"index;column:user_id" json:"userId"`
	TraderName string    `gorm:"column:trader_name" json:"traderName"`
	Issue      string    `json:"issue"`
	Date       time.Time `json:"date"`
	Status     string    `json:"status"`
}
