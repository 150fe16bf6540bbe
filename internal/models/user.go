package models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered farmer (or the pinned admin account).
// Mobile is the stable human-facing key across the cloud and local stores;
// OTPCode mirrors the most recently issued one-time code so verification can
// succeed from a different device or session.
type User struct {
	BaseModel
	Username string `json:"username"`
	Mobile   string `gorm:"uniqueIndex" json:"mobile"`
	Role     string `json:"role"`
	OTPCode  string `gorm:"column:otp_code" json:"-"`
}
