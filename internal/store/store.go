package store

import (
	"context"
	"errors"

	"github.com/Vachangowdas/Agrifair1/internal/models"
)

// ErrNotFound is returned when a lookup matches no record in the backing store.
var ErrNotFound = errors.New("record not found")

// UserStore persists registered users and the best-effort OTP mirror.
type UserStore interface {
	FindUserByMobile(ctx context.Context, mobile string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	// SetOTPCode mirrors the active one-time code for a mobile so a different
	// device can verify it. An empty code clears the mirror.
	SetOTPCode(ctx context.Context, mobile, code string) error
}

// ComplaintStore persists trader complaints.
type ComplaintStore interface {
	ListComplaintsByUser(ctx context.Context, userID string, limit int) ([]models.Complaint, error)
	CreateComplaint(ctx context.Context, complaint *models.Complaint) error
}

// FarmerStore persists community spotlight profiles.
type FarmerStore interface {
	ListFeaturedFarmers(ctx context.Context, limit int) ([]models.FeaturedFarmer, error)
	UpsertFeaturedFarmer(ctx context.Context, farmer *models.FeaturedFarmer) error
	DeleteFeaturedFarmer(ctx context.Context, userID string) error
}

// Store aggregates every collection the application persists.
type Store interface {
	UserStore
	ComplaintStore
	FarmerStore
}
