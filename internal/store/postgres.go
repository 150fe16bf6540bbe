package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Vachangowdas/Agrifair1/internal/models"
)

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// Postgres is the cloud store, backed by the hosted database.
type Postgres struct {
	db *gorm.DB
}

var _ Store = (*Postgres)(nil)

// NewPostgres wraps an initialized gorm connection.
func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) FindUserByMobile(ctx context.Context, mobile string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("mobile = ?", mobile).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by mobile: %w", err)
	}
	return &user, nil
}

func (s *Postgres) CreateUser(ctx context.Context, user *models.User) error {
	// Never persist an offline-minted id into the cloud store; let the
	// BeforeCreate hook assign a durable UUID instead.
	if id := user.ID; id != "" && !isUUID(id) {
		user.ID = ""
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *Postgres) SetOTPCode(ctx context.Context, mobile, code string) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("mobile = ?", mobile).
		Updates(map[string]interface{}{"otp_code": code, "updated_at": time.Now()})
	if res.Error != nil {
		return fmt.Errorf("set otp code: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) ListComplaintsByUser(ctx context.Context, userID string, limit int) ([]models.Complaint, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("date desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var complaints []models.Complaint
	if err := q.Find(&complaints).Error; err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	return complaints, nil
}

func (s *Postgres) CreateComplaint(ctx context.Context, complaint *models.Complaint) error {
	if id := complaint.ID; id != "" && !isUUID(id) {
		complaint.ID = ""
	}
	if err := s.db.WithContext(ctx).Create(complaint).Error; err != nil {
		return fmt.Errorf("create complaint: %w", err)
	}
	return nil
}

func (s *Postgres) ListFeaturedFarmers(ctx context.Context, limit int) ([]models.FeaturedFarmer, error) {
	q := s.db.WithContext(ctx).Order("date desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var farmers []models.FeaturedFarmer
	if err := q.Find(&farmers).Error; err != nil {
		return nil, fmt.Errorf("list featured farmers: %w", err)
	}
	return farmers, nil
}

func (s *Postgres) UpsertFeaturedFarmer(ctx context.Context, farmer *models.FeaturedFarmer) error {
	var existing models.FeaturedFarmer
	err := s.db.WithContext(ctx).Where("user_id = ?", farmer.UserID).First(&existing).Error
	switch {
	case err == nil:
		farmer.ID = existing.ID
		farmer.CreatedAt = existing.CreatedAt
		if err := s.db.WithContext(ctx).Save(farmer).Error; err != nil {
			return fmt.Errorf("replace featured farmer: %w", err)
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if id := farmer.ID; id != "" && !isUUID(id) {
			farmer.ID = ""
		}
		if err := s.db.WithContext(ctx).Create(farmer).Error; err != nil {
			return fmt.Errorf("create featured farmer: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("lookup featured farmer: %w", err)
	}
}

func (s *Postgres) DeleteFeaturedFarmer(ctx context.Context, userID string) error {
	if err := s.db.WithContext(ctx).Delete(&models.FeaturedFarmer{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("delete featured farmer: %w", err)
	}
	return nil
}
