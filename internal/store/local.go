package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/Vachangowdas/Agrifair1/internal/models"
)

// Collection file names, one JSON array per collection.
const (
	usersCollection      = "users"
	complaintsCollection = "complaints"
	farmersCollection    = "featured_farmers"
)

// Local is the file-backed persistence shim. Each collection is a whole JSON
// array; writes replace the entire collection (last writer wins, no merge).
// Malformed stored data reads as an empty collection rather than an error so
// the application stays usable.
type Local struct {
	dir string
	mu  sync.Mutex
}

var _ Store = (*Local)(nil)

// NewLocal opens (creating if needed) a local store rooted at dir.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Local{dir: dir}, nil
}

func (s *Local) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// newLocalID mints a temporary identifier. The "local-" prefix is what tags
// the id as non-durable for later reconciliation.
func newLocalID() string {
	return fmt.Sprintf("local-%d", time.Now().UnixNano())
}

// localUser is the on-disk shape of a users row. models.User hides the OTP
// mirror from response JSON, so persistence needs its own record that spells
// the column out or the mirror would be dropped on marshal.
type localUser struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Username  string    `json:"username"`
	Mobile    string    `json:"mobile"`
	Role      string    `json:"role"`
	OTPCode   string    `json:"otp_code"`
}

func toLocalUser(u models.User) localUser {
	return localUser{
		ID:        u.ID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		Username:  u.Username,
		Mobile:    u.Mobile,
		Role:      u.Role,
		OTPCode:   u.OTPCode,
	}
}

func (lu localUser) model() models.User {
	return models.User{
		BaseModel: models.BaseModel{ID: lu.ID, CreatedAt: lu.CreatedAt, UpdatedAt: lu.UpdatedAt},
		Username:  lu.Username,
		Mobile:    lu.Mobile,
		Role:      lu.Role,
		OTPCode:   lu.OTPCode,
	}
}

// readCollection loads a collection, treating a missing or corrupt file as empty.
func readCollection[T any](s *Local, collection string) []T {
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("local store read failed", "collection", collection, "error", err)
		}
		return nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		slog.Warn("local store corrupt, treating as empty", "collection", collection, "error", err)
		return nil
	}
	return items
}

// writeCollection replaces a collection atomically via temp file + rename.
func writeCollection[T any](s *Local, collection string, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", collection, err)
	}
	tmp := s.path(collection) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", collection, err)
	}
	if err := os.Rename(tmp, s.path(collection)); err != nil {
		return fmt.Errorf("replace %s: %w", collection, err)
	}
	return nil
}

func (s *Local) FindUserByMobile(ctx context.Context, mobile string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range readCollection[localUser](s, usersCollection) {
		if u.Mobile == mobile {
			user := u.model()
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Local) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := readCollection[localUser](s, usersCollection)
	for _, u := range users {
		if u.Mobile == user.Mobile {
			return fmt.Errorf("user with mobile %s already exists", user.Mobile)
		}
	}
	if user.ID == "" {
		user.ID = newLocalID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	users = append(users, toLocalUser(*user))
	return writeCollection(s, usersCollection, users)
}

func (s *Local) SetOTPCode(ctx context.Context, mobile, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := readCollection[localUser](s, usersCollection)
	for i := range users {
		if users[i].Mobile == mobile {
			users[i].OTPCode = code
			users[i].UpdatedAt = time.Now()
			return writeCollection(s, usersCollection, users)
		}
	}
	return ErrNotFound
}

func (s *Local) ListComplaintsByUser(ctx context.Context, userID string, limit int) ([]models.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := readCollection[models.Complaint](s, complaintsCollection)
	var mine []models.Complaint
	for _, c := range all {
		if c.UserID == userID {
			mine = append(mine, c)
		}
	}
	// Newest first.
	sort.SliceStable(mine, func(i, j int) bool { return mine[i].Date.After(mine[j].Date) })
	if limit > 0 && len(mine) > limit {
		mine = mine[:limit]
	}
	return mine, nil
}

func (s *Local) CreateComplaint(ctx context.Context, complaint *models.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if complaint.ID == "" {
		complaint.ID = newLocalID()
	}
	now := time.Now()
	complaint.CreatedAt = now
	complaint.UpdatedAt = now
	all := readCollection[models.Complaint](s, complaintsCollection)
	all = append(all, *complaint)
	return writeCollection(s, complaintsCollection, all)
}

func (s *Local) ListFeaturedFarmers(ctx context.Context, limit int) ([]models.FeaturedFarmer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	farmers := readCollection[models.FeaturedFarmer](s, farmersCollection)
	sort.SliceStable(farmers, func(i, j int) bool { return farmers[i].Date.After(farmers[j].Date) })
	if limit > 0 && len(farmers) > limit {
		farmers = farmers[:limit]
	}
	return farmers, nil
}

func (s *Local) UpsertFeaturedFarmer(ctx context.Context, farmer *models.FeaturedFarmer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	farmer.UpdatedAt = now
	farmers := readCollection[models.FeaturedFarmer](s, farmersCollection)
	for i := range farmers {
		if farmers[i].UserID == farmer.UserID {
			if farmer.ID == "" {
				farmer.ID = farmers[i].ID
			}
			farmer.CreatedAt = farmers[i].CreatedAt
			farmers[i] = *farmer
			return writeCollection(s, farmersCollection, farmers)
		}
	}
	if farmer.ID == "" {
		farmer.ID = newLocalID()
	}
	farmer.CreatedAt = now
	farmers = append(farmers, *farmer)
	return writeCollection(s, farmersCollection, farmers)
}

func (s *Local) DeleteFeaturedFarmer(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	farmers := readCollection[models.FeaturedFarmer](s, farmersCollection)
	kept := farmers[:0]
	for _, f := range farmers {
		if f.UserID != userID {
			kept = append(kept, f)
		}
	}
	return writeCollection(s, farmersCollection, kept)
}
