package store

import (
	"context"
	"log/slog"

	"github.com/Vachangowdas/Agrifair1/internal/models"
)

// Fallback prefers the cloud store and degrades to the local file store when
// the cloud is unconfigured or erroring. The policy is uniform:
//
//   - reads: cloud first, local on cloud failure; user lookups additionally
//     fall through to the local copy on a clean cloud not-found, so an
//     account registered while the cloud was unconfigured stays reachable
//     (its id is reconciled on the first owned write)
//   - writes: cloud first, then a best-effort local mirror so offline mode
//     still sees the data; a cloud failure makes the local write the write
//     of record (the safety net that must always be attempted)
//   - OTP mirroring: cloud only, errors logged and swallowed — the device
//     still holds the in-session challenge plus the sanctioned bypass codes
type Fallback struct {
	remote Store // nil when DATABASE_URL is not configured
	local  *Local
}

var _ Store = (*Fallback)(nil)

// NewFallback builds the composite. remote may be nil for local-only mode.
func NewFallback(remote Store, local *Local) *Fallback {
	return &Fallback{remote: remote, local: local}
}

// CloudBacked reports whether a cloud store is configured.
func (f *Fallback) CloudBacked() bool { return f.remote != nil }

func (f *Fallback) FindUserByMobile(ctx context.Context, mobile string) (*models.User, error) {
	if f.remote != nil {
		user, err := f.remote.FindUserByMobile(ctx, mobile)
		if err == nil {
			return user, nil
		}
		if err != ErrNotFound {
			slog.Warn("cloud user lookup failed, using local store", "mobile", mobile, "error", err)
		}
	}
	return f.local.FindUserByMobile(ctx, mobile)
}

func (f *Fallback) CreateUser(ctx context.Context, user *models.User) error {
	if f.remote != nil {
		if err := f.remote.CreateUser(ctx, user); err != nil {
			slog.Warn("cloud user create failed, writing local store", "mobile", user.Mobile, "error", err)
			return f.local.CreateUser(ctx, user)
		}
		if err := f.local.CreateUser(ctx, user); err != nil {
			slog.Warn("local user mirror failed", "mobile", user.Mobile, "error", err)
		}
		return nil
	}
	return f.local.CreateUser(ctx, user)
}

func (f *Fallback) SetOTPCode(ctx context.Context, mobile, code string) error {
	if f.remote == nil {
		return nil
	}
	if err := f.remote.SetOTPCode(ctx, mobile, code); err != nil {
		slog.Warn("otp mirror failed", "mobile", mobile, "error", err)
	}
	return nil
}

func (f *Fallback) ListComplaintsByUser(ctx context.Context, userID string, limit int) ([]models.Complaint, error) {
	if f.remote != nil {
		complaints, err := f.remote.ListComplaintsByUser(ctx, userID, limit)
		if err == nil {
			return complaints, nil
		}
		slog.Warn("cloud complaint list failed, using local store", "error", err)
	}
	return f.local.ListComplaintsByUser(ctx, userID, limit)
}

func (f *Fallback) CreateComplaint(ctx context.Context, complaint *models.Complaint) error {
	if f.remote != nil {
		if err := f.remote.CreateComplaint(ctx, complaint); err != nil {
			slog.Warn("cloud complaint create failed, writing local store", "error", err)
			return f.local.CreateComplaint(ctx, complaint)
		}
		if err := f.local.CreateComplaint(ctx, complaint); err != nil {
			slog.Warn("local complaint mirror failed", "error", err)
		}
		return nil
	}
	return f.local.CreateComplaint(ctx, complaint)
}

func (f *Fallback) ListFeaturedFarmers(ctx context.Context, limit int) ([]models.FeaturedFarmer, error) {
	if f.remote != nil {
		farmers, err := f.remote.ListFeaturedFarmers(ctx, limit)
		if err == nil {
			return farmers, nil
		}
		slog.Warn("cloud farmer list failed, using local store", "error", err)
	}
	return f.local.ListFeaturedFarmers(ctx, limit)
}

func (f *Fallback) UpsertFeaturedFarmer(ctx context.Context, farmer *models.FeaturedFarmer) error {
	if f.remote != nil {
		if err := f.remote.UpsertFeaturedFarmer(ctx, farmer); err != nil {
			slog.Warn("cloud farmer upsert failed, writing local store", "error", err)
			return f.local.UpsertFeaturedFarmer(ctx, farmer)
		}
		if err := f.local.UpsertFeaturedFarmer(ctx, farmer); err != nil {
			slog.Warn("local farmer mirror failed", "error", err)
		}
		return nil
	}
	return f.local.UpsertFeaturedFarmer(ctx, farmer)
}

func (f *Fallback) DeleteFeaturedFarmer(ctx context.Context, userID string) error {
	var remoteErr error
	if f.remote != nil {
		remoteErr = f.remote.DeleteFeaturedFarmer(ctx, userID)
		if remoteErr != nil {
			slog.Warn("cloud farmer delete failed", "error", remoteErr)
		}
	}
	// Delete must reach both stores so a later fallback read cannot
	// resurrect the profile.
	if err := f.local.DeleteFeaturedFarmer(ctx, userID); err != nil {
		return err
	}
	return remoteErr
}
