package users

import (
	"context"
	"fmt"
	"time"

	"github.com/pulsedash/pulsedash/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Static placeholder metrics. The dashboard renders these three alongside the
// live user count; there is no telemetry pipeline behind them.
const (
	placeholderSessions   = 29.4
	placeholderClickRate  = 56.8
	placeholderPageviews  = 92913
	placeholderTotalUsers = 72540 // demo value shown while the store is empty
)

// Service exposes the user directory: redacted listings, self lookup and the
// dashboard statistics.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List returns every record, password hash stripped, in store-native order.
func (s *Service) List(ctx context.Context) ([]models.PublicUser, error) {
	recs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]models.PublicUser, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Public())
	}
	return out, nil
}

// GetByID fetches the redacted record for the given store id. ErrNotFound
// when the record vanished after token issuance.
func (s *Service) GetByID(ctx context.Context, id string) (models.PublicUser, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.PublicUser{}, err
	}
	return rec.Public(), nil
}

// Stats computes the dashboard payload: a live total plus the fixed
// placeholder metrics downstream display expects.
func (s *Service) Stats(ctx context.Context) (models.DashboardStats, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return models.DashboardStats{}, fmt.Errorf("count users: %w", err)
	}
	if total == 0 {
		total = placeholderTotalUsers
	}
	return models.DashboardStats{
		TotalUsers: total,
		Sessions:   placeholderSessions,
		ClickRate:  placeholderClickRate,
		Pageviews:  placeholderPageviews,
	}, nil
}

// Seed wipes the store and inserts the two sample users the development
// dashboard is demoed with. Never reachable in production.
func (s *Service) Seed(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	if err != nil {
		return fmt.Errorf("hash sample password: %w", err)
	}
	now := time.Now().UTC()
	fixtures := []*models.UserRecord{
		{
			Name:         "Amanda Harvey",
			Email:        "amanda@site.com",
			PasswordHash: string(hash),
			Role:         models.RoleEmployee,
			Type:         models.TypeUnassigned,
			Country:      "United Kingdom",
			SignedUp:     now.Add(-365 * 24 * time.Hour),
			UserID:       "67989",
		},
		{
			Name:         "Anne Richard",
			Email:        "anne@site.com",
			PasswordHash: string(hash),
			Role:         models.RoleEmployee,
			Type:         models.TypeSubscription,
			Country:      "United States",
			SignedUp:     now.Add(-180 * 24 * time.Hour),
			UserID:       "67326",
		},
	}
	if err := s.repo.InsertMany(ctx, fixtures); err != nil {
		return fmt.Errorf("insert sample users: %w", err)
	}
	return nil
}
