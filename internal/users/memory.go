package users

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pulsedash/pulsedash/internal/models"
)

// MemoryRepo is an in-memory repository used for unit tests and for running
// the server without a MongoDB instance. It preserves insertion order, which
// stands in for the store-native order the directory listing promises.
type MemoryRepo struct {
	mu      sync.RWMutex
	order   []string
	byID    map[string]*models.UserRecord
	byEmail map[string]string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:    make(map[string]*models.UserRecord),
		byEmail: make(map[string]string),
	}
}

func (m *MemoryRepo) Create(ctx context.Context, u *models.UserRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[u.Email]; ok {
		return "", ErrDuplicateEmail
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	m.byID[cp.ID] = &cp
	m.byEmail[cp.Email] = cp.ID
	m.order = append(m.order, cp.ID)
	return cp.ID, nil
}

func (m *MemoryRepo) GetByEmail(ctx context.Context, email string) (*models.UserRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *m.byID[id]
	return &cp, nil
}

func (m *MemoryRepo) GetByID(ctx context.Context, id string) (*models.UserRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MemoryRepo) List(ctx context.Context) ([]*models.UserRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.UserRecord, 0, len(m.order))
	for _, id := range m.order {
		cp := *m.byID[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemoryRepo) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.order)), nil
}

func (m *MemoryRepo) DeleteAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.order = nil
	m.byID = make(map[string]*models.UserRecord)
	m.byEmail = make(map[string]string)
	return nil
}

func (m *MemoryRepo) InsertMany(ctx context.Context, recs []*models.UserRecord) error {
	for _, r := range recs {
		if _, err := m.Create(ctx, r); err != nil {
			return err
		}
	}
	return nil
}
