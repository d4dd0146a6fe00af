package repository

import (
	"context"
	"sync"
	"time"

	"github.com/folioworks/folio-api/internal/portfolio"
	"github.com/folioworks/folio-api/pkg/apperror"
)

// Repository persists the singleton profile.
type Repository interface {
	// Get returns the profile or an apperror.ErrNotFound error.
	Get(ctx context.Context) (*portfolio.Profile, error)
	// Upsert atomically creates or fully replaces the profile and returns the stored document.
	Upsert(ctx context.Context, p *portfolio.Profile) (*portfolio.Profile, error)
}

// MemoryRepo keeps the profile in process memory. Used by tests and by
// STORE_DRIVER=memory for local development.
type MemoryRepo struct {
	mu      sync.RWMutex
	profile *portfolio.Profile
	now     func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{now: time.Now}
}

func (m *MemoryRepo) Get(ctx context.Context) (*portfolio.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.profile == nil {
		return nil, apperror.NewNotFound("Portfolio")
	}
	cp := *m.profile
	return &cp, nil
}

func (m *MemoryRepo) Upsert(ctx context.Context, p *portfolio.Profile) (*portfolio.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now().UTC().Truncate(time.Millisecond)
	stored := p.Content()
	stored.Experience = append([]portfolio.Experience(nil), p.Experience...)
	stored.Normalize()
	stored.ID = portfolio.ProfileID
	stored.CreatedAt = now
	if m.profile != nil {
		stored.CreatedAt = m.profile.CreatedAt
	}
	stored.UpdatedAt = now
	m.profile = &stored
	cp := stored
	return &cp, nil
}
