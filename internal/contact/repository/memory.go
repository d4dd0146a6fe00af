package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/folioworks/folio-api/internal/contact"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository stores leads.
type Repository interface {
	// Insert assigns ID and CreatedAt and appends the lead.
	Insert(ctx context.Context, l *contact.Lead) error
	// List returns every lead, newest first.
	List(ctx context.Context) ([]*contact.Lead, error)
}

type MemoryRepo struct {
	mu    sync.RWMutex
	leads []contact.Lead
	now   func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{now: time.Now}
}

func (m *MemoryRepo) Insert(ctx context.Context, l *contact.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.ID = primitive.NewObjectID().Hex()
	l.CreatedAt = m.now().UTC().Truncate(time.Millisecond)
	m.leads = append(m.leads, *l)
	return nil
}

func (m *MemoryRepo) List(ctx context.Context) ([]*contact.Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*contact.Lead, 0, len(m.leads))
	for i := len(m.leads) - 1; i >= 0; i-- {
		l := m.leads[i]
		out = append(out, &l)
	}
	// reverse insertion order breaks createdAt ties
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
