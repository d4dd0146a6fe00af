package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/folioworks/folio-api/internal/contact"
	contactrepo "github.com/folioworks/folio-api/internal/contact/repository"
	"github.com/folioworks/folio-api/internal/portfolio"
	portfoliorepo "github.com/folioworks/folio-api/internal/portfolio/repository"
	"github.com/folioworks/folio-api/internal/storage"
	"github.com/folioworks/folio-api/pkg/apperror"
)

// Snapshot is the JSON document written for one backup.
type Snapshot struct {
	Profile *portfolio.Profile `json:"profile"`
	Leads   []*contact.Lead    `json:"leads"`
	TakenAt time.Time          `json:"takenAt"`
}

// Key returns the object key for a snapshot taken at t.
func Key(t time.Time) string {
	return fmt.Sprintf("backups/portfolio-%s.json", t.UTC().Format("20060102T150405Z"))
}

// Take reads the profile and all leads. A missing profile is recorded as null.
func Take(ctx context.Context, profiles portfoliorepo.Repository, leads contactrepo.Repository, now time.Time) (*Snapshot, error) {
	p, err := profiles.Get(ctx)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	list, err := leads.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("read leads: %w", err)
	}
	return &Snapshot{Profile: p, Leads: list, TakenAt: now.UTC()}, nil
}

// Write stores snap under Key(snap.TakenAt) and returns the key.
func Write(ctx context.Context, store storage.ObjectStore, snap *Snapshot) (string, error) {
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", err
	}
	key := Key(snap.TakenAt)
	if err := store.Put(ctx, key, bytes.NewReader(b), int64(len(b)), "application/json"); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}

// Read loads a snapshot previously written under key.
func Read(ctx context.Context, store storage.ObjectStore, key string) (*Snapshot, error) {
	rc, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	var snap Snapshot
	if err := json.NewDecoder(rc).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return &snap, nil
}

// ProfileSaver replaces the stored profile.
type ProfileSaver interface {
	Save(ctx context.Context, p *portfolio.Profile) (*portfolio.Profile, error)
}

// Restore loads the snapshot under key and replaces the profile with the one
// it holds. Leads are append-only and are not replayed.
func Restore(ctx context.Context, store storage.ObjectStore, key string, profiles ProfileSaver) (*Snapshot, error) {
	snap, err := Read(ctx, store, key)
	if err != nil {
		return nil, err
	}
	if snap.Profile == nil {
		return nil, fmt.Errorf("snapshot %s has no profile", key)
	}
	saved, err := profiles.Save(ctx, snap.Profile)
	if err != nil {
		return nil, fmt.Errorf("restore profile: %w", err)
	}
	snap.Profile = saved
	return snap, nil
}
