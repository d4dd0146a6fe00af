package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/folioworks/folio-api/internal/contact"
	"github.com/folioworks/folio-api/internal/contact/repository"
	"github.com/folioworks/folio-api/internal/validation"
	"github.com/folioworks/folio-api/pkg/apperror"
	"github.com/folioworks/folio-api/pkg/metrics"
	"go.uber.org/zap"
)

// Acknowledgement is returned to visitors for every accepted submission.
const Acknowledgement = "Thank you for your interest! I will get back to you soon."

// Notifier relays a new lead without blocking the caller.
type Notifier interface {
	Dispatch(l contact.Lead)
}

// Options tune the submission path.
type Options struct {
	// RequireStore rejects a submission with ErrStoreUnavailable when it
	// could not be persisted. Notification is skipped in that case.
	RequireStore bool
}

type Service struct {
	repo     repository.Repository
	notifier Notifier
	opts     Options
	log      *zap.Logger
	now      func() time.Time
}

// NewService builds the contact service. notifier and log may be nil.
func NewService(repo repository.Repository, n Notifier, opts Options, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, notifier: n, opts: opts, log: log, now: time.Now}
}

// Submit validates, persists (best effort) and notifies (detached) in that order.
// Only validation errors are returned unless RequireStore is set.
func (s *Service) Submit(ctx context.Context, in validation.LeadInput, meta contact.RequestMeta) (*contact.Lead, error) {
	clean, err := validation.ValidateLead(in)
	if err != nil {
		metrics.LeadsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	lead := &contact.Lead{
		Name:      clean.Name,
		Email:     clean.Email,
		Mobile:    clean.Mobile,
		Message:   clean.Message,
		IPAddress: orUnknown(meta.IPAddress),
		UserAgent: orUnknown(meta.UserAgent),
	}

	if err := s.repo.Insert(ctx, lead); err != nil {
		metrics.LeadsTotal.WithLabelValues("unpersisted").Inc()
		lead.CreatedAt = s.now().UTC()
		s.log.Warn("lead not persisted",
			zap.Error(err),
			zap.String("name", lead.Name),
			zap.String("email", lead.Email),
			zap.String("mobile", lead.Mobile),
			zap.String("message", lead.Message),
			zap.String("ipAddress", lead.IPAddress),
			zap.Time("receivedAt", lead.CreatedAt),
		)
		if s.opts.RequireStore {
			if errors.Is(err, apperror.ErrStoreUnavailable) {
				return nil, err
			}
			return nil, apperror.NewStoreUnavailable("insert lead", err)
		}
	} else {
		metrics.LeadsTotal.WithLabelValues("stored").Inc()
		s.log.Info("lead stored", zap.String("id", lead.ID))
	}

	if s.notifier != nil {
		s.notifier.Dispatch(*lead)
	}
	return lead, nil
}

// List returns every stored lead, newest first.
func (s *Service) List(ctx context.Context) ([]*contact.Lead, error) {
	return s.repo.List(ctx)
}

func orUnknown(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return contact.Unknown
	}
	return v
}
