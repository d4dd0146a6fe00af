package service

import (
	"context"

	"github.com/folioworks/folio-api/internal/cache"
	"github.com/folioworks/folio-api/internal/portfolio"
	"github.com/folioworks/folio-api/internal/portfolio/repository"
	"github.com/folioworks/folio-api/pkg/metrics"
	"go.uber.org/zap"
)

// Service encapsulates read/replace of the singleton profile.
type Service struct {
	repo  repository.Repository
	cache cache.ProfileCache
	log   *zap.Logger
}

// NewService builds the service. cache may be nil; log may be nil.
func NewService(repo repository.Repository, c cache.ProfileCache, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, cache: c, log: log}
}

// Get returns the profile, consulting the cache first when one is configured.
func (s *Service) Get(ctx context.Context) (*portfolio.Profile, error) {
	if s.cache != nil {
		p, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			metrics.PortfolioCacheTotal.WithLabelValues("error").Inc()
			s.log.Warn("portfolio cache read failed", zap.Error(err))
		case p != nil:
			metrics.PortfolioCacheTotal.WithLabelValues("hit").Inc()
			return p, nil
		default:
			metrics.PortfolioCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	p, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Fill(ctx, p); err != nil {
			s.log.Warn("portfolio cache fill failed", zap.Error(err))
		}
	}
	return p, nil
}

// Save creates the profile or replaces every content field of the existing one.
func (s *Service) Save(ctx context.Context, in *portfolio.Profile) (*portfolio.Profile, error) {
	stored, err := s.repo.Upsert(ctx, in)
	if err != nil {
		if s.cache != nil {
			if ierr := s.cache.Invalidate(ctx); ierr != nil {
				s.log.Warn("portfolio cache invalidate failed", zap.Error(ierr))
			}
		}
		return nil, err
	}
	s.refresh(ctx, stored)
	return stored, nil
}

func (s *Service) refresh(ctx context.Context, p *portfolio.Profile) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, p); err != nil {
		s.log.Warn("portfolio cache write failed", zap.Error(err))
	}
}
