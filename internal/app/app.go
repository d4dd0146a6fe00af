package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/folioworks/folio-api/handlers"
	"github.com/folioworks/folio-api/internal/cache"
	"github.com/folioworks/folio-api/internal/config"
	contactrepo "github.com/folioworks/folio-api/internal/contact/repository"
	contactsvc "github.com/folioworks/folio-api/internal/contact/service"
	"github.com/folioworks/folio-api/internal/database"
	"github.com/folioworks/folio-api/internal/notify"
	"github.com/folioworks/folio-api/internal/oidc"
	portfoliorepo "github.com/folioworks/folio-api/internal/portfolio/repository"
	portfoliosvc "github.com/folioworks/folio-api/internal/portfolio/service"
	"github.com/folioworks/folio-api/internal/tokens"
	"github.com/folioworks/folio-api/pkg/logger"
	"github.com/folioworks/folio-api/pkg/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App owns every long-lived dependency. Entry points build one with New and
// release it with Close.
type App struct {
	Config    *config.Config
	DB        *database.Client
	Redis     *redis.Client
	Profiles  portfoliorepo.Repository
	Leads     contactrepo.Repository
	Portfolio *portfoliosvc.Service
	Contact   *contactsvc.Service
	Notifier  *notify.Dispatcher
	Admin     middleware.Verifier
	Log       *zap.Logger
}

// New wires the application from cfg. It does not contact the document store;
// the first request does.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg, Log: logger.Named("app")}

	switch cfg.MongoDB.Driver {
	case "memory":
		a.Profiles = portfoliorepo.NewMemoryRepo()
		a.Leads = contactrepo.NewMemoryRepo()
		a.Log.Warn("using in-memory store; data is lost on restart")
	case "mongo", "":
		a.DB = database.NewClient(cfg.MongoDB.URI, cfg.MongoDB.Database, cfg.MongoDB.Timeout)
		if !a.DB.Configured() {
			a.Log.Warn("MONGODB_URI is not set; portfolio and lead storage will report unavailable")
		}
		a.Profiles = portfoliorepo.NewMongoRepo(a.DB)
		a.Leads = contactrepo.NewMongoRepo(a.DB)
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.MongoDB.Driver)
	}

	var profileCache cache.ProfileCache
	if cfg.Redis.Host != "" {
		a.Redis = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
		})
		profileCache = cache.NewRedisProfileCache(a.Redis, cfg.Redis.CacheTTL)
		a.Log.Info("portfolio cache enabled", zap.String("redis", cfg.Redis.Host))
	}

	a.Notifier = notify.New(cfg, logger.Named("notify"))
	if enabled := a.Notifier.EnabledChannels(); len(enabled) == 0 {
		a.Log.Info("no lead notification channel configured")
	} else {
		a.Log.Info("lead notification channels", zap.Strings("channels", enabled))
	}

	a.Portfolio = portfoliosvc.NewService(a.Profiles, profileCache, logger.Named("portfolio"))
	a.Contact = contactsvc.NewService(a.Leads, a.Notifier,
		contactsvc.Options{RequireStore: cfg.Contact.RequireStore}, logger.Named("contact"))

	if !cfg.AdminGateEnabled() {
		a.Log.Warn("admin gate disabled; lead listing and profile writes are open")
	}
	a.Admin = adminVerifier(ctx, cfg.Admin, a.Log)
	return a, nil
}

func adminVerifier(ctx context.Context, cfg config.AdminConfig, log *zap.Logger) middleware.Verifier {
	switch {
	case cfg.JWTSecret != "":
		log.Info("admin gate enabled (HS256)")
		return tokens.NewHS256Verifier(cfg.JWTSecret)
	case cfg.OIDCIssuer != "" && cfg.OIDCClientID != "":
		ver, err := oidc.NewVerifier(ctx, cfg.OIDCIssuer, cfg.OIDCClientID)
		if err != nil {
			log.Error("admin gate: OIDC discovery failed, admin routes will reject every request", zap.Error(err))
			return rejectAll{err: err}
		}
		log.Info("admin gate enabled (OIDC)", zap.String("issuer", cfg.OIDCIssuer))
		return ver
	default:
		return nil
	}
}

// rejectAll keeps the gate closed when it is configured but cannot be built.
type rejectAll struct{ err error }

func (r rejectAll) Verify(context.Context, string) (middleware.Token, error) {
	return nil, r.err
}

// storePinger reports the memory store as always reachable.
type storePinger struct{ db *database.Client }

func (s storePinger) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.Ping(ctx)
}

// Handler builds the HTTP boundary over this App.
func (a *App) Handler(opts handlers.Options) http.Handler {
	return handlers.NewRouter(handlers.Deps{
		Portfolio: a.Portfolio,
		Contact:   a.Contact,
		Store:     storePinger{db: a.DB},
		Admin:     a.Admin,
		Log:       logger.L(),
	}, opts)
}

// Close drains pending notifications, then releases connections.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if err := a.Notifier.Wait(ctx); err != nil {
		errs = append(errs, fmt.Errorf("drain notifications: %w", err))
	}
	errs = append(errs, a.Notifier.Close())
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close(ctx))
	}
	return errors.Join(errs...)
}

var (
	sharedOnce sync.Once
	shared     *App
	sharedH    http.Handler
	sharedErr  error
)

// Shared returns the process-wide App and handler used by serverless
// functions. Warm invocations reuse the same store connection.
func Shared() (*App, http.Handler, error) {
	sharedOnce.Do(func() {
		cfg, err := config.LoadConfig()
		if err != nil {
			sharedErr = err
			return
		}
		logger.Init(cfg.Server.LogLevel, "json")
		shared, sharedErr = New(context.Background(), cfg)
		if sharedErr == nil {
			sharedH = shared.Handler(handlers.Options{})
		}
	})
	return shared, sharedH, sharedErr
}
