package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/folioworks/folio-api/internal/contact"
	"github.com/folioworks/folio-api/internal/portfolio"
	"github.com/folioworks/folio-api/internal/validation"
	"github.com/folioworks/folio-api/pkg/apperror"
	"github.com/folioworks/folio-api/pkg/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PortfolioService is the profile surface the boundary needs.
type PortfolioService interface {
	Get(ctx context.Context) (*portfolio.Profile, error)
	Save(ctx context.Context, p *portfolio.Profile) (*portfolio.Profile, error)
}

// ContactService is the lead surface the boundary needs.
type ContactService interface {
	Submit(ctx context.Context, in validation.LeadInput, meta contact.RequestMeta) (*contact.Lead, error)
	List(ctx context.Context) ([]*contact.Lead, error)
}

// StorePinger reports document store liveness for the health endpoint.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// Deps are the services every deployment shape routes to.
type Deps struct {
	Portfolio PortfolioService
	Contact   ContactService
	Store     StorePinger
	// Admin gates lead listing and profile writes; nil leaves them open.
	Admin middleware.Verifier
	Log   *zap.Logger
}

// Options enable the extras only the long-running server exposes.
type Options struct {
	FrontendDir string
	Metrics     http.Handler
	Swagger     bool
}

// NewRouter builds the shared HTTP boundary.
func NewRouter(d Deps, opts Options) *gin.Engine {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(d.Log.Named("http")),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			d.Log.Error("handler panicked", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": apperror.Message(nil)})
		}),
		middleware.CORS(),
		middleware.Preflight(),
	)

	admin := middleware.AdminOnly(d.Admin)

	api := r.Group("/api")
	api.GET("/health", healthHandler(d.Store))
	api.GET("/portfolio", getPortfolio(d.Portfolio, d.Log))
	api.POST("/portfolio", admin, savePortfolio(d.Portfolio, d.Log))
	api.PUT("/portfolio", admin, savePortfolio(d.Portfolio, d.Log))
	api.POST("/contact", submitContact(d.Contact, d.Log))
	api.GET("/contact", admin, listContacts(d.Contact, d.Log))

	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics))
	}
	if opts.Swagger {
		RegisterSwagger(r)
	}

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"message": "Method not allowed"})
	})
	spa := spaHandler(opts.FrontendDir)
	r.NoRoute(func(c *gin.Context) {
		if spa == nil || isAPIPath(c.Request.URL.Path) || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
			return
		}
		spa(c)
	})
	return r
}

func isAPIPath(p string) bool {
	return p == "/api" || strings.HasPrefix(p, "/api/")
}

// errorBody logs unexpected errors and returns the status and body for err.
func errorBody(log *zap.Logger, op string, err error) (int, gin.H) {
	status := apperror.ToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error(op, zap.Error(err))
	}
	return status, gin.H{"message": apperror.Message(err)}
}
