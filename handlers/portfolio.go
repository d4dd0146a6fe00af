package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/folioworks/folio-api/internal/portfolio"
	"github.com/folioworks/folio-api/pkg/apperror"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func getPortfolio(svc PortfolioService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Get(c.Request.Context())
		if err != nil {
			c.JSON(errorBody(log, "get portfolio", err))
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// savePortfolio replaces the profile with the request body. Any failure other
// than an unreachable store is reported as 400.
func savePortfolio(svc PortfolioService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in portfolio.Profile
		if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid portfolio payload"})
			return
		}
		p, err := svc.Save(c.Request.Context(), &in)
		if err != nil {
			if errors.Is(err, apperror.ErrStoreUnavailable) {
				c.JSON(errorBody(log, "save portfolio", err))
				return
			}
			log.Warn("save portfolio failed", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"message": apperror.Message(err)})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}
