package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/folioworks/folio-api/internal/contact"
	"github.com/folioworks/folio-api/internal/contact/service"
	"github.com/folioworks/folio-api/internal/validation"
	"github.com/folioworks/folio-api/pkg/apperror"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func submitContact(svc ContactService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in validation.LeadInput
		if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
			log.Warn("contact body rejected", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": apperror.Message(err), "success": false})
			return
		}

		_, err := svc.Submit(c.Request.Context(), in, requestMeta(c))
		switch {
		case err == nil:
			c.JSON(http.StatusCreated, gin.H{"message": service.Acknowledgement, "success": true})
		case errors.Is(err, apperror.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": apperror.Message(err)})
		default:
			status, body := errorBody(log, "submit contact", err)
			body["success"] = false
			c.JSON(status, body)
		}
	}
}

func listContacts(svc ContactService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		leads, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(errorBody(log, "list contacts", err))
			return
		}
		c.JSON(http.StatusOK, leads)
	}
}

// requestMeta prefers proxy headers over the socket peer.
func requestMeta(c *gin.Context) contact.RequestMeta {
	ip := ""
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		ip = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	if ip == "" {
		ip = strings.TrimSpace(c.GetHeader("X-Real-IP"))
	}
	if ip == "" {
		ip = c.ClientIP()
	}
	return contact.RequestMeta{IPAddress: ip, UserAgent: c.Request.UserAgent()}
}
