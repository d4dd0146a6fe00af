package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthPingTimeout = 2 * time.Second

func healthHandler(store StorePinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := "Disconnected"
		if store != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
			defer cancel()
			if store.Ping(ctx) == nil {
				state = "Connected"
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"message":  "Server is running!",
			"status":   "OK",
			"database": state,
		})
	}
}
