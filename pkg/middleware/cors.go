package middleware

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows any origin with credentials and answers preflights with 200.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "OPTIONS", "PATCH", "DELETE", "POST", "PUT"},
		AllowHeaders: []string{
			"Origin", "Authorization", "X-CSRF-Token", "X-Requested-With", "Accept", "Accept-Version",
			"Content-Length", "Content-MD5", "Content-Type", "Date", "X-Api-Version", RequestIDHeader,
		},
		ExposeHeaders:             []string{RequestIDHeader},
		OptionsResponseStatusCode: http.StatusOK,
	})
}

// Preflight answers any OPTIONS request with an empty 200, including ones
// without an Origin header that the CORS handler passes through.
func Preflight() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
