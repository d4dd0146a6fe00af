// Package handler holds the serverless entry points. Each exported function
// is deployed as its own function and routes through the shared boundary.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/folioworks/folio-api/internal/app"
	"github.com/folioworks/folio-api/pkg/logger"
)

// drainTimeout bounds how long an invocation waits for its notifications.
const drainTimeout = 8 * time.Second

func serve(w http.ResponseWriter, r *http.Request) {
	a, h, err := app.Shared()
	if err != nil {
		logger.Errorf("serverless init failed: %v", err)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Something went wrong. Please try again later.","success":false}`))
		return
	}
	h.ServeHTTP(w, r)

	// the platform may freeze the instance once the function returns
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := a.Notifier.Wait(ctx); err != nil {
		logger.Warnf("notifications still pending after response: %v", err)
	}
}
