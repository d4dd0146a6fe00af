package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	LeadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "folio", Name: "leads_total", Help: "Contact submissions by outcome (stored, unpersisted, rejected)."},
		[]string{"outcome"},
	)
	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "folio", Name: "notifications_total", Help: "Lead notification attempts by channel and result."},
		[]string{"channel", "result"},
	)
	PortfolioCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "folio", Name: "portfolio_cache_total", Help: "Portfolio cache lookups by result (hit, miss, error)."},
		[]string{"result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(LeadsTotal)
	reg.MustRegister(NotificationsTotal)
	reg.MustRegister(PortfolioCacheTotal)
}
