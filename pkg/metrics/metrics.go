package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	AuthAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "pulsedash", Name: "auth_attempts_total", Help: "Signup and login attempts by operation and result."},
		[]string{"op", "result"},
	)
	DirectoryRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "pulsedash", Name: "directory_requests_total", Help: "Authenticated directory and stats requests by route."},
		[]string{"route"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(AuthAttempts)
	reg.MustRegister(DirectoryRequests)
}
