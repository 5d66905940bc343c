package authsvc

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// logins counts code exchanges by result.
	logins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bionicpro_auth_logins_total",
			Help: "The total number of authorization code exchanges.",
		},
		[]string{"result"},
	)

	// tokenRefreshes counts refresh token grants by result.
	tokenRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bionicpro_auth_token_refreshes_total",
			Help: "The total number of refresh token grants.",
		},
		[]string{"result"},
	)

	sessionRotations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bionicpro_auth_session_rotations_total",
			Help: "The total number of sessions replaced by a new ID.",
		},
	)

	logouts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bionicpro_auth_logouts_total",
			Help: "The total number of logouts.",
		},
	)

	// rateLimited counts callback requests rejected by the limiter.
	rateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bionicpro_auth_rate_limited_total",
			Help: "The total number of callback requests rejected with 429.",
		},
	)
)

func resultLabel(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
