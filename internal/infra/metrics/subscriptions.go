package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		codesGeneratedTotal,
		activationAttemptsTotal,
		subscriptionsActivatedTotal,
		subscriptionsDeactivatedTotal,
	)
}

// Activation attempt outcomes.
const (
	AttemptActivated   = "activated"
	AttemptInvalid     = "invalid"
	AttemptUsed        = "used"
	AttemptRateLimited = "rate_limited"
	AttemptBusy        = "busy"
	AttemptError       = "error"
)

var (
	codesGeneratedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activation_codes_generated_total",
			Help: "Activation codes minted, by subscription length in days.",
		},
		[]string{"days"},
	)

	activationAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activation_attempts_total",
			Help: "Activation attempts by outcome.",
		},
		[]string{"result"}, // activated|invalid|used|rate_limited|busy|error
	)

	subscriptionsActivatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subscriptions_activated_total",
			Help: "Subscriptions started from an activation code, by plan.",
		},
		[]string{"plan"},
	)

	subscriptionsDeactivatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "subscriptions_deactivated_total",
			Help: "Subscriptions returned to the starter plan.",
		},
	)
)

func AddCodesGenerated(days, n int) {
	codesGeneratedTotal.WithLabelValues(strconv.Itoa(days)).Add(float64(n))
}

func IncActivationAttempt(result string) {
	activationAttemptsTotal.WithLabelValues(norm(result)).Inc()
}

func IncSubscriptionActivated(plan string) {
	subscriptionsActivatedTotal.WithLabelValues(norm(plan)).Inc()
}

func IncSubscriptionDeactivated() {
	subscriptionsDeactivatedTotal.Inc()
}
