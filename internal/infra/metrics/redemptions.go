package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(redemptionsByPlan) }

var redemptionsByPlan = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "activation_redemptions",
		Help: "Codes in the used-codes set, by plan.",
	},
	[]string{"plan"},
)

func SetRedemptionsByPlan(counts map[string]int) {
	for plan, n := range counts {
		redemptionsByPlan.WithLabelValues(norm(plan)).Set(float64(n))
	}
}
