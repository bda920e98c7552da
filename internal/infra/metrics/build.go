package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(buildInfo) }

var buildInfo = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "build_info",
		Help: "Constant 1, labelled with version, commit and the id of the activation key in use.",
	},
	[]string{"version", "commit", "key_id"},
)

func SetBuildInfo(version, commit, keyID string) {
	buildInfo.WithLabelValues(version, commit, keyID).Set(1)
}
