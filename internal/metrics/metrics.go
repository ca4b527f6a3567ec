package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	DonationsRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "donations_recorded_total", Help: "Total donation records inserted"},
	)
	DonationsAmended = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "donations_amended_total", Help: "Total donation records amended"},
	)
	DonationsRemoved = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "donations_removed_total", Help: "Total donation records removed"},
	)
	RecomputeFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "donation_total_recompute_failures_total", Help: "Total failed recomputations of users.total_donations"},
	)
	Logins = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "logins_total", Help: "Total successful logins"},
	)
)

func Register() {
	prometheus.MustRegister(DonationsRecorded, DonationsAmended, DonationsRemoved, RecomputeFailures, Logins)
}
