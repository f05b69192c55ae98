// Package metrics defines the custom Prometheus metrics of the accounts
// service. Collectors returns them for registration on the registry the
// router exposes on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "accounts"

// RegistrationsTotal counts registration attempts by outcome.
// Label:
//   - outcome: "created", "invalid", "conflict" or "failed"
var RegistrationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of user registration attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ValidationErrorsTotal counts individual failed validation rules.
// Labels:
//   - field: form field ("email", "first_name", "last_name", "password")
//   - code: rule code (e.g. "length", "uppercase", "invalid_email")
var ValidationErrorsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_errors_total",
		Help:      "Total number of failed validation rules on registration forms.",
	},
	[]string{"field", "code"},
)

// AdminLoginsTotal counts staff login attempts.
// Label:
//   - result: "success", "invalid_credentials", "forbidden" or "error"
var AdminLoginsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_logins_total",
		Help:      "Total number of admin area login attempts, by result.",
	},
	[]string{"result"},
)

// Collectors returns every custom collector of the service.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		RegistrationsTotal,
		ValidationErrorsTotal,
		AdminLoginsTotal,
	}
}
