// Package metrics defines and registers all custom Prometheus metrics for the
// khata ledger API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register themselves with the default registry at init time via
// promauto; expose them by mounting promhttp.Handler on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "khata"

// LoginAttemptsTotal counts login outcomes.
// Label:
//   - result: "success", "invalid_credentials", or "not_verified"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// OTPSentTotal counts verification codes dispatched by mail.
var OTPSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_sent_total",
		Help:      "Total number of email verification codes sent.",
	},
)

// OTPVerificationsTotal counts OTP verification outcomes.
// Label:
//   - result: "success", "mismatch", "expired", or "no_pending"
var OTPVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_verifications_total",
		Help:      "Total number of OTP verification attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// AuthRejectionsTotal counts requests rejected by the bearer-token gate.
// Label:
//   - reason: "expired", "malformed", or "unknown_subject"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the request authenticator.",
	},
	[]string{"reason"},
)
