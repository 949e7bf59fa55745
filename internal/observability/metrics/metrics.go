package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "lngtrade_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	planCreateTotal   *prometheus.CounterVec
	planCreateLatency *prometheus.HistogramVec
	planReviewTotal   *prometheus.CounterVec

	orderOpsTotal *prometheus.CounterVec

	depositReviewTotal *prometheus.CounterVec

	stampTotal *prometheus.CounterVec

	invoiceIssueTotal *prometheus.CounterVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec

	notificationsTotal *prometheus.CounterVec
)

// Init registers the platform metrics. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		planCreateTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "plan_create_total",
				Help: "Total plan create operations by result",
			},
			[]string{"result"},
		)
		planCreateLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "plan_create_latency_seconds",
				Help:    "Plan create latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		planReviewTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "plan_review_total",
				Help: "Total plan review decisions by action",
			},
			[]string{"action"},
		)

		orderOpsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "order_ops_total",
				Help: "Total order fulfillment operations by op and result",
			},
			[]string{"op", "result"},
		)

		depositReviewTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "deposit_review_total",
				Help: "Total deposit reviews by action",
			},
			[]string{"action"},
		)

		stampTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "statement_stamp_total",
				Help: "Total statement stamp attempts by actor and result",
			},
			[]string{"actor", "result"},
		)

		invoiceIssueTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "invoice_issue_total",
				Help: "Total invoice issue operations by result",
			},
			[]string{"result"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total statement/ledger exports by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_latency_seconds",
				Help:    "Export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		notificationsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "notifications_total",
				Help: "Total notifications emitted by category",
			},
			[]string{"category"},
		)

		prometheus.MustRegister(
			planCreateTotal,
			planCreateLatency,
			planReviewTotal,
			orderOpsTotal,
			depositReviewTotal,
			stampTotal,
			invoiceIssueTotal,
			exportTotal,
			exportLatency,
			notificationsTotal,
		)
	})
}

// RegisterAccountGauges exposes the fund position as gauges.
func RegisterAccountGauges(total, available, occupied, frozen func() float64) {
	register := func(name, help string, fn func() float64) {
		prometheus.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{Name: metricPrefix + name, Help: help},
			fn,
		))
	}
	register("account_total", "Account total balance", total)
	register("account_available", "Account available balance", available)
	register("account_occupied", "Account occupied balance", occupied)
	register("account_frozen", "Account frozen balance", frozen)
}

// ObservePlanCreate records plan create latency and result.
func ObservePlanCreate(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if planCreateTotal != nil {
		planCreateTotal.WithLabelValues(result).Inc()
	}
	if planCreateLatency != nil {
		planCreateLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// IncPlanReview increments plan review decisions.
func IncPlanReview(action string) {
	if planReviewTotal != nil {
		planReviewTotal.WithLabelValues(action).Inc()
	}
}

// IncOrderOp increments order fulfillment operation counters.
func IncOrderOp(op, result string) {
	if result == "" {
		result = resultSuccess
	}
	if orderOpsTotal != nil {
		orderOpsTotal.WithLabelValues(op, result).Inc()
	}
}

// IncDepositReview increments deposit review counters.
func IncDepositReview(action string) {
	if depositReviewTotal != nil {
		depositReviewTotal.WithLabelValues(action).Inc()
	}
}

// IncStamp increments stamp attempt counters.
func IncStamp(actor, result string) {
	if result == "" {
		result = resultSuccess
	}
	if stampTotal != nil {
		stampTotal.WithLabelValues(actor, result).Inc()
	}
}

// IncInvoiceIssue increments invoice issue counters.
func IncInvoiceIssue(result string) {
	if result == "" {
		result = resultSuccess
	}
	if invoiceIssueTotal != nil {
		invoiceIssueTotal.WithLabelValues(result).Inc()
	}
}

// ObserveExport records export latency and result.
func ObserveExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// IncNotification counts an emitted notification.
func IncNotification(category string) {
	if category == "" {
		category = "unknown"
	}
	if notificationsTotal != nil {
		notificationsTotal.WithLabelValues(category).Inc()
	}
}

// Exported result constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
