package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apihttp "lngtrade-cloud/internal/api/http"
	"lngtrade-cloud/internal/audit"
	"lngtrade-cloud/internal/auth"
	"lngtrade-cloud/internal/config"
	exceptionsapp "lngtrade-cloud/internal/exceptions/application"
	fundsapp "lngtrade-cloud/internal/funds/application"
	ledgerarchive "lngtrade-cloud/internal/funds/infrastructure/postgres"
	identityapp "lngtrade-cloud/internal/identity/application"
	invoicingapp "lngtrade-cloud/internal/invoicing/application"
	masterdataapp "lngtrade-cloud/internal/masterdata/application"
	"lngtrade-cloud/internal/notify"
	notifyapp "lngtrade-cloud/internal/notify/application"
	"lngtrade-cloud/internal/numbering"
	"lngtrade-cloud/internal/observability/metrics"
	onboardingapp "lngtrade-cloud/internal/onboarding/application"
	ordersapp "lngtrade-cloud/internal/orders/application"
	plansapp "lngtrade-cloud/internal/plans/application"
	reportingapp "lngtrade-cloud/internal/reporting/application"
	settlementapp "lngtrade-cloud/internal/settlement/application"
	settlementhttp "lngtrade-cloud/internal/settlement/interfaces"
	"lngtrade-cloud/internal/state"
)

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	store := state.NewStore(state.Seed())
	gen := numbering.NewGenerator(numbering.NewAtomicCounter(0))
	clock := state.SystemClock{}

	metrics.Init()
	metrics.RegisterAccountGauges(
		func() float64 { return store.Account().Total },
		func() float64 { return store.Account().Available },
		func() float64 { return store.Account().Occupied },
		func() float64 { return store.Account().Frozen },
	)

	var db *sql.DB
	var auditLogger audit.Logger
	if cfg.DatabaseURL != "" {
		db, err = sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("open database: %v", err)
		}
		defer db.Close()
		if repo := audit.NewRepository(db); repo != nil {
			auditLogger = repo
		}
		archive := ledgerarchive.NewLedgerArchive(db)
		go runLedgerArchive(store, archive, logger)
	}

	channel := buildNotifyChannel(cfg.NotifyWebhookURL, logger)
	notifyService, err := notifyapp.NewService(store, channel, logger)
	if err != nil {
		logger.Fatalf("notify service: %v", err)
	}

	issuer, err := identityapp.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL)
	if err != nil {
		logger.Fatalf("token issuer: %v", err)
	}

	identityService, err := identityapp.NewService(store, gen, clock, issuer)
	if err != nil {
		logger.Fatalf("identity service: %v", err)
	}
	planService, err := plansapp.NewService(store, gen, clock,
		plansapp.WithLowBalanceThreshold(cfg.LowBalanceThreshold),
		plansapp.WithDiffThreshold(cfg.DiffThreshold),
		plansapp.WithOutbound(notifyService),
	)
	if err != nil {
		logger.Fatalf("plan service: %v", err)
	}
	orderService, err := ordersapp.NewService(store, gen, clock)
	if err != nil {
		logger.Fatalf("order service: %v", err)
	}
	fundService, err := fundsapp.NewService(store, gen, clock, fundsapp.WithOutbound(notifyService))
	if err != nil {
		logger.Fatalf("fund service: %v", err)
	}
	settlementService, err := settlementapp.NewService(store, gen, clock, settlementapp.WithOutbound(notifyService))
	if err != nil {
		logger.Fatalf("settlement service: %v", err)
	}
	invoicingService, err := invoicingapp.NewService(store, gen, clock, invoicingapp.WithOutbound(notifyService))
	if err != nil {
		logger.Fatalf("invoicing service: %v", err)
	}
	onboardingService, err := onboardingapp.NewService(store, gen, clock)
	if err != nil {
		logger.Fatalf("onboarding service: %v", err)
	}
	exceptionService, err := exceptionsapp.NewService(store, gen, clock)
	if err != nil {
		logger.Fatalf("exception service: %v", err)
	}
	masterdataService, err := masterdataapp.NewService(store, gen)
	if err != nil {
		logger.Fatalf("masterdata service: %v", err)
	}
	reportingService, err := reportingapp.NewService(store, gen, clock)
	if err != nil {
		logger.Fatalf("reporting service: %v", err)
	}

	authHandler, err := apihttp.NewAuthHandler(identityService)
	if err != nil {
		logger.Fatalf("auth handler: %v", err)
	}
	plansHandler, err := apihttp.NewPlansHandler(planService, store, auditLogger)
	if err != nil {
		logger.Fatalf("plans handler: %v", err)
	}
	ordersHandler, err := apihttp.NewOrdersHandler(orderService, store, auditLogger)
	if err != nil {
		logger.Fatalf("orders handler: %v", err)
	}
	fundsHandler, err := apihttp.NewFundsHandler(fundService, store, auditLogger)
	if err != nil {
		logger.Fatalf("funds handler: %v", err)
	}
	statementHandler, err := settlementhttp.NewStatementHandler(settlementService, store, auditLogger)
	if err != nil {
		logger.Fatalf("statement handler: %v", err)
	}
	invoicingHandler, err := apihttp.NewInvoicingHandler(invoicingService, store, auditLogger)
	if err != nil {
		logger.Fatalf("invoicing handler: %v", err)
	}
	onboardingHandler, err := apihttp.NewOnboardingHandler(onboardingService, store, auditLogger)
	if err != nil {
		logger.Fatalf("onboarding handler: %v", err)
	}
	exceptionsHandler, err := apihttp.NewExceptionsHandler(exceptionService, store, auditLogger)
	if err != nil {
		logger.Fatalf("exceptions handler: %v", err)
	}
	masterdataHandler, err := apihttp.NewMasterdataHandler(masterdataService, store, auditLogger)
	if err != nil {
		logger.Fatalf("masterdata handler: %v", err)
	}
	notificationsHandler, err := apihttp.NewNotificationsHandler(notifyService, store)
	if err != nil {
		logger.Fatalf("notifications handler: %v", err)
	}
	reportsHandler, err := apihttp.NewReportsHandler(reportingService, store, auditLogger)
	if err != nil {
		logger.Fatalf("reports handler: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/auth/", authHandler)
	mux.Handle("/api/v1/plans", plansHandler)
	mux.Handle("/api/v1/plans/", plansHandler)
	mux.Handle("/api/v1/orders", ordersHandler)
	mux.Handle("/api/v1/orders/", ordersHandler)
	mux.Handle("/api/v1/deposits", fundsHandler)
	mux.Handle("/api/v1/deposits/", fundsHandler)
	mux.Handle("/api/v1/account", fundsHandler)
	mux.Handle("/api/v1/ledgers", fundsHandler)
	mux.Handle("/api/v1/statements", statementHandler)
	mux.Handle("/api/v1/statements/", statementHandler)
	mux.Handle("/api/v1/upstream-archives", statementHandler)
	mux.Handle("/api/v1/exports/ledger.xlsx", statementHandler)
	mux.Handle("/api/v1/invoice-applications", invoicingHandler)
	mux.Handle("/api/v1/invoice-applications/", invoicingHandler)
	mux.Handle("/api/v1/invoices", invoicingHandler)
	mux.Handle("/api/v1/invoices/", invoicingHandler)
	mux.Handle("/api/v1/onboarding", onboardingHandler)
	mux.Handle("/api/v1/onboarding/", onboardingHandler)
	mux.Handle("/api/v1/exceptions", exceptionsHandler)
	mux.Handle("/api/v1/exceptions/", exceptionsHandler)
	mux.Handle("/api/v1/masterdata/", masterdataHandler)
	mux.Handle("/api/v1/notifications", notificationsHandler)
	mux.Handle("/api/v1/notifications/", notificationsHandler)
	mux.Handle("/api/v1/reports/daily-plan", reportsHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	policy := auth.NewDefaultPolicy(
		[]string{"/healthz", "/metrics"},
		[]string{"/api/v1/auth/"},
	)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      loggingMiddleware(logger, authMiddleware.Wrap(mux)),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Printf("listening on %s", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("http server: %v", err)
	}
}

// buildNotifyChannel turns the configured webhook endpoints into a delivery
// channel. Multiple comma-separated URLs fan out through a MultiChannel.
func buildNotifyChannel(raw string, logger *log.Logger) notify.Channel {
	var channels []notify.Channel
	for _, part := range strings.Split(raw, ",") {
		url := strings.TrimSpace(part)
		if url == "" {
			continue
		}
		ch, err := notify.NewWebhookChannel(url)
		if err != nil {
			logger.Fatalf("webhook channel: %v", err)
		}
		channels = append(channels, ch)
	}
	switch len(channels) {
	case 0:
		return nil
	case 1:
		return channels[0]
	default:
		return notify.NewMultiChannel(channels...)
	}
}

// runLedgerArchive mirrors committed ledger records into Postgres. The
// in-memory store stays authoritative; the mirror trails by one interval.
func runLedgerArchive(store *state.Store, archive *ledgerarchive.LedgerArchive, logger *log.Logger) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		snap := store.Snapshot()
		if err := archive.SaveAll(ctx, snap.Ledgers); err != nil {
			logger.Printf("ledger archive: %v", err)
		}
		cancel()
	}
}

func loggingMiddleware(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		logger.Printf("%s %s %d %s", r.Method, r.URL.Path, sw.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
