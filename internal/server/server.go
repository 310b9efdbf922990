// Package server wires the gateway together and runs its HTTP surface.
package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	"payment-gateway/internal/config"
	"payment-gateway/internal/domain"
	"payment-gateway/internal/errors"
	"payment-gateway/internal/handler"
	"payment-gateway/internal/idgen"
	"payment-gateway/internal/method"
	"payment-gateway/internal/repository"
	"payment-gateway/internal/scheduler"
	"payment-gateway/internal/service"
)

// Server represents the HTTP server and the component graph behind it.
type Server struct {
	router *mux.Router
	server *http.Server
	db     *sql.DB
	cron   *scheduler.CronRunner
	logger *slog.Logger
	port   string
}

// NewServer builds the full gateway: store backend, strategies, registry,
// orchestrator, scheduler and HTTP routes.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	s := &Server{logger: logger}

	store, err := s.buildStore(cfg)
	if err != nil {
		return nil, err
	}

	ids := idgen.New()
	ledger := method.NewWalletLedger()

	registry := method.NewRegistry()
	registry.Register("card", method.NewCardPayment(store, ids, logger, nil, nil))
	registry.Register("upi", method.NewUPIPayment(store, ids, logger, nil, nil))
	registry.Register("banktransfer", method.NewBankTransferPayment(store, ids, logger, nil, nil))
	registry.Register("crypto", method.NewCryptoPayment(store, ids, logger, nil))
	registry.Register("netbank", method.NewNetBankingPayment(store, ids, logger, nil))
	registry.Register("wallet", method.NewWalletPayment(store, ids, logger, ledger))

	payments := service.NewPaymentService(registry, service.NewPayRequestValidator(), store, logger)
	payers := service.NewPayerService(repository.NewFilePayerStore(filepath.Join(cfg.DataDir, cfg.PayersFile)), logger)
	reports := service.NewReportGenerator(store)

	recurring := scheduler.NewRecurringScheduler(
		payments,
		ids,
		repository.NewFileRecurringStore(filepath.Join(cfg.DataDir, cfg.RecurringFile)),
		logger,
	)
	s.cron = scheduler.NewCronRunner(recurring, logger)
	if err := s.cron.Start(cfg.RecurringSchedule); err != nil {
		return nil, errors.NewAppError(errors.InternalError, "invalid recurring schedule").WithDetails(err.Error())
	}

	paymentHandler := handler.NewPaymentHandler(payments, payers, cfg.DefaultCurrency)
	adminHandler := handler.NewAdminHandler(payers, ledger, recurring, reports, store, cfg.DefaultCurrency)

	router := mux.NewRouter()
	router.Use(loggingMiddleware(logger))

	router.HandleFunc("/payments", paymentHandler.Pay).Methods("POST")
	router.HandleFunc("/refunds", paymentHandler.Refund).Methods("POST")
	router.HandleFunc("/transactions", adminHandler.ListTransactions).Methods("GET")
	router.HandleFunc("/transactions/{transaction_id}", paymentHandler.GetTransaction).Methods("GET")

	router.HandleFunc("/payers", adminHandler.AddPayer).Methods("POST")
	router.HandleFunc("/payers", adminHandler.ListPayers).Methods("GET")
	router.HandleFunc("/wallet/credit", adminHandler.CreditWallet).Methods("POST")

	router.HandleFunc("/recurring", adminHandler.ScheduleRecurring).Methods("POST")
	router.HandleFunc("/recurring", adminHandler.ListRecurring).Methods("GET")
	router.HandleFunc("/recurring/process", adminHandler.ProcessRecurring).Methods("POST")

	router.HandleFunc("/report", adminHandler.Report).Methods("GET")
	router.HandleFunc("/report/summary", adminHandler.Summary).Methods("GET")

	router.HandleFunc("/health", s.health).Methods("GET")

	s.router = router
	return s, nil
}

// buildStore selects the transaction store backend from configuration.
func (s *Server) buildStore(cfg *config.Config) (domain.TransactionStore, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return repository.NewMemoryTransactionStore(), nil
	case config.BackendFile:
		return repository.NewFileTransactionStore(filepath.Join(cfg.DataDir, cfg.TransactionsFile), s.logger)
	case config.BackendPostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, err
		}
		s.db = db
		s.logger.Info("Successfully connected to database")
		return repository.NewPostgresTransactionStore(db, s.logger), nil
	default:
		return nil, errors.NewAppErrorf(errors.InvalidInput, "unknown store backend %q", cfg.StoreBackend)
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "unhealthy", "error": "database unavailable"})
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// loggingMiddleware tags each request with a correlation id and logs it on
// completion.
func loggingMiddleware(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", requestID)

			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r)

			logger.Info("request completed",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration", time.Since(start),
			)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Start starts the HTTP server on the specified port. Port "0" picks a free
// one; the actual port is returned via GetPort.
func (s *Server) Start(port string) (string, error) {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return "", err
	}

	addr := listener.Addr().(*net.TCPAddr)
	s.port = strconv.Itoa(addr.Port)

	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server", "port", s.port)

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Server failed", "error", err)
		}
	}()

	return s.port, nil
}

// Stop gracefully shuts down the cron runner, the database connection and
// the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server")

	if s.cron != nil {
		stopCtx := s.cron.Stop()
		select {
		case <-stopCtx.Done():
		case <-ctx.Done():
		}
	}

	if s.db != nil {
		s.db.Close()
	}

	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// GetPort returns the port the server is listening on
func (s *Server) GetPort() string {
	return s.port
}

// GetBaseURL returns the base URL for the server
func (s *Server) GetBaseURL() string {
	return "http://localhost:" + s.port
}
