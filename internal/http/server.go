// Package http exposes the household ledger as a JSON API. Handlers stay
// thin: they decode, call into the store and services, and encode. All
// mutation routes pass through the role gate before touching state.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"time"

	"familywallet/internal/core"
	"familywallet/internal/log"
	"familywallet/internal/store"
)

// Adviser answers free-form questions about the household data.
type Adviser interface {
	Advise(ctx context.Context, members []core.FamilyMember, txs []core.Transaction, question string) string
	Enabled() bool
}

// Config carries the server's runtime knobs.
type Config struct {
	Addr               string
	ActorRole          core.Role
	DisplayCurrency    string
	RateLimitPerMinute int
}

type Server struct {
	http.Server
	store       *store.Store
	adviser     Adviser
	actorRole   core.Role
	displayCur  string
	rateLimiter *rateLimiter
	logger      *log.Logger

	now func() time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(cfg Config, st *store.Store, adv Adviser, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    cfg.Addr,
			Handler: mux,
		},
		store:       st,
		adviser:     adv,
		actorRole:   cfg.ActorRole,
		displayCur:  cfg.DisplayCurrency,
		rateLimiter: newRateLimiter(cfg.RateLimitPerMinute),
		logger:      logger.WithComponent(log.ComponentHTTP),

		now: time.Now,
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("GET /api/transactions", s.withMiddleware(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.withMiddleware(s.requireEditor(s.handleCreateTransaction)))
	mux.HandleFunc("PUT /api/transactions/{id}", s.withMiddleware(s.requireEditor(s.handleUpdateTransaction)))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withMiddleware(s.requireEditor(s.handleDeleteTransaction)))

	mux.HandleFunc("GET /api/bills", s.withMiddleware(s.handleListBills))
	mux.HandleFunc("POST /api/bills", s.withMiddleware(s.requireEditor(s.handleCreateBill)))
	mux.HandleFunc("PUT /api/bills/{id}", s.withMiddleware(s.requireEditor(s.handleUpdateBill)))
	mux.HandleFunc("DELETE /api/bills/{id}", s.withMiddleware(s.requireEditor(s.handleDeleteBill)))
	mux.HandleFunc("POST /api/bills/{id}/pay", s.withMiddleware(s.requireEditor(s.handlePayBill)))

	mux.HandleFunc("GET /api/investments", s.withMiddleware(s.handleListInvestments))
	mux.HandleFunc("POST /api/investments", s.withMiddleware(s.requireEditor(s.handleCreateInvestment)))
	mux.HandleFunc("PUT /api/investments/{id}", s.withMiddleware(s.requireEditor(s.handleUpdateInvestment)))
	mux.HandleFunc("DELETE /api/investments/{id}", s.withMiddleware(s.requireEditor(s.handleDeleteInvestment)))
	mux.HandleFunc("POST /api/investments/simulate", s.withMiddleware(s.requireEditor(s.handleSimulateMarket)))

	mux.HandleFunc("GET /api/members", s.withMiddleware(s.handleListMembers))
	mux.HandleFunc("POST /api/members", s.withMiddleware(s.requireAdmin(s.handleCreateMember)))
	mux.HandleFunc("PUT /api/members/{id}", s.withMiddleware(s.requireAdmin(s.handleUpdateMember)))
	mux.HandleFunc("DELETE /api/members/{id}", s.withMiddleware(s.requireAdmin(s.handleDeleteMember)))

	mux.HandleFunc("GET /api/dashboard", s.withMiddleware(s.handleDashboard))
	mux.HandleFunc("GET /api/reports", s.withMiddleware(s.handleRangeReport))
	mux.HandleFunc("POST /api/chat", s.withMiddleware(s.handleChat))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// requireEditor rejects mutations when the acting role has no edit rights.
func (s *Server) requireEditor(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.actorRole.CanEdit() {
			respondError(w, http.StatusForbidden,
				fmt.Sprintf("role %s cannot modify data", s.actorRole))
			return
		}
		next(w, r)
	}
}

// requireAdmin guards member management, which only the Admin role may touch.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.actorRole != core.RoleAdmin {
			respondError(w, http.StatusForbidden,
				fmt.Sprintf("role %s cannot manage family members", s.actorRole))
			return
		}
		next(w, r)
	}
}

// withMiddleware adds security headers, rate limiting, and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Extract client IP (considering proxies)
		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		s.logger.DebugContext(ctx, "request started",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldClientIP, clientIP,
			log.FieldUserAgent, r.Header.Get("User-Agent"))

		// Mutations are rate limited; reads are not.
		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			s.logger.WarnContext(ctx, "rate limit exceeded",
				log.FieldRequestID, requestID,
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			respondError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		s.logger.InfoContext(ctx, "request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, duration.Milliseconds(),
			log.FieldClientIP, clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
