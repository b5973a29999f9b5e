package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"bank-ledger/pkg/logging"
	"bank-ledger/pkg/service"
)

// Server provides the HTTP/JSON boundary over the ledger service. It is thin
// glue: it decodes requests, calls the facade, and maps status codes to HTTP
// statuses. All invariants live below it.
type Server struct {
	svc    *service.LedgerService
	logger *logging.Logger
	router *mux.Router
	server *http.Server
	config ServerConfig
}

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	// Address to listen on (e.g., ":8080")
	Address string

	// ReadTimeout for HTTP requests
	ReadTimeout time.Duration

	// WriteTimeout for HTTP responses
	WriteTimeout time.Duration
}

// DefaultServerConfig returns a default configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:      ":8080",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// NewServer creates the HTTP server. metricsHandler serves /metrics when
// non-nil (pass promhttp.HandlerFor(...) from the daemon).
func NewServer(svc *service.LedgerService, logger *logging.Logger, metricsHandler http.Handler, config ServerConfig) *Server {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}

	s := &Server{
		svc:    svc,
		logger: logger.Named("api"),
		config: config,
	}

	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{id}/balance", s.handleGetBalance).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{id}/balance", s.handleUpdateBalance).Methods(http.MethodPost)
	r.HandleFunc("/accounts/{id}/transactions", s.handleHistory).Methods(http.MethodGet)
	r.HandleFunc("/transfers", s.handleTransfer).Methods(http.MethodPost)
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler).Methods(http.MethodGet)
	}
	s.router = r

	s.server = &http.Server{
		Addr:         config.Address,
		Handler:      r,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server in a goroutine.
func (s *Server) Start() {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", zap.Error(err))
		}
	}()
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// handleHealth returns a simple health check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

// handleGetBalance serves GET /accounts/{id}/balance.
func (s *Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	resp, err := s.svc.GetBalance(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// updateBalanceRequest is the body of POST /accounts/{id}/balance.
// Amount is a signed decimal string: positive deposits, negative withdraws.
type updateBalanceRequest struct {
	Amount string `json:"amount"`
}

// handleUpdateBalance serves POST /accounts/{id}/balance.
func (s *Server) handleUpdateBalance(w http.ResponseWriter, r *http.Request) {
	var req updateBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, service.Errorf(service.InvalidArgument, "Invalid request body"))
		return
	}

	resp, err := s.svc.UpdateBalance(r.Context(), mux.Vars(r)["id"], req.Amount)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// transferRequest is the body of POST /transfers.
type transferRequest struct {
	FromUserID  string `json:"from_user_id"`
	ToUserID    string `json:"to_user_id"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// handleTransfer serves POST /transfers.
func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, service.Errorf(service.InvalidArgument, "Invalid request body"))
		return
	}

	resp, err := s.svc.InitiateTransfer(r.Context(), req.FromUserID, req.ToUserID, req.Amount, req.Description)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleHistory serves GET /accounts/{id}/transactions.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	resp, err := s.svc.GetTransactionHistory(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// errorResponse is the JSON body for failed requests.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps a service error to an HTTP status and JSON body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := service.CodeOf(err)

	message := err.Error()
	var se *service.Error
	if errors.As(err, &se) {
		message = se.Message
	}
	if code == service.Internal {
		s.logger.Error("internal error", zap.Error(err))
	}

	writeJSON(w, httpStatus(code), errorResponse{
		Code:    code.String(),
		Message: message,
	})
}

// httpStatus maps the service status taxonomy onto HTTP statuses.
func httpStatus(code service.Code) int {
	switch code {
	case service.InvalidArgument:
		return http.StatusBadRequest
	case service.NotFound:
		return http.StatusNotFound
	case service.InsufficientFunds:
		return http.StatusConflict
	case service.Internal:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
