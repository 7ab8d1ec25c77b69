package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// SendPath is the relay's only route.
const SendPath = "/send-notification"

const maxBodyBytes = 1 << 20

// Sender is what the HTTP server hands validated requests to.
type Sender interface {
	Send(ctx context.Context, req Request) error
}

type server struct {
	mux    *http.ServeMux
	sender Sender
	log    *zap.Logger
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewHandler returns the relay's HTTP handler.
func NewHandler(sender Sender, log *zap.Logger) http.Handler {
	s := &server{
		mux:    http.NewServeMux(),
		sender: sender,
		log:    log,
	}
	s.registerHandlers()
	return s.mux
}

// StartServer serves the relay on addr in the background.
func StartServer(addr string, sender Sender, log *zap.Logger) *http.Server {
	const defaultTimeout = 5 * time.Second
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           NewHandler(sender, log),
		ReadHeaderTimeout: defaultTimeout,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	return httpServer
}

func (s *server) registerHandlers() {
	s.mux.Handle("POST "+SendPath, s.logsMiddleware(s.SendNotificationHandler))
	s.mux.Handle("OPTIONS "+SendPath, s.logsMiddleware(s.PreflightHandler))
}

func (s *server) logsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("url", r.URL.String()),
		)

		start := time.Now()
		setCORSHeaders(w)
		next(w, r)

		s.log.Info("response",
			zap.String("method", r.Method),
			zap.String("url", r.URL.String()),
			zap.Duration("completion_time", time.Since(start)),
		)
	})
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
}

func (s *server) respondWithJSON(w http.ResponseWriter, code int, resp interface{}) {
	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error("failed to encode JSON for response", zap.Error(err))
	}
}

func (s *server) respondWithError(w http.ResponseWriter, err error) {
	s.respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

// PreflightHandler answers CORS preflight requests.
func (s *server) PreflightHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// SendNotificationHandler decodes a Request and runs it through the Sender.
func (s *server) SendNotificationHandler(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	var req Request
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.respondWithError(w, errors.New("failed to decode json: "+err.Error()))
		return
	}

	if err := s.sender.Send(r.Context(), req); err != nil {
		s.log.Warn("notification failed", zap.String("user_id", req.UserID), zap.Error(err))
		s.respondWithError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, messageResponse{Message: "Notification sent successfully"})
}
