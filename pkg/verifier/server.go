package verifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/snehendu098/ghost/wallet/pkg/account"
	"github.com/snehendu098/ghost/wallet/pkg/log"
	"github.com/snehendu098/ghost/wallet/pkg/sign"
)

const (
	requestIDHeader = "X-Request-ID"
	tracerName      = "github.com/snehendu098/ghost/wallet/pkg/verifier"

	PathVerify  = "/v1/verify"
	PathDerive  = "/v1/derive"
	PathRecover = "/v1/recover"
	PathHealth  = "/healthz"
	PathMetrics = "/metrics"
)

// Message encodings accepted by the verify and recover endpoints.
const (
	EncodingUTF8 = "utf8"
	EncodingHex  = "hex"
)

type VerifyRequest struct {
	Address   string `json:"address" validate:"required,aleo_address"`
	Message   string `json:"message"`
	Encoding  string `json:"encoding,omitempty" validate:"omitempty,oneof=utf8 hex"`
	Signature string `json:"signature" validate:"required"`
}

type VerifyResponse struct {
	RequestID string `json:"request_id"`
	Valid     bool   `json:"valid"`
}

type DeriveRequest struct {
	ViewKey string `json:"view_key" validate:"required,aleo_view_key"`
}

type DeriveResponse struct {
	RequestID string `json:"request_id"`
	Address   string `json:"address"`
}

type RecoverRequest struct {
	Message   string `json:"message"`
	Encoding  string `json:"encoding,omitempty" validate:"omitempty,oneof=utf8 hex"`
	Signature string `json:"signature" validate:"required"`
}

type RecoverResponse struct {
	RequestID string `json:"request_id"`
	Address   string `json:"address"`
}

type ErrorResponse struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
}

type requestIDKey struct{}

// Server is the HTTP front end for signature verification and address derivation.
type Server struct {
	cfg      Config
	lg       log.Logger
	metrics  *Metrics
	validate *validator.Validate
	tracer   trace.Tracer
}

// NewServer creates a Server. A nil metrics registers a fresh set with the
// default Prometheus registerer.
func NewServer(cfg Config, lg log.Logger, metrics *Metrics) *Server {
	if lg == nil {
		lg = log.NewNoopLogger()
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Server{
		cfg:      cfg.withDefaults(),
		lg:       lg.WithName("verifier"),
		metrics:  metrics,
		validate: getValidator(),
		tracer:   otel.Tracer(tracerName),
	}
}

// Handler returns the API mux. Metrics are served separately, see Run.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST "+PathVerify, s.instrument(PathVerify, s.handleVerify))
	mux.Handle("POST "+PathDerive, s.instrument(PathDerive, s.handleDerive))
	mux.Handle("POST "+PathRecover, s.instrument(PathRecover, s.handleRecover))
	mux.HandleFunc("GET "+PathHealth, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// MetricsHandler serves gatherer in the Prometheus exposition format.
func MetricsHandler(gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mux := http.NewServeMux()
	mux.Handle(PathMetrics, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}

// Run serves the API and metrics listeners until ctx is cancelled or one of
// them fails, then shuts both down.
func (s *Server) Run(ctx context.Context, gatherer prometheus.Gatherer) error {
	apiServer := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	metricsServer := &http.Server{
		Addr:              s.cfg.MetricsListenAddr,
		Handler:           MetricsHandler(gatherer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		s.lg.Info("Prometheus metrics available", "listenAddr", s.cfg.MetricsListenAddr, "endpoint", PathMetrics)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("metrics server: %w", err)
		}
	}()
	go func() {
		s.lg.Info("verification API available", "listenAddr", s.cfg.ListenAddr)
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("api server: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		s.lg.Error("server failure", "error", runErr)
	}

	s.lg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		s.lg.Error("failed to shut down api server", "error", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		s.lg.Error("failed to shut down metrics server", "error", err)
	}
	return runErr
}

// instrument assigns a request ID, opens a server span, attaches a request
// scoped logger and bounds the body size before calling next.
func (s *Server) instrument(path string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		ctx, span := s.tracer.Start(r.Context(), path, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()
		span.SetAttributes(attribute.String("request.id", requestID))

		ctx = context.WithValue(ctx, requestIDKey{}, requestID)
		ctx = log.SetContextLogger(ctx, s.lg.WithKV("requestId", requestID).WithKV("path", path))

		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
		next(w, r.WithContext(ctx))

		s.metrics.RequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lg := log.FromContext(ctx)

	var req VerifyRequest
	if err := s.decodeRequest(r, &req); err != nil {
		s.metrics.VerifyRequests.WithLabelValues("bad_request").Inc()
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	msg, err := decodeMessage(req.Message, req.Encoding)
	if err != nil {
		s.metrics.VerifyRequests.WithLabelValues("bad_request").Inc()
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	// validated above
	addr, _ := account.ParseAddress(req.Address)

	valid := false
	if sig, err := sign.ParseSignature(req.Signature); err == nil {
		valid = sign.Verify(sign.NewAleoAddress(addr), msg, sig)
	}

	result := "invalid"
	if valid {
		result = "valid"
	}
	s.metrics.VerifyRequests.WithLabelValues(result).Inc()
	lg.Debug("signature checked", "address", addr, "valid", valid)

	writeJSON(w, http.StatusOK, VerifyResponse{RequestID: requestIDFrom(ctx), Valid: valid})
}

func (s *Server) handleDerive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lg := log.FromContext(ctx)

	var req DeriveRequest
	if err := s.decodeRequest(r, &req); err != nil {
		s.metrics.DeriveRequests.WithLabelValues("bad_request").Inc()
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	vk, err := account.ParseViewKey(req.ViewKey)
	if err != nil {
		s.metrics.DeriveRequests.WithLabelValues("bad_request").Inc()
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	addr := account.AddressFromViewKey(vk)
	vk.Zero()

	s.metrics.DeriveRequests.WithLabelValues("ok").Inc()
	lg.Debug("address derived", "address", addr)

	writeJSON(w, http.StatusOK, DeriveResponse{RequestID: requestIDFrom(ctx), Address: addr.String()})
}

func (s *Server) handleRecover(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RecoverRequest
	if err := s.decodeRequest(r, &req); err != nil {
		s.metrics.RecoverRequests.WithLabelValues("bad_request").Inc()
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	msg, err := decodeMessage(req.Message, req.Encoding)
	if err != nil {
		s.metrics.RecoverRequests.WithLabelValues("bad_request").Inc()
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	sig, err := sign.ParseSignature(req.Signature)
	if err != nil {
		s.metrics.RecoverRequests.WithLabelValues("bad_request").Inc()
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	recoverer, err := sign.NewAddressRecovererFromSignature(sig)
	if err != nil {
		s.metrics.RecoverRequests.WithLabelValues("bad_request").Inc()
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	addr, err := recoverer.RecoverAddress(msg, sig)
	if err != nil {
		s.metrics.RecoverRequests.WithLabelValues("invalid").Inc()
		s.writeError(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	s.metrics.RecoverRequests.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, RecoverResponse{RequestID: requestIDFrom(ctx), Address: addr.String()})
}

// decodeRequest reads a JSON body into dst and validates it. Field failures on
// key and address tags are reported with the underlying decode error.
func (s *Server) decodeRequest(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}

	err := s.validate.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	value, _ := fe.Value().(string)
	var decodeErr error
	switch fe.Tag() {
	case "aleo_address":
		_, decodeErr = account.ParseAddress(value)
	case "aleo_view_key":
		_, decodeErr = account.ParseViewKey(value)
	}
	if decodeErr != nil {
		s.metrics.recordDecodeError(decodeErr)
		return decodeErr
	}
	return fmt.Errorf("field %s failed on %q", fe.Field(), fe.Tag())
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	log.FromContext(r.Context()).Warn("request rejected", "status", status, "error", err)
	writeJSON(w, status, ErrorResponse{RequestID: requestIDFrom(r.Context()), Error: err.Error()})
}

func decodeMessage(message, encoding string) ([]byte, error) {
	if encoding != EncodingHex {
		return []byte(message), nil
	}
	msg, err := hexutil.Decode(message)
	if err != nil {
		return nil, fmt.Errorf("invalid hex message: %w", err)
	}
	return msg, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
