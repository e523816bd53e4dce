package health

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"time"

	"github.com/2beens/healthstats/internal/middleware"
	"github.com/2beens/healthstats/internal/telemetry/metrics"
	"github.com/2beens/healthstats/internal/telemetry/tracing"
	"github.com/2beens/healthstats/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=health_test

type recordsService interface {
	Add(ctx context.Context, raw RawRecord) (*HealthRecord, error)
	ListRaw(ctx context.Context) ([]RawRecord, error)
}

type dashboardAnalyzer interface {
	Dashboard(ctx context.Context, params DashboardParams) (*Dashboard, error)
	Overview(ctx context.Context, now time.Time, window Window) (*Overview, error)
}

// max size of one ingested record body
const maxRecordBodyBytes = 64 << 10

type Handler struct {
	service       recordsService
	analyzer      dashboardAnalyzer
	defaultWindow Window
	defaultMetric Metric
	now           func() time.Time
}

type NewHandlerParams struct {
	Service       recordsService
	Analyzer      dashboardAnalyzer
	DefaultWindow Window
	DefaultMetric Metric
	// Now is used to resolve the window cutoff, time.Now when nil
	Now func() time.Time
}

func NewHandler(params NewHandlerParams) *Handler {
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Handler{
		service:       params.Service,
		analyzer:      params.Analyzer,
		defaultWindow: params.DefaultWindow,
		defaultMetric: params.DefaultMetric,
		now:           now,
	}
}

// SetupRoutes registers the /health routes. The ingestion route is rate limited
// when a rate limiter is given.
func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	allowedPerMin int,
	metricsManager *metrics.Manager,
) {
	healthRouter := mainRouter.PathPrefix("/health").Subrouter()
	healthRouter.HandleFunc("/records", handler.HandleList).Methods("GET", "OPTIONS").Name("list-records")
	healthRouter.HandleFunc("/dashboard", handler.HandleDashboard).Methods("GET", "OPTIONS").Name("dashboard")
	healthRouter.HandleFunc("/overview", handler.HandleOverview).Methods("GET", "OPTIONS").Name("overview")

	ingestRouter := healthRouter.Methods("POST").Subrouter()
	ingestRouter.HandleFunc("/records", handler.HandleAdd).Name("add-record")
	if rateLimiter != nil && allowedPerMin > 0 {
		ingestRouter.Use(middleware.RateLimit(rateLimiter, "health-ingest", allowedPerMin, metricsManager))
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.add")
	defer span.End()

	// a missing content type is read as JSON, some clients (e.g. phone shortcuts) do not send one
	if contentType := r.Header.Get("Content-Type"); contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != pkg.ContentType.JSON {
			http.Error(w, "invalid content type", http.StatusBadRequest)
			return
		}
	}

	var raw RawRecord
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRecordBodyBytes)).Decode(&raw); err != nil {
		log.Errorf("add record, unmarshal json body: %s", err)
		http.Error(w, "error, invalid record body", http.StatusBadRequest)
		return
	}

	record, err := handler.service.Add(ctx, raw)
	if err != nil {
		if errors.Is(err, ErrInvalidRecord) {
			log.Warnf("add record rejected: %s", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("failed to add record: %s", err)
		http.Error(w, "error, failed to add record", http.StatusInternalServerError)
		return
	}

	span.SetAttributes(attribute.String("record.date", record.DateString()))
	log.Debugf("new health record added: [%s]", record.DateString())

	recordJson, err := json.Marshal(record)
	if err != nil {
		log.Errorf("failed to marshal new record: %s", err)
		http.Error(w, "error, failed to add record", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, recordJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.list")
	defer span.End()

	records, err := handler.service.ListRaw(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("failed to list records: %s", err)
		http.Error(w, "error, failed to get records", http.StatusInternalServerError)
		return
	}

	span.SetAttributes(attribute.Int("records.count", len(records)))

	recordsJson, err := json.Marshal(records)
	if err != nil {
		log.Errorf("failed to marshal records: %s", err)
		http.Error(w, "error, failed to get records", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, recordsJson)
}

func (handler *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.dashboard")
	defer span.End()

	window, err := handler.windowParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	metric := handler.defaultMetric
	if m := r.URL.Query().Get("metric"); m != "" {
		metric, err = ParseMetric(m)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	span.SetAttributes(
		attribute.String("window", window.String()),
		attribute.String("metric", metric.String()),
	)

	dashboard, err := handler.analyzer.Dashboard(ctx, DashboardParams{
		Now:    handler.now(),
		Window: window,
		Metric: metric,
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("failed to derive dashboard [%s] [%s]: %s", window, metric, err)
		http.Error(w, "error, failed to get dashboard", http.StatusInternalServerError)
		return
	}

	dashboardJson, err := json.Marshal(dashboard)
	if err != nil {
		log.Errorf("failed to marshal dashboard: %s", err)
		http.Error(w, "error, failed to get dashboard", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, dashboardJson)
}

func (handler *Handler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.overview")
	defer span.End()

	window, err := handler.windowParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	overview, err := handler.analyzer.Overview(ctx, handler.now(), window)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("failed to derive overview [%s]: %s", window, err)
		http.Error(w, "error, failed to get overview", http.StatusInternalServerError)
		return
	}

	overviewJson, err := json.Marshal(overview)
	if err != nil {
		log.Errorf("failed to marshal overview: %s", err)
		http.Error(w, "error, failed to get overview", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, overviewJson)
}

func (handler *Handler) windowParam(r *http.Request) (Window, error) {
	w := r.URL.Query().Get("window")
	if w == "" {
		return handler.defaultWindow, nil
	}
	return ParseWindow(w)
}
