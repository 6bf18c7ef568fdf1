// Package server exposes the pricing engine over HTTP for the presentation
// layer: JSON pricing requests, CSV batch uploads, rating table lookups, and
// Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/raroc-pricing/internal/cache"
	"github.com/iwvelando/raroc-pricing/internal/metrics"
	"github.com/iwvelando/raroc-pricing/internal/tracing"
	"github.com/iwvelando/raroc-pricing/pkg/cashflow"
	"github.com/iwvelando/raroc-pricing/pkg/constants"
	"github.com/iwvelando/raroc-pricing/pkg/output"
	"github.com/iwvelando/raroc-pricing/pkg/ratings"
	"github.com/iwvelando/raroc-pricing/pkg/validation"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	cache         cache.Repository
}

// NewHandler constructs the HTTP handler that serves the pricing API.
// cacheRepo may be nil to disable result caching.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string, cacheRepo cache.Repository) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion, cache: cacheRepo}

	mux := http.NewServeMux()

	// Pricing API endpoint (single loan, JSON body)
	mux.HandleFunc("/api/schedule", h.handleSchedule)

	// Pricing API endpoint (batch CSV upload)
	mux.HandleFunc("/api/schedule/upload", h.handleUpload)

	// Rating table lookups for UI pickers
	mux.HandleFunc("/api/ratings", h.handleRatings)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

type scheduleResponse struct {
	Loan           cashflow.LoanParameters    `json:"loan"`
	MonthlyPayment float64                    `json:"monthlyPayment"`
	Rows           []cashflow.AmortizationRow `json:"rows"`
	Summary        cashflow.SummaryMetrics    `json:"summary"`
	CSV            string                     `json:"csv"`
	Warnings       []string                   `json:"warnings,omitempty"`
	Duration       string                     `json:"duration,omitempty"`
}

type uploadResponse struct {
	Results  []scheduleResponse `json:"results"`
	Duration string             `json:"duration"`
}

type ratingEntry struct {
	Rating int     `json:"rating"`
	PD     float64 `json:"pd"`
}

type gradeEntry struct {
	Grade string  `json:"grade"`
	LGD   float64 `json:"lgd"`
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	var params cashflow.LoanParameters
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode loan parameters: %v", err), "server.handleSchedule")
		return
	}

	resp, err := h.priceLoan(r.Context(), params, "api")
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, cashflow.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		h.respondError(w, status, err.Error(), "server.handleSchedule")
		return
	}

	elapsed := time.Since(start)
	resp.Duration = elapsed.String()

	h.logger.Info("schedule computed",
		zap.String("op", "server.handleSchedule"),
		zap.String("loanId", params.LoanID),
		zap.Int("rows", len(resp.Rows)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), "server.handleUpload")
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), "server.handleUpload")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing loan data file", "server.handleUpload")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handleUpload"),
				zap.Error(closeErr),
			)
		}
	}()

	loans, err := ParseLoansCSV(file)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse loan data: %v", err), "server.handleUpload")
		return
	}

	results := make([]scheduleResponse, 0, len(loans))
	for _, params := range loans {
		resp, err := h.priceLoan(r.Context(), params, "upload")
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, cashflow.ErrInvalidInput) {
				status = http.StatusBadRequest
			}
			h.respondError(w, status, fmt.Sprintf("loan %s: %v", params.LoanID, err), "server.handleUpload")
			return
		}
		results = append(results, resp)
	}

	elapsed := time.Since(start)

	h.logger.Info("upload priced",
		zap.String("op", "server.handleUpload"),
		zap.Int("loans", len(results)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, uploadResponse{Results: results, Duration: elapsed.String()})
}

func (h *handler) handleRatings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	pdEntries := make([]ratingEntry, 0)
	for _, rating := range ratings.PDRatings() {
		pd, err := ratings.PD(rating)
		if err != nil {
			continue
		}
		pdEntries = append(pdEntries, ratingEntry{Rating: rating, PD: pd})
	}

	lgdEntries := make([]gradeEntry, 0)
	for _, grade := range ratings.LGDGrades() {
		lgd, err := ratings.LGD(grade)
		if err != nil {
			continue
		}
		lgdEntries = append(lgdEntries, gradeEntry{Grade: grade, LGD: lgd})
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"pdScale":  pdEntries,
		"lgdScale": lgdEntries,
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// priceLoan runs the full engine pipeline for one loan, consulting the cache
// first. The schedule is deterministic in its parameters, so a cache hit is
// always equivalent to recomputation.
func (h *handler) priceLoan(ctx context.Context, params cashflow.LoanParameters, source string) (scheduleResponse, error) {
	ctx, span := tracing.Tracer.Start(ctx, "server.priceLoan")
	defer span.End()
	span.SetAttributes(
		attribute.String("loan.id", params.LoanID),
		attribute.Int("loan.term_months", params.TermMonths),
		attribute.String("request.source", source),
	)

	if h.cache != nil {
		if key, err := cache.Key(params); err == nil {
			if cached, ok := h.cache.Get(ctx, key); ok {
				var resp scheduleResponse
				if err := json.Unmarshal([]byte(cached), &resp); err == nil {
					metrics.CacheLookups.WithLabelValues("hit").Inc()
					return resp, nil
				}
			}
			metrics.CacheLookups.WithLabelValues("miss").Inc()
		}
	}

	rows, err := cashflow.GenerateSchedule(params)
	if err != nil {
		metrics.ScheduleComputations.WithLabelValues(source, "error").Inc()
		return scheduleResponse{}, err
	}

	payment, err := cashflow.MonthlyPayment(params.Principal, params.AnnualRate, params.TermMonths)
	if err != nil {
		metrics.ScheduleComputations.WithLabelValues(source, "error").Inc()
		return scheduleResponse{}, err
	}

	if params.PDRating != 0 {
		if _, err := ratings.PD(params.PDRating); err != nil {
			metrics.RatingLookupMisses.Inc()
		}
	}
	if params.LGDGrade != "" {
		if _, err := ratings.LGD(params.LGDGrade); err != nil {
			metrics.RatingLookupMisses.Inc()
		}
	}

	resp := scheduleResponse{
		Loan:           params,
		MonthlyPayment: payment,
		Rows:           rows,
		Summary:        cashflow.Summarize(rows),
		CSV:            output.CsvString(rows),
		Warnings:       validation.ValidateLoanParameters(params),
	}

	metrics.ScheduleComputations.WithLabelValues(source, "ok").Inc()

	if h.cache != nil {
		if key, err := cache.Key(params); err == nil {
			if payload, err := json.Marshal(resp); err == nil {
				if err := h.cache.Set(ctx, key, string(payload)); err != nil {
					h.logger.Warn("failed to cache schedule",
						zap.String("op", "server.priceLoan"),
						zap.Error(err),
					)
				}
			}
		}
	}

	return resp, nil
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("pricing request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
