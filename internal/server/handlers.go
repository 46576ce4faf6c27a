package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/Sumatoshi-tech/gitrewind/internal/schema"
	"github.com/Sumatoshi-tech/gitrewind/pkg/cache"
	"github.com/Sumatoshi-tech/gitrewind/pkg/upstream"
	"github.com/Sumatoshi-tech/gitrewind/pkg/yearstats"
)

// Request errors.
var (
	ErrSummaryNotCached = errors.New("summary not cached")
	ErrMissingSummary   = errors.New("summary must be supplied or identified by username and year")
	ErrInvalidYear      = errors.New("invalid year")
	ErrRateLimited      = errors.New("rate limit exceeded")
)

// CompareRequest is the body of POST /v1/compare. Each side is either given
// inline or looked up in the cache by username and year.
type CompareRequest struct {
	Current      json.RawMessage `json:"current,omitempty"`
	Previous     json.RawMessage `json:"previous,omitempty"`
	Username     string          `json:"username,omitempty"`
	CurrentYear  int             `json:"current_year,omitempty"`
	PreviousYear int             `json:"previous_year,omitempty"`
}

type errorBody struct {
	Error  string              `json:"error"`
	Fields []schema.FieldError `json:"fields,omitempty"`
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload, err := upstream.Decode(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		s.writeError(ctx, w, err)

		return
	}

	summary := s.assembler.Assemble(payload)
	s.store(ctx, summary)
	s.rewind.RecordSummary(ctx, string(summary.ActivityLevel), summary.DataCompleteness.Truncation.Any())

	s.writeJSON(ctx, w, http.StatusOK, summary)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CompareRequest

	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody)).Decode(&req)
	if err != nil {
		s.writeError(ctx, w, fmt.Errorf("decode compare request: %w", err))

		return
	}

	current, err := s.resolve(ctx, req.Current, req.Username, req.CurrentYear)
	if err != nil {
		s.writeError(ctx, w, fmt.Errorf("current: %w", err))

		return
	}

	username := req.Username
	if username == "" {
		username = current.User.Username
	}

	previousYear := req.PreviousYear
	if previousYear == 0 {
		previousYear = current.Year - 1
	}

	previous, err := s.resolve(ctx, req.Previous, username, previousYear)
	if err != nil {
		s.writeError(ctx, w, fmt.Errorf("previous: %w", err))

		return
	}

	comparison := s.engine.Compare(current, previous)
	s.rewind.RecordComparison(ctx, string(comparison.Mode), len(comparison.NarrativeInsights))

	s.writeJSON(ctx, w, http.StatusOK, comparison)
}

func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil || year <= 0 {
		s.writeError(ctx, w, fmt.Errorf("%w: %q", ErrInvalidYear, r.PathValue("year")))

		return
	}

	summary, err := s.lookup(ctx, r.PathValue("username"), year)
	if err != nil {
		s.writeError(ctx, w, err)

		return
	}

	s.writeJSON(ctx, w, http.StatusOK, summary)
}

// resolve returns the inline summary when one is given, otherwise the
// cached summary for username and year.
func (s *Server) resolve(ctx context.Context, raw json.RawMessage, username string, year int) (yearstats.YearSummary, error) {
	if len(raw) > 0 && string(raw) != "null" {
		return schema.Decode(raw)
	}

	if username == "" || year <= 0 {
		return yearstats.YearSummary{}, ErrMissingSummary
	}

	return s.lookup(ctx, username, year)
}

func (s *Server) lookup(ctx context.Context, username string, year int) (yearstats.YearSummary, error) {
	summary, ok := s.summaries.Get(cache.NewSummaryKey(username, year))
	s.rewind.RecordCacheLookup(ctx, ok)

	if !ok {
		return yearstats.YearSummary{}, fmt.Errorf("%w: %s/%d", ErrSummaryNotCached, username, year)
	}

	return summary, nil
}

func (s *Server) store(ctx context.Context, summary yearstats.YearSummary) {
	ttl := cache.TTLForYear(summary.Year, s.clock(), s.cfg.Cache.CurrentYearTTL, s.cfg.Cache.PastYearTTL)

	evicted := s.summaries.Put(cache.NewSummaryKey(summary.User.Username, summary.Year), summary, ttl)
	s.rewind.RecordCacheEvictions(ctx, int64(evicted))

	s.logger.DebugContext(ctx, "summary cached", "year", summary.Year, "ttl", ttl, "evicted", evicted)
}

// limit applies the per-client token bucket. Zero RPS disables it.
func (s *Server) limit(next http.HandlerFunc) http.HandlerFunc {
	if s.cfg.RateLimit.RPS <= 0 {
		return next
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if !s.limiterFor(clientIP(r)).Allow() {
			s.writeError(r.Context(), w, ErrRateLimited)

			return
		}

		next(w, r)
	}
}

func (s *Server) limiterFor(ip string) *rate.Limiter {
	s.limitersMu.Lock()
	defer s.limitersMu.Unlock()

	limiter, ok := s.limiters.Get(ip)
	if ok {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(s.cfg.RateLimit.RPS), s.cfg.RateLimit.Burst)
	s.limiters.Put(ip, limiter, clientIdleTTL)

	return limiter
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

func (s *Server) writeJSON(ctx context.Context, w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	encodeErr := json.NewEncoder(w).Encode(value)
	if encodeErr != nil {
		s.logger.ErrorContext(ctx, "failed to encode JSON response", "error", encodeErr)
	}
}

func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusFor(err)
	body := errorBody{Error: err.Error()}

	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		body.Fields = verr.Fields
	}

	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx, "request failed", "error", err)
	} else {
		s.logger.DebugContext(ctx, "request rejected", "status", status, "error", err)
	}

	s.writeJSON(ctx, w, status, body)
}

func statusFor(err error) int {
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrSummaryNotCached):
		return http.StatusNotFound
	case errors.Is(err, schema.ErrInvalidSummary), errors.Is(err, upstream.ErrMissingUser),
		errors.Is(err, upstream.ErrMissingYear), errors.Is(err, upstream.ErrUpstream):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
