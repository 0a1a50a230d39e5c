package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/denisok6893-rgb/warehouse-grading/internal/address"
	"github.com/denisok6893-rgb/warehouse-grading/internal/domain"
	"github.com/denisok6893-rgb/warehouse-grading/internal/evaluation"
	"github.com/denisok6893-rgb/warehouse-grading/internal/logging"
	"github.com/denisok6893-rgb/warehouse-grading/internal/metrics"
	"github.com/denisok6893-rgb/warehouse-grading/internal/report"
	"github.com/denisok6893-rgb/warehouse-grading/internal/storage"
)

const maxBodyBytes = 1 << 20

type Server struct {
	Service   *evaluation.Service
	Addresses address.Suggester
	Metrics   *metrics.Metrics
	Log       logging.Logger
}

// NewServer wires the handlers. addresses, m and log may be nil.
func NewServer(svc *evaluation.Service, addresses address.Suggester, m *metrics.Metrics, log logging.Logger) *Server {
	if addresses == nil {
		addresses = address.NewStaticSuggester(nil)
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Server{Service: svc, Addresses: addresses, Metrics: m, Log: log}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/templates", s.handleTemplatesList)
	mux.HandleFunc("/templates/", s.handleTemplateGet)
	mux.HandleFunc("/grade", s.handleGrade)
	mux.HandleFunc("/properties", s.handlePropertiesList)
	mux.HandleFunc("/properties/", s.handlePropertiesGetByID)
	mux.HandleFunc("/addresses", s.handleAddresses)
	mux.HandleFunc("/demo", s.handleDemo)
	if s.Metrics != nil {
		mux.Handle("/metrics", s.Metrics.Handler())
		return s.instrument(mux)
	}
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ---- Templates ----

type TemplateResponse struct {
	Name       string             `json:"name"`
	Parameters []domain.Parameter `json:"parameters"`
}

type TemplatesListResponse struct {
	Items []TemplateResponse `json:"items"`
}

func (s *Server) handleTemplatesList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	names := s.Service.BusinessTypes()
	items := make([]TemplateResponse, 0, len(names))
	for _, name := range names {
		params, _ := s.Service.Template(name)
		items = append(items, TemplateResponse{Name: name, Parameters: params})
	}
	writeJSON(w, http.StatusOK, TemplatesListResponse{Items: items})
}

// handleTemplateGet serves /templates/{name}; names may contain '/'.
func (s *Server) handleTemplateGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/templates/")
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing_name")
		return
	}
	params, ok := s.Service.Template(name)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, TemplateResponse{Name: name, Parameters: params})
}

// ---- Grading ----

type GradeResponse struct {
	Analysis domain.GradeAnalysis `json:"analysis"`
	Report   report.Report        `json:"report"`
}

func (s *Server) handleGrade(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req evaluation.Request
	if !decodeJSON(w, r, &req) {
		return
	}

	a, err := s.Service.Evaluate(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, GradeResponse{Analysis: a, Report: report.Build(req.Spec, a)})
}

// ---- Addresses ----

type AddressesResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

func (s *Server) handleAddresses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	resp := AddressesResponse{Query: q, Suggestions: []string{}}
	if len([]rune(q)) >= address.MinQueryLength {
		out, err := s.Addresses.Suggest(r.Context(), q)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		resp.Suggestions = out
	}
	writeJSON(w, http.StatusOK, resp)
}

// ---- helpers ----

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return false
	}
	return true
}

// writeServiceError maps service sentinels onto status codes.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, evaluation.ErrUnknownBusinessType):
		writeError(w, http.StatusUnprocessableEntity, "unknown_business_type")
	case errors.Is(err, evaluation.ErrUnknownParameter):
		writeError(w, http.StatusUnprocessableEntity, "unknown_parameter")
	case errors.Is(err, evaluation.ErrInvalidOverride):
		writeError(w, http.StatusUnprocessableEntity, "invalid_override")
	case errors.Is(err, evaluation.ErrInvalidParameters):
		writeError(w, http.StatusUnprocessableEntity, "invalid_parameters")
	case errors.Is(err, evaluation.ErrIncompleteProperty):
		writeError(w, http.StatusUnprocessableEntity, "incomplete_property")
	default:
		s.Log.Error("request failed",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Err(err),
		)
		writeError(w, http.StatusInternalServerError, "internal")
	}
}

func parseLimitOffset(r *http.Request, defLimit, defOffset int) (int, int) {
	q := r.URL.Query()

	limit := defLimit
	if v := q.Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit <= 0 {
		limit = defLimit
	}
	if limit > 200 {
		limit = 200
	}

	offset := defOffset
	if v := q.Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = defOffset
	}

	return limit, offset
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
}

// ---- instrumentation ----

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := routeLabel(r.URL.Path)
		s.Metrics.ObserveRequest(r.Method, route, rec.status)
		if rec.status >= http.StatusBadRequest {
			s.Log.Warn("request rejected",
				logging.String("method", r.Method),
				logging.String("route", route),
				logging.Int("status", rec.status),
				logging.Duration("elapsed", time.Since(start)),
			)
		}
	})
}

// routeLabel collapses path parameters so metric label cardinality stays bounded.
func routeLabel(path string) string {
	switch {
	case strings.HasPrefix(path, "/properties/"):
		return "/properties/{id}"
	case strings.HasPrefix(path, "/templates/"):
		return "/templates/{name}"
	}
	switch path {
	case "/health", "/templates", "/grade", "/properties", "/addresses", "/demo", "/metrics":
		return path
	}
	return "other"
}
