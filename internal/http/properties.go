package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/denisok6893-rgb/warehouse-grading/internal/domain"
	"github.com/denisok6893-rgb/warehouse-grading/internal/evaluation"
	"github.com/denisok6893-rgb/warehouse-grading/internal/storage"
)

type PropertySummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	BusinessType string    `json:"business_type"`
	Grade        int       `json:"grade"`
	CreatedAt    time.Time `json:"created_at"`
}

type PropertiesListResponse struct {
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
	Total  int               `json:"total"`
	Items  []PropertySummary `json:"items"`
}

func summarize(p domain.EvaluatedProperty) PropertySummary {
	return PropertySummary{
		ID:           p.ID,
		Name:         p.Spec.Name,
		Address:      p.Spec.Address,
		BusinessType: p.BusinessType,
		Grade:        p.Analysis.Grade,
		CreatedAt:    p.CreatedAt,
	}
}

func (s *Server) handlePropertiesList(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		s.handlePropertiesCreate(w, r)
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	limit, offset := parseLimitOffset(r, 20, 0)
	q := r.URL.Query()
	f := storage.Filter{
		BusinessType: q.Get("business_type"),
		Address:      q.Get("address"),
		Sort:         q.Get("sort"),
		Limit:        limit,
		Offset:       offset,
	}
	if v := q.Get("min_grade"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			f.MinGrade = parsed
		}
	}

	props, total, err := s.Service.List(r.Context(), f)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	items := make([]PropertySummary, 0, len(props))
	for _, p := range props {
		items = append(items, summarize(p))
	}

	writeJSON(w, http.StatusOK, PropertiesListResponse{
		Limit:  limit,
		Offset: offset,
		Total:  total,
		Items:  items,
	})
}

func (s *Server) handlePropertiesCreate(w http.ResponseWriter, r *http.Request) {
	var req evaluation.Request
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := s.Service.Save(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handlePropertiesGetByID(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Path[len("/properties/"):]
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing_id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		p, err := s.Service.Get(r.Context(), id)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, p)

	case http.MethodDelete:
		if err := s.Service.Delete(r.Context(), id); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		methodNotAllowed(w)
	}
}
