package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"go.uber.org/zap"

	"github.com/datavista/datavista-cli/internal/dataset"
	"github.com/datavista/datavista-cli/internal/insights"
	"github.com/datavista/datavista-cli/internal/report"
)

const maxUploadBytes = 32 << 20

type kpiDTO struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type monthDTO struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

type categoryDTO struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

type salesDTO struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type anomalyDTO struct {
	Date      string  `json:"date"`
	Revenue   float64 `json:"revenue"`
	IsAnomaly bool    `json:"is_anomaly"`
}

type dashboardDTO struct {
	Rows      int           `json:"rows"`
	KPIs      []kpiDTO      `json:"kpis"`
	Monthly   []monthDTO    `json:"monthly_revenue"`
	Category  []categoryDTO `json:"category_revenue"`
	Top       []salesDTO    `json:"top_products"`
	Bottom    []salesDTO    `json:"bottom_products"`
	Anomalies []anomalyDTO  `json:"anomalies"`
}

type errorDTO struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadRequest
	var schemaErr *dataset.SchemaError
	var rowErr *dataset.RowError
	var notFound *insights.NotFoundError
	switch {
	case errors.As(err, &schemaErr), errors.As(err, &rowErr):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	}
	s.log.Warn("request failed",
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	)
	writeJSON(w, status, errorDTO{Error: err.Error()})
}

// loadUpload parses the two multipart CSV files present on every endpoint.
func loadUpload(r *http.Request) ([]dataset.OrderRecord, []dataset.ProductRecord, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, fmt.Errorf("parse upload: %w", err)
	}
	openPart := func(field string) (multipart.File, error) {
		f, _, err := r.FormFile(field)
		if err != nil {
			return nil, fmt.Errorf("missing %s file: %w", field, err)
		}
		return f, nil
	}
	of, err := openPart("orders")
	if err != nil {
		return nil, nil, err
	}
	defer of.Close()
	pf, err := openPart("products")
	if err != nil {
		return nil, nil, err
	}
	defer pf.Close()

	orders, err := dataset.LoadOrders(of)
	if err != nil {
		return nil, nil, err
	}
	products, err := dataset.LoadProducts(pf)
	if err != nil {
		return nil, nil, err
	}
	return orders, products, nil
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	orders, products, err := loadUpload(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	d := report.Build(orders, products, s.opts)
	writeJSON(w, http.StatusOK, toDashboardDTO(d))
}

func toDashboardDTO(d *report.Dashboard) dashboardDTO {
	out := dashboardDTO{
		Rows:      len(d.Joined),
		KPIs:      make([]kpiDTO, 0, len(d.KPIs)),
		Monthly:   make([]monthDTO, 0, len(d.Monthly)),
		Category:  make([]categoryDTO, 0, len(d.Category)),
		Top:       make([]salesDTO, 0, len(d.Top)),
		Bottom:    make([]salesDTO, 0, len(d.Bottom)),
		Anomalies: make([]anomalyDTO, 0, len(d.Anomalies)),
	}
	for _, k := range d.KPIs {
		out.KPIs = append(out.KPIs, kpiDTO{Name: k.Name, Value: k.Value})
	}
	for _, m := range d.Monthly {
		out.Monthly = append(out.Monthly, monthDTO{Month: m.Month, Revenue: m.Revenue})
	}
	for _, c := range d.Category {
		out.Category = append(out.Category, categoryDTO{Category: c.Category, Revenue: c.Revenue})
	}
	for _, p := range d.Top {
		out.Top = append(out.Top, salesDTO{Name: p.Name, Quantity: p.Quantity})
	}
	for _, p := range d.Bottom {
		out.Bottom = append(out.Bottom, salesDTO{Name: p.Name, Quantity: p.Quantity})
	}
	for _, a := range d.Anomalies {
		out.Anomalies = append(out.Anomalies, anomalyDTO{
			Date:      a.Date.Format("2006-01-02"),
			Revenue:   a.Revenue,
			IsAnomaly: a.IsAnomaly,
		})
	}
	return out
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	orders, products, err := loadUpload(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	product := r.FormValue("product")
	if product == "" {
		s.writeError(w, r, errors.New("missing product field"))
		return
	}
	names, err := insights.Recommend(product, insights.Join(orders, products))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"product":         product,
		"recommendations": names,
	})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	orders, products, err := loadUpload(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	question := r.FormValue("question")
	if question == "" {
		s.writeError(w, r, errors.New("missing question field"))
		return
	}
	answer, err := s.answerer.Answer(r.Context(), question, orders, products)
	if err != nil {
		// The query feature degrades without failing the request: the rest
		// of the dashboard is unaffected by a model outage.
		s.log.Warn("model call failed", zap.Error(err))
		writeJSON(w, http.StatusOK, map[string]string{
			"question": question,
			"error":    fmt.Sprintf("query unavailable: %v", err),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"question": question,
		"answer":   answer,
	})
}
