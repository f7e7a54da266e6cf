package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/username/painelvendas/backend/src/filter"
	"github.com/username/painelvendas/backend/src/logger"
	"github.com/username/painelvendas/backend/src/models"
	"github.com/username/painelvendas/backend/src/reports"
	"github.com/username/painelvendas/backend/src/services"
	"github.com/username/painelvendas/backend/src/utils"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(service services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: service,
	}
}

// HandleGetFilters returns the selectable filter space of the session's
// Dataset, which the UI uses to build its widgets.
func (h *DashboardHandler) HandleGetFilters(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.sessionDataset(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.dashboardService.FilterOptions(ds)); err != nil {
		logger.L.Error("Error encoding filter options", "error", err)
	}
}

// HandleGetDashboard applies the criteria from the query string and returns
// the full report payload, with ETag support for unchanged filters.
func (h *DashboardHandler) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.sessionDataset(w, r)
	if !ok {
		return
	}

	criteria, err := criteriaFromQuery(ds, r.URL.Query())
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	report := h.dashboardService.BuildDashboard(ds, criteria)

	etag, etagErr := utils.GenerateETag(report)
	if etagErr == nil {
		if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		logger.L.Error("Error encoding dashboard report", "error", err)
	}
}

// HandleExport streams the current FilteredDataset as a downloadable CSV:
// UTF-8 with BOM, comma-delimited.
func (h *DashboardHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.sessionDataset(w, r)
	if !ok {
		return
	}

	criteria, err := criteriaFromQuery(ds, r.URL.Query())
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := h.dashboardService.ExportFiltered(ds, criteria)
	if err != nil {
		logger.L.Error("Error building CSV export", "error", err)
		utils.SendJSONError(w, "An internal error occurred while building the export.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", reports.ExportFilename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.L.Error("Error writing CSV export", "error", err)
	}
}

// sessionDataset resolves the session's Dataset or writes the error response.
func (h *DashboardHandler) sessionDataset(w http.ResponseWriter, r *http.Request) (models.Dataset, bool) {
	sessionID, ok := GetSessionIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or session not found in context", http.StatusUnauthorized)
		return models.Dataset{}, false
	}

	ds, err := h.dashboardService.GetDataset(sessionID)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			utils.SendJSONError(w, "Session expired. Log in again to reload the data.", http.StatusUnauthorized)
		} else {
			logger.L.Error("Error retrieving session dataset", "sessionID", sessionID, "error", err)
			utils.SendJSONError(w, "An internal error occurred.", http.StatusInternalServerError)
		}
		return models.Dataset{}, false
	}
	return ds, true
}

// criteriaFromQuery builds FilterCriteria from the request, starting from the
// dataset defaults. A set parameter that is present but empty is a cleared
// selection and matches nothing; an absent parameter keeps the default
// select-all.
func criteriaFromQuery(ds models.Dataset, q url.Values) (models.FilterCriteria, error) {
	criteria := filter.DefaultCriteria(ds)

	if start := q.Get("start"); start != "" {
		t, err := utils.ParseDateISO(start)
		if err != nil {
			return criteria, fmt.Errorf("invalid 'start' parameter: %v", err)
		}
		criteria.StartDate = t
	}
	if end := q.Get("end"); end != "" {
		t, err := utils.ParseDateISO(end)
		if err != nil {
			return criteria, fmt.Errorf("invalid 'end' parameter: %v", err)
		}
		criteria.EndDate = t
	}

	if q.Has("ufs") {
		criteria.UFs = parseSet(q.Get("ufs"))
	}
	if q.Has("tipos_pessoa") {
		criteria.TiposPessoa = parseSet(q.Get("tipos_pessoa"))
	}
	criteria.ExcludePagtos = q.Get("excluir_pagto")

	return criteria, nil
}

func parseSet(raw string) map[string]bool {
	set := make(map[string]bool)
	if raw == "" {
		return set
	}
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			set[v] = true
		}
	}
	return set
}
