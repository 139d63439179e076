// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/pokepick/auth"
	"github.com/danielhkuo/pokepick/catalog"
	"github.com/danielhkuo/pokepick/cliparse"
	"github.com/danielhkuo/pokepick/middleware"
	"github.com/danielhkuo/pokepick/models"
)

type CatalogHandler struct {
	repo *catalog.Repository
	cfg  cliparse.Config
}

func NewCatalogHandler(repo *catalog.Repository, cfg cliparse.Config) *CatalogHandler {
	return &CatalogHandler{repo: repo, cfg: cfg}
}

// List handles GET /api/pokemon/list?page=N&filters=Q
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("filters")

	// Unparseable page falls back to 1; explicit non-positive pages are rejected
	page := 1
	if s := r.URL.Query().Get("page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			page = n
		}
	}
	if page < 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "page must be at least 1")
		return
	}

	if !h.ensureFresh(w, r) {
		return
	}

	result, err := h.repo.List(r.Context(), page, query)
	if err != nil {
		slog.Error("failed to list creatures",
			"request_id", middleware.RequestID(r.Context()),
			"page", page,
			"filters", query,
			"error", err,
		)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to load creatures")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}

// Get handles GET /api/pokemon/?id=N
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}
	if id < 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id must be greater than 0")
		return
	}

	if !h.ensureFresh(w, r) {
		return
	}

	creature, err := h.repo.ByIndex(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "No creature with that id exists")
		return
	}
	if err != nil {
		slog.Error("failed to get creature", "id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to load creature")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, creature)
}

// Random handles GET /api/pokemon/random
func (h *CatalogHandler) Random(w http.ResponseWriter, r *http.Request) {
	if !h.ensureFresh(w, r) {
		return
	}

	creature, err := h.repo.Random(r.Context())
	if errors.Is(err, catalog.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Catalog is empty")
		return
	}
	if err != nil {
		slog.Error("failed to get random creature", "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to load creature")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, creature)
}

// Image handles GET /api/pokemon/image?name=X
func (h *CatalogHandler) Image(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	if !h.ensureFresh(w, r) {
		return
	}

	url, err := h.repo.ImageURL(r.Context(), name)
	if errors.Is(err, catalog.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Creature not found")
		return
	}
	if err != nil {
		slog.Error("failed to look up image", "name", name, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ImageResponse{ImgURL: url})
}

// Refresh handles POST /api/pokemon/refresh
// Requires X-Admin-Key; responds 404 when no admin key is configured
func (h *CatalogHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), h.cfg.AdminKey)
	if errors.Is(err, auth.ErrAdminDisabled) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Refresh is disabled")
		return
	}
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	if _, err := h.repo.Refresh(r.Context()); err != nil {
		slog.Error("forced refresh failed", "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Refresh failed")
		return
	}

	count, updated, err := h.repo.Meta(r.Context())
	if err != nil {
		slog.Error("failed to read catalog meta", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("catalog refresh forced", "count", count)
	middleware.JSONResponse(w, http.StatusOK, models.RefreshResponse{
		Count:     count,
		UpdatedAt: updated.UTC(),
	})
}

// ensureFresh refreshes a stale index, writing a 502 and returning false
// when that fails.
func (h *CatalogHandler) ensureFresh(w http.ResponseWriter, r *http.Request) bool {
	if err := h.repo.EnsureFresh(r.Context()); err != nil {
		slog.Error("catalog refresh failed",
			"request_id", middleware.RequestID(r.Context()),
			"error", err,
		)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Catalog unavailable")
		return false
	}
	return true
}
