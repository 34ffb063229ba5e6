package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/creamcroissant/foodpos/internal/repository"
	"github.com/creamcroissant/foodpos/internal/service"
)

// MenuHandler serves the public menu endpoints.
type MenuHandler struct {
	menu service.MenuService
}

// NewMenuHandler constructs a MenuHandler.
func NewMenuHandler(menu service.MenuService) *MenuHandler {
	return &MenuHandler{menu: menu}
}

// ListCategories returns active categories.
func (h *MenuHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.menu.Categories(r.Context(), true)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newCategoryViews(categories))
}

// ListItems returns available menu items, optionally scoped to one
// category via ?category=N.
func (h *MenuHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	filter := repository.MenuItemFilter{AvailableOnly: true}
	if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category id"})
			return
		}
		filter.CategoryID = &id
	}

	items, err := h.menu.Items(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newMenuItemViews(items))
}

// GetItem returns one menu item with its option groups.
func (h *MenuHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item id"})
		return
	}
	item, err := h.menu.Item(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newMenuItemView(item))
}
