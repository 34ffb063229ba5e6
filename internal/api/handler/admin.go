package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/creamcroissant/foodpos/internal/repository"
	"github.com/creamcroissant/foodpos/internal/service"
)

// AdminHandler serves the authenticated admin surface: login, menu
// management, and the system status dashboard.
type AdminHandler struct {
	auth   service.AuthService
	menu   service.MenuService
	system service.SystemService
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(auth service.AuthService, menu service.MenuService, system service.SystemService) *AdminHandler {
	return &AdminHandler{auth: auth, menu: menu, system: system}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges the admin password for a bearer token.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	token, err := h.auth.Login(r.Context(), req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loginResponse{Token: token})
}

// SystemStatus returns host and order statistics for the dashboard.
func (h *AdminHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.system.Status(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}

// ListCategories returns every category, inactive ones included.
func (h *AdminHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.menu.Categories(r.Context(), false)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newCategoryViews(categories))
}

// ListItems returns every menu item, unavailable ones included.
func (h *AdminHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.menu.Items(r.Context(), repository.MenuItemFilter{})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newMenuItemViews(items))
}

type categoryRequest struct {
	Name     string `json:"name"`
	IsActive *bool  `json:"is_active"`
}

// CreateCategory adds a menu category.
func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	category, err := h.menu.CreateCategory(r.Context(), req.Name, active)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newCategoryView(category))
}

// UpdateCategory renames or toggles a category.
func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category id"})
		return
	}
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	category := &repository.Category{ID: id, Name: req.Name, IsActive: true}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if err := h.menu.UpdateCategory(r.Context(), category); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newCategoryView(category))
}

// DeleteCategory removes a category.
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category id"})
		return
	}
	if err := h.menu.DeleteCategory(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type menuItemRequest struct {
	Category    int64               `json:"category"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Price       int64               `json:"price"`
	IsAvailable *bool               `json:"is_available"`
	ImageURL    string              `json:"image_url"`
	Options     []menuOptionRequest `json:"options"`
}

type menuOptionRequest struct {
	GroupName       string `json:"group_name"`
	Name            string `json:"name"`
	AdditionalPrice int64  `json:"additional_price"`
	IsRequired      bool   `json:"is_required"`
}

func (req menuItemRequest) toItem(id int64) *repository.MenuItem {
	item := &repository.MenuItem{
		ID:          id,
		CategoryID:  req.Category,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsAvailable: true,
		ImageURL:    req.ImageURL,
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	for _, opt := range req.Options {
		item.Options = append(item.Options, &repository.MenuItemOption{
			MenuItemID:      id,
			GroupName:       opt.GroupName,
			Name:            opt.Name,
			AdditionalPrice: opt.AdditionalPrice,
			IsRequired:      opt.IsRequired,
		})
	}
	return item
}

// CreateItem adds a menu item with its option groups.
func (h *AdminHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req menuItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	item, err := h.menu.CreateItem(r.Context(), req.toItem(0))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newMenuItemView(item))
}

// UpdateItem replaces a menu item. A non-nil options list replaces the
// item's option groups wholesale.
func (h *AdminHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item id"})
		return
	}
	var req menuItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	item := req.toItem(id)
	if err := h.menu.UpdateItem(r.Context(), item); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newMenuItemView(item))
}

// DeleteItem removes a menu item.
func (h *AdminHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item id"})
		return
	}
	if err := h.menu.DeleteItem(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
