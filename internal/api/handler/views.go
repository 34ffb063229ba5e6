package handler

import (
	"time"

	"github.com/creamcroissant/foodpos/internal/repository"
)

// View types define the JSON wire format. Timestamps are RFC 3339 UTC;
// prices are integer satang.

type categoryView struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

type menuOptionView struct {
	ID              int64  `json:"id"`
	GroupName       string `json:"group_name"`
	Name            string `json:"name"`
	AdditionalPrice int64  `json:"additional_price"`
	IsRequired      bool   `json:"is_required"`
}

type menuItemView struct {
	ID          int64            `json:"id"`
	Category    int64            `json:"category"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       int64            `json:"price"`
	IsAvailable bool             `json:"is_available"`
	ImageURL    string           `json:"image_url"`
	Options     []menuOptionView `json:"options"`
}

type orderItemView struct {
	ID           int64  `json:"id"`
	MenuItem     int64  `json:"menu_item"`
	MenuItemName string `json:"menu_item_name"`
	Quantity     int    `json:"quantity"`
	Price        int64  `json:"price"`
	Notes        string `json:"notes"`
}

type orderView struct {
	ID          int64           `json:"id"`
	TableNumber int             `json:"table_number"`
	Status      string          `json:"status"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
	Items       []orderItemView `json:"items"`
}

func newCategoryView(c *repository.Category) categoryView {
	return categoryView{ID: c.ID, Name: c.Name, IsActive: c.IsActive}
}

func newCategoryViews(categories []*repository.Category) []categoryView {
	views := make([]categoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, newCategoryView(c))
	}
	return views
}

func newMenuItemView(item *repository.MenuItem) menuItemView {
	view := menuItemView{
		ID:          item.ID,
		Category:    item.CategoryID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		IsAvailable: item.IsAvailable,
		ImageURL:    item.ImageURL,
		Options:     make([]menuOptionView, 0, len(item.Options)),
	}
	for _, opt := range item.Options {
		view.Options = append(view.Options, menuOptionView{
			ID:              opt.ID,
			GroupName:       opt.GroupName,
			Name:            opt.Name,
			AdditionalPrice: opt.AdditionalPrice,
			IsRequired:      opt.IsRequired,
		})
	}
	return view
}

func newMenuItemViews(items []*repository.MenuItem) []menuItemView {
	views := make([]menuItemView, 0, len(items))
	for _, item := range items {
		views = append(views, newMenuItemView(item))
	}
	return views
}

func newOrderView(order *repository.Order) orderView {
	view := orderView{
		ID:          order.ID,
		TableNumber: order.TableNumber,
		Status:      string(order.Status),
		CreatedAt:   formatUnix(order.CreatedAt),
		UpdatedAt:   formatUnix(order.UpdatedAt),
		Items:       make([]orderItemView, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		view.Items = append(view.Items, orderItemView{
			ID:           item.ID,
			MenuItem:     item.MenuItemID,
			MenuItemName: item.MenuItemName,
			Quantity:     item.Quantity,
			Price:        item.Price,
			Notes:        item.Notes,
		})
	}
	return view
}

func newOrderViews(orders []*repository.Order) []orderView {
	views := make([]orderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, newOrderView(order))
	}
	return views
}

func formatUnix(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}
