package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/foodpos/internal/auth/token"
	"github.com/creamcroissant/foodpos/internal/bootstrap"
	"github.com/creamcroissant/foodpos/internal/cache"
	"github.com/creamcroissant/foodpos/internal/config"
	"github.com/creamcroissant/foodpos/internal/migrations"
	"github.com/creamcroissant/foodpos/internal/repository"
	"github.com/creamcroissant/foodpos/internal/repository/sqlite"
	"github.com/creamcroissant/foodpos/internal/service"
	"github.com/creamcroissant/foodpos/internal/support/hash"
)

const testAdminPassword = "kitchen-secret"

func newTestServer(t *testing.T) (*httptest.Server, *sqlite.Store) {
	t.Helper()

	db, err := bootstrap.OpenMemorySQLite(fmt.Sprintf("foodpos_api_%s_%d", t.Name(), time.Now().UnixNano()))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.Up(db))

	store := sqlite.NewStore(db)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	hasher, err := hash.NewBcryptHasher(4)
	require.NoError(t, err)
	passwordHash, err := hasher.Hash(testAdminPassword)
	require.NoError(t, err)
	tokens, err := token.NewManager(token.Options{SigningKey: []byte("test-signing-key"), Issuer: "foodpos", TTL: time.Hour})
	require.NoError(t, err)

	cacheStore := cache.NewStore(cache.Options{DefaultTTL: time.Minute, CleanupInterval: time.Minute, Prefix: "test"})

	router := NewRouter(logger, Services{
		Menu:   service.NewMenuService(store.Categories(), store.MenuItems(), cacheStore, logger),
		Order:  service.NewOrderService(store.Orders(), store.MenuItems(), logger),
		Auth:   service.NewAuthService(passwordHash, hasher, tokens),
		System: service.NewSystemService("test", time.Now(), store.Orders()),
	}, config.MetricsConfig{})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, store
}

func seedMenu(t *testing.T, store *sqlite.Store) *repository.MenuItem {
	t.Helper()
	ctx := context.Background()

	category, err := store.Categories().Create(ctx, &repository.Category{Name: "Noodles", IsActive: true})
	require.NoError(t, err)

	item, err := store.MenuItems().Create(ctx, &repository.MenuItem{
		CategoryID:  category.ID,
		Name:        "Pad See Ew",
		Price:       9500,
		IsAvailable: true,
		Options: []*repository.MenuItemOption{
			{GroupName: "Protein", Name: "Chicken"},
			{GroupName: "Protein", Name: "Shrimp", AdditionalPrice: 2500},
		},
	})
	require.NoError(t, err)
	return item
}

func doJSON(t *testing.T, method, url string, body any, out any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

type orderResponse struct {
	ID          int64  `json:"id"`
	TableNumber int    `json:"table_number"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	Items       []struct {
		MenuItem     int64  `json:"menu_item"`
		MenuItemName string `json:"menu_item_name"`
		Quantity     int    `json:"quantity"`
		Price        int64  `json:"price"`
		Notes        string `json:"notes"`
	} `json:"items"`
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	srv, store := newTestServer(t)
	item := seedMenu(t, store)

	createBody := map[string]any{
		"table_number": 4,
		"items": []map[string]any{
			// The forged price must be ignored in favour of menu pricing.
			{"menu_item": item.ID, "quantity": 2, "price": 1, "notes": "Protein: Shrimp"},
		},
	}

	var created orderResponse
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/orders/", createBody, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, 4, created.TableNumber)
	require.Len(t, created.Items, 1)
	assert.Equal(t, int64(12000), created.Items[0].Price)

	parsed, err := time.Parse(time.RFC3339, created.CreatedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed, time.Minute)

	var listed []orderResponse
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/orders/?status=pending", nil, &listed)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	var updated orderResponse
	url := fmt.Sprintf("%s/api/orders/%d/status", srv.URL, created.ID)
	resp = doJSON(t, http.MethodPatch, url, map[string]string{"status": "cooking"}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "cooking", updated.Status)

	// A cooking order can no longer be cancelled.
	resp = doJSON(t, http.MethodPatch, url, map[string]string{"status": "cancelled"}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Backward moves are rejected as well.
	resp = doJSON(t, http.MethodPatch, url, map[string]string{"status": "pending"}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestOrderValidationOverHTTP(t *testing.T) {
	srv, store := newTestServer(t)
	item := seedMenu(t, store)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/orders/", map[string]any{"table_number": 1, "items": []any{}}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/orders/", map[string]any{
		"table_number": 1,
		"items":        []map[string]any{{"menu_item": item.ID + 999, "quantity": 1}},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/orders/99999", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/orders/?status=bogus", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMenuEndpoints(t *testing.T) {
	srv, store := newTestServer(t)
	item := seedMenu(t, store)

	var items []struct {
		ID      int64  `json:"id"`
		Name    string `json:"name"`
		Price   int64  `json:"price"`
		Options []struct {
			GroupName       string `json:"group_name"`
			Name            string `json:"name"`
			AdditionalPrice int64  `json:"additional_price"`
		} `json:"options"`
	}
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/menu-items", nil, &items)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)
	require.Len(t, items[0].Options, 2)

	var categories []struct {
		Name string `json:"name"`
	}
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/categories", nil, &categories)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, categories, 1)
	assert.Equal(t, "Noodles", categories[0].Name)
}

func TestAdminAuthGuard(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/admin/system", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/admin/login", map[string]string{"password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var login struct {
		Token string `json:"token"`
	}
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/admin/login", map[string]string{"password": testAdminPassword}, &login)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, login.Token)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/admin/system", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	authed, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer authed.Body.Close()
	assert.Equal(t, http.StatusOK, authed.StatusCode)
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
