package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samstech/techstore/internal/cart"
	"github.com/samstech/techstore/internal/catalog"
	"github.com/samstech/techstore/internal/checkout"
	"github.com/samstech/techstore/internal/domain"
	"github.com/samstech/techstore/internal/notify"
	"github.com/samstech/techstore/internal/orders"
	"github.com/samstech/techstore/internal/prefs"
	"github.com/samstech/techstore/internal/view"
)

type collectorNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (c *collectorNotifier) Notify(title, _ string, _ notify.Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, title)
}

func (c *collectorNotifier) titles() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.sent...)
}

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Title: "Wireless Bluetooth Headphones", Price: 99.99, Category: "Electronics"},
		{ID: 2, Title: "Smart Fitness Watch", Price: 249.99, Category: "Wearables"},
		{ID: 3, Title: "Organic Cotton T-Shirt", Price: 29.99, Category: "Clothing"},
		{ID: 4, Title: "Stainless Steel Water Bottle", Price: 24.99, Category: "Accessories"},
		{ID: 5, Title: "Wireless Charging Pad", Price: 39.99, Category: "Electronics"},
		{ID: 6, Title: "Ergonomic Office Chair", Price: 299.99, Category: "Furniture"},
		{ID: 7, Title: "Gaming Mechanical Keyboard", Price: 149.99, Category: "Electronics"},
		{ID: 8, Title: "Smart Home Speaker", Price: 89.99, Category: "Electronics"},
	}
}

func setupRouter(t *testing.T) (chi.Router, *collectorNotifier) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cat := catalog.New(testProducts())
	carts := cart.NewStore()
	t.Cleanup(func() { carts.Close() })

	notifier := &collectorNotifier{}
	manager := checkout.NewManager(carts, orders.StubPlacer{Delay: time.Millisecond}, notifier)
	views := view.NewController(cat, carts, manager)
	manager.BindOverlays(views)

	router := NewRouter(Deps{
		Catalog:        cat,
		Carts:          carts,
		Checkout:       manager,
		Views:          views,
		Prefs:          prefs.NewService(prefs.NewRedisStore(client)),
		Notifier:       notifier,
		RequestTimeout: 5 * time.Second,
	})
	return router, notifier
}

// do issues a request carrying a fixed session cookie and decodes the JSON reply.
func do(t *testing.T, router chi.Router, method, path string, body interface{}, out interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, path, reader)
	request.AddCookie(&http.Cookie{Name: sessionCookie, Value: "test-session"})
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	if out != nil && recorder.Code < 400 {
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(out))
	}
	return recorder
}

func TestListProducts_Paginated(t *testing.T) {
	router, _ := setupRouter(t)

	var page ProductPageDTO
	rec := do(t, router, "GET", "/api/v1/products?page=1", nil, &page)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, page.Products, 6)
	assert.Equal(t, 2, page.Window.TotalPages)

	rec = do(t, router, "GET", "/api/v1/products?page=2", nil, &page)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, page.Products, 2)

	rec = do(t, router, "GET", "/api/v1/products?page=3", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProduct(t *testing.T) {
	router, _ := setupRouter(t)

	var product domain.Product
	rec := do(t, router, "GET", "/api/v1/products/2", nil, &product)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Smart Fitness Watch", product.Title)

	rec = do(t, router, "GET", "/api/v1/products/99", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartLifecycle(t *testing.T) {
	router, notifier := setupRouter(t)

	var cartDTO CartDTO
	rec := do(t, router, "POST", "/api/v1/cart/items", AddItemRequestDTO{ProductID: 1}, &cartDTO)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(t, router, "POST", "/api/v1/cart/items", AddItemRequestDTO{ProductID: 1}, &cartDTO)
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, 2, cartDTO.ItemCount)
	assert.Equal(t, 1, cartDTO.Size)
	assert.InDelta(t, 199.98, cartDTO.Total, 1e-9)
	assert.Equal(t, []string{"Added to Cart!", "Added to Cart!"}, notifier.titles())

	rec = do(t, router, "PUT", "/api/v1/cart/items/1", SetQuantityRequestDTO{Quantity: 5}, &cartDTO)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 499.95, cartDTO.Total, 1e-9)

	rec = do(t, router, "PUT", "/api/v1/cart/items/1", SetQuantityRequestDTO{Quantity: 0}, &cartDTO)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, cartDTO.Items)
	assert.Zero(t, cartDTO.Total)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	router, notifier := setupRouter(t)

	rec := do(t, router, "POST", "/api/v1/cart/items", AddItemRequestDTO{ProductID: 404}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, notifier.titles())
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	router, _ := setupRouter(t)

	rec := do(t, router, "POST", "/api/v1/checkout", nil, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCheckout_FullFlow(t *testing.T) {
	router, notifier := setupRouter(t)

	// One item of price 24.99 in the cart
	rec := do(t, router, "POST", "/api/v1/cart/items", AddItemRequestDTO{ProductID: 4}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(t, router, "POST", "/api/v1/view/cart/open", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, "POST", "/api/v1/checkout", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	for field, value := range map[string]string{
		"name":    "Ada Lovelace",
		"email":   "ada@example.com",
		"address": "12 Analytical Way",
	} {
		rec = do(t, router, "PUT", "/api/v1/checkout/form", UpdateFieldRequestDTO{Field: field, Value: value}, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	var order domain.OrderConfirmation
	rec = do(t, router, "POST", "/api/v1/checkout/submit", nil, &order)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 24.99, order.Snapshot.TotalAmount, 1e-9)
	assert.Equal(t, "Ada Lovelace", order.Name)
	assert.Contains(t, notifier.titles(), "Order Placed!")

	// Cart cleared, overlays closed, checkout idle
	var cartDTO CartDTO
	rec = do(t, router, "GET", "/api/v1/cart", nil, &cartDTO)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, cartDTO.Items)

	var state view.State
	rec = do(t, router, "GET", "/api/v1/view", nil, &state)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, state.CartOpen)
	assert.False(t, state.CheckoutOpen)
}

func TestCheckout_ValidationFailureLeavesCart(t *testing.T) {
	router, notifier := setupRouter(t)

	rec := do(t, router, "POST", "/api/v1/cart/items", AddItemRequestDTO{ProductID: 1}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(t, router, "POST", "/api/v1/checkout", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, "POST", "/api/v1/checkout/submit", nil, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, notifier.titles(), "Missing Information")

	var cartDTO CartDTO
	rec = do(t, router, "GET", "/api/v1/cart", nil, &cartDTO)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, cartDTO.Items, 1)
}

func TestViewPageChange(t *testing.T) {
	router, _ := setupRouter(t)

	var state view.State
	rec := do(t, router, "POST", "/api/v1/view/page/2", nil, &state)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, state.Page)

	rec = do(t, router, "POST", "/api/v1/view/page/5", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestThemeRoundTrip(t *testing.T) {
	router, _ := setupRouter(t)

	var theme ThemeDTO
	rec := do(t, router, "GET", "/api/v1/prefs/theme", nil, &theme)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, prefs.DefaultTheme, theme.Theme)

	rec = do(t, router, "PUT", "/api/v1/prefs/theme", ThemeDTO{Theme: "warm"}, &theme)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, "GET", "/api/v1/prefs/theme", nil, &theme)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "warm", theme.Theme)

	rec = do(t, router, "PUT", "/api/v1/prefs/theme", ThemeDTO{Theme: "solarized"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionCookieIssued(t *testing.T) {
	router, _ := setupRouter(t)

	request := httptest.NewRequest("GET", "/api/v1/cart", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	cookies := recorder.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, sessionCookie, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestHealth(t *testing.T) {
	router, _ := setupRouter(t)

	rec := do(t, router, "GET", "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
