package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"boutiqueapi/config"
	"boutiqueapi/middleware"
	"boutiqueapi/models"
	"boutiqueapi/orders"
	"boutiqueapi/store"
	"boutiqueapi/utils"

	"github.com/gin-gonic/gin"
)

func newTestApp(t *testing.T) (*App, *store.Memory, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{JWTSecret: "test-secret", OrderConflictRetries: 3}
	st := store.NewMemory()
	coord := orders.New(st, slog.New(slog.NewTextHandler(io.Discard, nil)))
	app := NewApp(cfg, st, coord)

	secret := []byte(cfg.JWTSecret)
	r := gin.New()
	r.GET("/health-check", app.CheckConnection)
	r.POST("/register", app.RegisterUser)
	r.POST("/login", app.LoginUser)
	r.GET("/products", app.GetAllProducts)
	r.GET("/products/:id", app.GetProduct)
	r.POST("/orders", app.PlaceOrder)

	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(secret))
	{
		auth.GET("/chat", app.GetMyMessages)
		auth.POST("/chat", app.PostMessage)
	}

	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(secret), middleware.AdminRequired())
	{
		admin.POST("/products", app.CreateProduct)
		admin.PUT("/products/:id", app.UpdateProduct)
		admin.DELETE("/products/:id", app.DeleteProduct)
		admin.GET("/orders", app.GetAllOrders)
		admin.GET("/orders/:id", app.GetOrderDetails)
		admin.PUT("/orders/:id/status", app.UpdateOrderStatus)
	}

	return app, st, r
}

func seedProduct(t *testing.T, st *store.Memory, id string, stock int, sizes map[string]int) {
	t.Helper()
	now := time.Now().UTC()
	p := &models.Product{
		ID:            id,
		Name:          "wool coat",
		Price:         320,
		Category:      "coats",
		StockQuantity: stock,
		SizeStock:     sizes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := st.PutProduct(context.Background(), p); err != nil {
		t.Fatalf("seed product: %v", err)
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return m
}

func adminToken(t *testing.T, app *App) string {
	t.Helper()
	token, err := utils.GenerateJWT([]byte(app.Cfg.JWTSecret), "admin-1", "admin")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return token
}

func userToken(t *testing.T, app *App, userID string) string {
	t.Helper()
	token, err := utils.GenerateJWT([]byte(app.Cfg.JWTSecret), userID, "user")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return token
}

func TestPlaceOrderEndpoint(t *testing.T) {
	_, st, r := newTestApp(t)
	seedProduct(t, st, "p1", 5, nil)

	w := doJSON(t, r, http.MethodPost, "/orders", "", map[string]interface{}{
		"product_id": "p1",
		"quantity":   2,
		"fields":     map[string]interface{}{"customer_name": "Mia"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := decode(t, w)
	if resp["success"] != true {
		t.Fatalf("expected success=true: %v", resp)
	}
	if resp["id"] == "" || resp["id"] == nil {
		t.Fatalf("expected an order id: %v", resp)
	}

	p, _ := st.GetProduct(context.Background(), "p1")
	if p.StockQuantity != 3 {
		t.Fatalf("expected stock 3, got %d", p.StockQuantity)
	}
}

func TestPlaceOrderEndpointStockLimit(t *testing.T) {
	_, st, r := newTestApp(t)
	seedProduct(t, st, "p1", 1, nil)

	w := doJSON(t, r, http.MethodPost, "/orders", "", map[string]interface{}{
		"product_id": "p1",
		"quantity":   2,
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	resp := decode(t, w)
	if resp["success"] != false || resp["error"] != orders.CodeStockLimitExceeded {
		t.Fatalf("unexpected body: %v", resp)
	}
}

func TestPlaceOrderEndpointMissingProduct(t *testing.T) {
	_, _, r := newTestApp(t)

	w := doJSON(t, r, http.MethodPost, "/orders", "", map[string]interface{}{
		"product_id": "ghost",
	})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}
	resp := decode(t, w)
	if resp["success"] != false || resp["error"] != orders.CodeSystemError {
		t.Fatalf("unexpected body: %v", resp)
	}
}

func TestPlaceOrderEndpointRejectsBadQuantity(t *testing.T) {
	_, st, r := newTestApp(t)
	seedProduct(t, st, "p1", 5, nil)

	w := doJSON(t, r, http.MethodPost, "/orders", "", map[string]interface{}{
		"product_id": "p1",
		"quantity":   0,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	p, _ := st.GetProduct(context.Background(), "p1")
	if p.StockQuantity != 5 {
		t.Fatalf("stock changed on rejected request: %d", p.StockQuantity)
	}
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	app, _, r := newTestApp(t)

	if w := doJSON(t, r, http.MethodGet, "/admin/orders", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/admin/orders", userToken(t, app, "u1"), nil); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user role, got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/admin/orders", adminToken(t, app), nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", w.Code)
	}
}

func TestProductCRUDRoundTrip(t *testing.T) {
	app, _, r := newTestApp(t)
	token := adminToken(t, app)

	w := doJSON(t, r, http.MethodPost, "/admin/products", token, map[string]interface{}{
		"name":           "linen shirt",
		"price":          89.0,
		"category":       "shirts",
		"stock_quantity": 12,
		"size_stock":     map[string]int{"M": 6, "L": 6},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	id, _ := decode(t, w)["product_id"].(string)
	if id == "" {
		t.Fatalf("expected a product id")
	}

	w = doJSON(t, r, http.MethodGet, "/products/"+id, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPut, "/admin/products/"+id, token, map[string]interface{}{
		"name":           "linen shirt",
		"price":          79.0,
		"stock_quantity": 2,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, "/admin/products/"+id, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}
	if w = doJSON(t, r, http.MethodGet, "/products/"+id, "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	_, _, r := newTestApp(t)

	w := doJSON(t, r, http.MethodPost, "/register", "", map[string]interface{}{
		"username": "mia",
		"password": "super-secret-1",
		"email":    "mia@example.com",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Duplicate username is rejected.
	w = doJSON(t, r, http.MethodPost, "/register", "", map[string]interface{}{
		"username": "mia",
		"password": "super-secret-1",
		"email":    "mia@example.com",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/login", "", map[string]interface{}{
		"username": "mia",
		"password": "super-secret-1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if tok, _ := decode(t, w)["token"].(string); tok == "" {
		t.Fatalf("expected a token")
	}

	w = doJSON(t, r, http.MethodPost, "/login", "", map[string]interface{}{
		"username": "mia",
		"password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401, got %d", w.Code)
	}
}

func TestChatThreads(t *testing.T) {
	app, st, r := newTestApp(t)
	token := userToken(t, app, "u1")

	w := doJSON(t, r, http.MethodPost, "/chat", token, map[string]interface{}{"text": "is the coat still available?"})
	if w.Code != http.StatusCreated {
		t.Fatalf("post: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/chat", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", w.Code)
	}
	var resp struct {
		Messages []models.Message `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Messages) != 1 || resp.Messages[0].Sender != "u1" {
		t.Fatalf("unexpected thread: %+v", resp.Messages)
	}

	// Another user's thread stays separate.
	ms, _ := st.ListMessages(context.Background(), "u2")
	if len(ms) != 0 {
		t.Fatalf("thread leak: %+v", ms)
	}
}

func TestAdminOrderViews(t *testing.T) {
	app, st, r := newTestApp(t)
	token := adminToken(t, app)
	seedProduct(t, st, "p1", 10, nil)

	w := doJSON(t, r, http.MethodPost, "/orders", "", map[string]interface{}{"product_id": "p1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("place: expected 201, got %d", w.Code)
	}
	orderID, _ := decode(t, w)["id"].(string)

	w = doJSON(t, r, http.MethodGet, "/admin/orders?status=new", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/admin/orders/"+orderID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("detail: expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPut, "/admin/orders/"+orderID+"/status", token, map[string]interface{}{"status": "confirmed"})
	if w.Code != http.StatusOK {
		t.Fatalf("status: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	o, _ := st.GetOrder(context.Background(), orderID)
	if o.Status != models.OrderStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", o.Status)
	}

	w = doJSON(t, r, http.MethodPut, "/admin/orders/"+orderID+"/status", token, map[string]interface{}{"status": "teleported"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", w.Code)
	}
}
