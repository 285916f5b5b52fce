package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/middleware"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/model"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/repository"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/service"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	testUserHeader = "X-Test-User"
	testRoleHeader = "X-Test-Role"
)

// fakeAuth stands in for JWTAuth: the caller identity comes from test headers.
func fakeAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader(testUserHeader); id != "" {
			c.Set(middleware.ClaimsKey, &middleware.JWTClaims{
				UserID: id,
				Name:   "name-" + id,
				Role:   model.Role(c.GetHeader(testRoleHeader)),
			})
		}
		c.Next()
	}
}

type testApp struct {
	engine    *gin.Engine
	inventory service.InventoryService
	orders    service.OrderService
	vendors   service.VendorService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	st := storage.NewMemoryStorage()

	inv := service.NewInventoryService(service.InventoryRepositories{
		Items:     repository.NewInventoryRepository(st),
		Movements: repository.NewMovementRepository(st),
		Transfers: repository.NewTransferRepository(st),
		Alerts:    repository.NewAlertRepository(st),
	})
	orders := service.NewOrderService(repository.NewOrderRepository(st), nil)
	vendors := service.NewVendorService(repository.NewVendorRepository(st))
	require.NoError(t, inv.Load(ctx))
	require.NoError(t, orders.Load(ctx))
	require.NoError(t, vendors.Load(ctx))

	invH := NewInventoryHandler(inv)
	orderH := NewOrderHandler(orders)
	vendorH := NewVendorHandler(vendors)
	admin := middleware.RequireRole(model.RoleAdmin)
	salesman := middleware.RequireRole(model.RoleSalesman)

	r := gin.New()
	r.GET("/health", Health(st, nil))
	v1 := r.Group("/v1", fakeAuth())
	v1.GET("/inventory", invH.ListItems)
	v1.POST("/inventory", admin, invH.CreateItem)
	v1.GET("/inventory/summary", invH.Summary)
	v1.GET("/inventory/movements", invH.ListMovements)
	v1.GET("/inventory/export", admin, invH.Export)
	v1.GET("/inventory/:id", invH.GetItem)
	v1.DELETE("/inventory/:id", admin, invH.RemoveItem)
	v1.POST("/inventory/:id/stock", admin, invH.UpdateStock)
	v1.GET("/transfers", invH.ListTransfers)
	v1.POST("/transfers", invH.CreateTransfer)
	v1.PATCH("/transfers/:id/status", admin, invH.UpdateTransferStatus)
	v1.GET("/alerts", invH.ListAlerts)
	v1.POST("/alerts/:id/acknowledge", admin, invH.AcknowledgeAlert)
	v1.GET("/orders", orderH.List)
	v1.POST("/orders", salesman, orderH.Create)
	v1.GET("/orders/:id", orderH.Get)
	v1.PUT("/orders/:id/pricing", admin, orderH.SetPricing)
	v1.PUT("/orders/:id/adjustment", salesman, orderH.Adjust)
	v1.POST("/orders/:id/approve", admin, orderH.Approve)
	v1.POST("/orders/:id/reject", admin, orderH.Reject)
	v1.GET("/vendors", vendorH.List)
	v1.POST("/vendors", vendorH.Create)
	v1.GET("/vendors/:id", vendorH.Get)

	return &testApp{engine: r, inventory: inv, orders: orders, vendors: vendors}
}

type actor struct {
	id   string
	role model.Role
}

var (
	adminUser = actor{id: "admin-1", role: model.RoleAdmin}
	salesA    = actor{id: "sales-a", role: model.RoleSalesman}
	salesB    = actor{id: "sales-b", role: model.RoleSalesman}
	anonymous = actor{}
)

func (a *testApp) do(t *testing.T, as actor, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if as.id != "" {
		req.Header.Set(testUserHeader, as.id)
		req.Header.Set(testRoleHeader, string(as.role))
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
