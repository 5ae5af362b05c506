package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	inventorysvc "github.com/angelmondragon/testmart-backend/internal/inventory"
	pkgerrors "github.com/angelmondragon/testmart-backend/pkg/errors"
	"github.com/angelmondragon/testmart-backend/pkg/pagination"
)

type stubInventoryService struct {
	createdProduct int64
	createdStock   int
	adjustedStock  int
	threshold      int
	logParams      pagination.Params
	err            error
}

func (s *stubInventoryService) CreateInventory(_ context.Context, productID int64, initialStock int) (*inventorysvc.InventoryDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.createdProduct, s.createdStock = productID, initialStock
	return &inventorysvc.InventoryDTO{ID: 1, ProductID: productID, Stock: initialStock}, nil
}

func (s *stubInventoryService) AdjustStock(_ context.Context, productID int64, newStock int) (*inventorysvc.InventoryDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.adjustedStock = newStock
	return &inventorysvc.InventoryDTO{ID: 1, ProductID: productID, Stock: newStock}, nil
}

func (s *stubInventoryService) GetInventory(_ context.Context, productID int64) (*inventorysvc.InventoryDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &inventorysvc.InventoryDTO{ID: 1, ProductID: productID, Stock: 3}, nil
}

func (s *stubInventoryService) ListInventory(context.Context) ([]inventorysvc.InventoryDTO, error) {
	return []inventorysvc.InventoryDTO{{ID: 1}}, s.err
}

func (s *stubInventoryService) LowStock(_ context.Context, threshold int) ([]inventorysvc.InventoryDTO, error) {
	s.threshold = threshold
	return []inventorysvc.InventoryDTO{}, s.err
}

func (s *stubInventoryService) ListLogs(_ context.Context, _ int64, params pagination.Params) ([]inventorysvc.LogDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.logParams = params
	return []inventorysvc.LogDTO{{ID: 2, Change: -1, Reason: "sale"}}, nil
}

func TestCreateInventory(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		stub := &stubInventoryService{}
		req := httptest.NewRequest(http.MethodPost, "/api/inventory", strings.NewReader(`{"product_id":5,"stock":0}`))
		rec := httptest.NewRecorder()
		CreateInventory(stub, testLogger()).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.createdProduct != 5 || stub.createdStock != 0 {
			t.Fatalf("unexpected call product=%d stock=%d", stub.createdProduct, stub.createdStock)
		}
	})

	t.Run("missing stock", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/inventory", strings.NewReader(`{"product_id":5}`))
		rec := httptest.NewRecorder()
		CreateInventory(&stubInventoryService{}, testLogger()).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		stub := &stubInventoryService{err: pkgerrors.New(pkgerrors.CodeConflict, "Inventory for product 5 already exists")}
		req := httptest.NewRequest(http.MethodPost, "/api/inventory", strings.NewReader(`{"product_id":5,"stock":3}`))
		rec := httptest.NewRecorder()
		CreateInventory(stub, testLogger()).ServeHTTP(rec, req)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}

func TestAdjustStock(t *testing.T) {
	stub := &stubInventoryService{}
	req := withProductID(httptest.NewRequest(http.MethodPut, "/api/inventory/5", strings.NewReader(`{"stock":12}`)), "5")
	rec := httptest.NewRecorder()
	AdjustStock(stub, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodeData[inventorysvc.InventoryDTO](t, rec); got.Stock != 12 {
		t.Fatalf("expected stock 12, got %d", got.Stock)
	}

	missing := &stubInventoryService{err: pkgerrors.New(pkgerrors.CodeNotFound, "Inventory not found")}
	req = withProductID(httptest.NewRequest(http.MethodPut, "/api/inventory/9", strings.NewReader(`{"stock":1}`)), "9")
	rec = httptest.NewRecorder()
	AdjustStock(missing, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestLowStockThreshold(t *testing.T) {
	stub := &stubInventoryService{}
	rec := httptest.NewRecorder()
	LowStock(stub, 0, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/inventory/low-stock", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.threshold != inventorysvc.DefaultLowStockThreshold {
		t.Fatalf("expected default threshold, got %d", stub.threshold)
	}

	rec = httptest.NewRecorder()
	LowStock(stub, 25, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/inventory/low-stock?threshold=4", nil))
	if stub.threshold != 4 {
		t.Fatalf("expected threshold 4, got %d", stub.threshold)
	}

	rec = httptest.NewRecorder()
	LowStock(stub, 25, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/inventory/low-stock?threshold=-1", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative threshold, got %d", rec.Code)
	}
}

func TestInventoryLogs(t *testing.T) {
	stub := &stubInventoryService{}
	req := withProductID(httptest.NewRequest(http.MethodGet, "/api/inventory/5/logs?offset=1&limit=10", nil), "5")
	rec := httptest.NewRecorder()
	InventoryLogs(stub, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.logParams != (pagination.Params{Limit: 10, Offset: 1}) {
		t.Fatalf("unexpected params %+v", stub.logParams)
	}
	logs := decodeData[[]inventorysvc.LogDTO](t, rec)
	if len(logs) != 1 || logs[0].Reason != "sale" {
		t.Fatalf("unexpected logs %+v", logs)
	}
}
