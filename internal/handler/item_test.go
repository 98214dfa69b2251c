package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/scrapworks/reclaimer/internal/domain"
)

// MockCatalog mocks the repository.Catalog interface
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) ItemByID(ctx context.Context, id string) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockCatalog) RecipesFor(ctx context.Context, itemID string) ([]domain.RecipeCost, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecipeCost), args.Error(1)
}

func (m *MockCatalog) SalvageOutputsFor(ctx context.Context, materialID string, excluded []string) ([]domain.YieldRow, error) {
	args := m.Called(ctx, materialID, excluded)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.YieldRow), args.Error(1)
}

func (m *MockCatalog) RecycleOutputsFor(ctx context.Context, materialID string, excluded []string) ([]domain.YieldRow, error) {
	args := m.Called(ctx, materialID, excluded)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.YieldRow), args.Error(1)
}

func itemRequest(itemID string) *http.Request {
	req := httptest.NewRequest("GET", "/api/v1/item/"+itemID, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("itemID", itemID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestHandleGetItem(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockCatalog := &MockCatalog{}
		mockCatalog.On("ItemByID", mock.Anything, "wrench_1").Return(
			&domain.Item{ID: "wrench_1", Name: "Wrench I", Rarity: domain.RarityCommon, StackSize: 10}, nil)

		handler := HandleGetItem(mockCatalog)
		rec := httptest.NewRecorder()

		handler(rec, itemRequest("wrench_1"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"name":"Wrench I"`)
		mockCatalog.AssertExpectations(t)
	})

	t.Run("Not found", func(t *testing.T) {
		mockCatalog := &MockCatalog{}
		mockCatalog.On("ItemByID", mock.Anything, "ghost").Return(nil, domain.ErrItemNotFound)

		handler := HandleGetItem(mockCatalog)
		rec := httptest.NewRecorder()

		handler(rec, itemRequest("ghost"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		mockCatalog.AssertExpectations(t)
	})
}
