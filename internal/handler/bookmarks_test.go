package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/scrapworks/reclaimer/internal/domain"
)

// MockBookmarkService mocks the bookmark.Service interface
type MockBookmarkService struct {
	mock.Mock
}

func (m *MockBookmarkService) AddBookmark(ctx context.Context, userID, itemID string) error {
	return m.Called(ctx, userID, itemID).Error(0)
}

func (m *MockBookmarkService) RemoveBookmark(ctx context.Context, userID, itemID string) error {
	return m.Called(ctx, userID, itemID).Error(0)
}

func (m *MockBookmarkService) PauseBookmark(ctx context.Context, userID, itemID string) error {
	return m.Called(ctx, userID, itemID).Error(0)
}

func (m *MockBookmarkService) ResumeBookmark(ctx context.Context, userID, itemID string) error {
	return m.Called(ctx, userID, itemID).Error(0)
}

func (m *MockBookmarkService) ListBookmarks(ctx context.Context, userID string) ([]domain.BookmarkEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookmarkEntry), args.Error(1)
}

func (m *MockBookmarkService) HideSource(ctx context.Context, userID, itemID string) error {
	return m.Called(ctx, userID, itemID).Error(0)
}

func (m *MockBookmarkService) UnhideSource(ctx context.Context, userID, itemID string) error {
	return m.Called(ctx, userID, itemID).Error(0)
}

func (m *MockBookmarkService) ListHiddenSources(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBookmarkService) GetSettings(ctx context.Context, userID string) (domain.PlannerSettings, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.PlannerSettings), args.Error(1)
}

func (m *MockBookmarkService) UpdateSettings(ctx context.Context, userID string, settings domain.PlannerSettings) error {
	return m.Called(ctx, userID, settings).Error(0)
}

func (m *MockBookmarkService) AggregationInputs(ctx context.Context, userID string) ([]string, domain.ScoringMethod, domain.FilterOptions, error) {
	args := m.Called(ctx, userID)
	var ids []string
	if args.Get(0) != nil {
		ids = args.Get(0).([]string)
	}
	return ids, args.Get(1).(domain.ScoringMethod), args.Get(2).(domain.FilterOptions), args.Error(3)
}

func TestHandleAddBookmark(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockBookmarkService)
		expectedStatus int
	}{
		{
			name: "Success",
			body: `{"user_id":"user1","item_id":"breacher"}`,
			setupMock: func(m *MockBookmarkService) {
				m.On("AddBookmark", mock.Anything, "user1", "breacher").Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing item_id",
			body:           `{"user_id":"user1"}`,
			setupMock:      func(m *MockBookmarkService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Duplicate bookmark",
			body: `{"user_id":"user1","item_id":"breacher"}`,
			setupMock: func(m *MockBookmarkService) {
				m.On("AddBookmark", mock.Anything, "user1", "breacher").Return(domain.ErrBookmarkAlreadyExists)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Unknown item",
			body: `{"user_id":"user1","item_id":"ghost"}`,
			setupMock: func(m *MockBookmarkService) {
				m.On("AddBookmark", mock.Anything, "user1", "ghost").Return(domain.ErrItemNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockBookmarkService{}
			tt.setupMock(mockSvc)

			handler := HandleAddBookmark(mockSvc)

			req := httptest.NewRequest("POST", "/api/v1/bookmarks/add", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestHandleRemoveBookmark_NotFound(t *testing.T) {
	mockSvc := &MockBookmarkService{}
	mockSvc.On("RemoveBookmark", mock.Anything, "user1", "ghost").Return(domain.ErrBookmarkNotFound)

	handler := HandleRemoveBookmark(mockSvc)

	req := httptest.NewRequest("POST", "/api/v1/bookmarks/remove", bytes.NewBufferString(`{"user_id":"user1","item_id":"ghost"}`))
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockSvc.AssertExpectations(t)
}

func TestHandleListBookmarks(t *testing.T) {
	t.Run("Success with nil entries normalized", func(t *testing.T) {
		mockSvc := &MockBookmarkService{}
		mockSvc.On("ListBookmarks", mock.Anything, "user1").Return(nil, nil)

		handler := HandleListBookmarks(mockSvc)

		req := httptest.NewRequest("GET", "/api/v1/bookmarks/?user_id=user1", nil)
		rec := httptest.NewRecorder()

		handler(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"bookmarks":[]`)
	})

	t.Run("Missing user_id", func(t *testing.T) {
		handler := HandleListBookmarks(&MockBookmarkService{})

		req := httptest.NewRequest("GET", "/api/v1/bookmarks/", nil)
		rec := httptest.NewRecorder()

		handler(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandlePauseBookmark(t *testing.T) {
	mockSvc := &MockBookmarkService{}
	mockSvc.On("PauseBookmark", mock.Anything, "user1", "bag").Return(nil)

	handler := HandlePauseBookmark(mockSvc)

	req := httptest.NewRequest("POST", "/api/v1/bookmarks/pause", bytes.NewBufferString(`{"user_id":"user1","item_id":"bag"}`))
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bookmark paused")
	mockSvc.AssertExpectations(t)
}

func TestHandleHideSource(t *testing.T) {
	mockSvc := &MockBookmarkService{}
	mockSvc.On("HideSource", mock.Anything, "user1", "radio").Return(nil)

	handler := HandleHideSource(mockSvc)

	req := httptest.NewRequest("POST", "/api/v1/sources/hide", bytes.NewBufferString(`{"user_id":"user1","item_id":"radio"}`))
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockSvc.AssertExpectations(t)
}

func TestHandleGetSettings(t *testing.T) {
	mockSvc := &MockBookmarkService{}
	mockSvc.On("GetSettings", mock.Anything, "user1").Return(domain.DefaultPlannerSettings(), nil)

	handler := HandleGetSettings(mockSvc)

	req := httptest.NewRequest("GET", "/api/v1/settings/?user_id=user1", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"scoring_method":"max_yield"`)
	mockSvc.AssertExpectations(t)
}

func TestHandleUpdateSettings(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockSvc := &MockBookmarkService{}
		expected := domain.PlannerSettings{
			HideScrappyCollected: true,
			RarityFilters:        []domain.Rarity{domain.RarityRare},
			ScoringMethod:        domain.ScoringWeightConscious,
		}
		mockSvc.On("UpdateSettings", mock.Anything, "user1", expected).Return(nil)

		handler := HandleUpdateSettings(mockSvc)

		body := `{"user_id":"user1","hide_scrappy_collected":true,"rarity_filters":["RARE"],"scoring_method":"weight_conscious"}`
		req := httptest.NewRequest("POST", "/api/v1/settings/", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		handler(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Invalid scoring method", func(t *testing.T) {
		handler := HandleUpdateSettings(&MockBookmarkService{})

		body := `{"user_id":"user1","scoring_method":"fastest"}`
		req := httptest.NewRequest("POST", "/api/v1/settings/", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		handler(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Invalid rarity filter", func(t *testing.T) {
		handler := HandleUpdateSettings(&MockBookmarkService{})

		body := `{"user_id":"user1","rarity_filters":["MYTHIC"],"scoring_method":"max_yield"}`
		req := httptest.NewRequest("POST", "/api/v1/settings/", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		handler(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
