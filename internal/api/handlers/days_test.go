package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecpm-app/ecpm-backend/internal/api/dto"
	"github.com/ecpm-app/ecpm-backend/internal/api/handlers"
	"github.com/ecpm-app/ecpm-backend/internal/domain/profit"
	"github.com/ecpm-app/ecpm-backend/internal/infrastructure/storage"
)

// setChiURLParam injects a chi URL parameter into a request context for
// direct handler invocation.
func setChiURLParam(ctx context.Context, key, value string) context.Context {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return context.WithValue(ctx, chi.RouteCtxKey, rctx)
}

func seedDay(t *testing.T, repo *storage.MockRepository, date string) *profit.DailyRecord {
	t.Helper()
	day := profit.Allocate(profit.DailyRecord{
		ID:         "day-" + date,
		Date:       date,
		DollarRate: 120,
		Batches: []profit.Batch{
			{ID: "batch-1", PageName: "P", ProductName: "A", TotalOrders: 30, SalePrice: 500, PurchaseCost: 200, PageAdSpendForeign: 30},
			{ID: "batch-2", PageName: "P", ProductName: "B", TotalOrders: 10, SalePrice: 500, PurchaseCost: 200, PageAdSpendForeign: 10},
		},
	})
	repo.AddDay(&day)
	return &day
}

func TestDaysHandler_List(t *testing.T) {
	t.Run("returns empty list when no days", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := handlers.NewDaysHandler(newDayService(repo))

		req := httptest.NewRequest(http.MethodGet, "/api/days", nil)
		rec := httptest.NewRecorder()

		handler.List(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var response dto.DayListResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Empty(t, response.Days)
		assert.Equal(t, 0, response.Count)
	})

	t.Run("returns days newest first", func(t *testing.T) {
		repo := storage.NewMockRepository()
		seedDay(t, repo, "2024-06-01")
		seedDay(t, repo, "2024-06-03")
		handler := handlers.NewDaysHandler(newDayService(repo))

		req := httptest.NewRequest(http.MethodGet, "/api/days", nil)
		rec := httptest.NewRecorder()

		handler.List(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var response dto.DayListResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		require.Equal(t, 2, response.Count)
		assert.Equal(t, "2024-06-03", response.Days[0].Date)
		assert.Equal(t, "2024-06-01", response.Days[1].Date)
	})
}

func TestDaysHandler_Get(t *testing.T) {
	t.Run("returns a single day", func(t *testing.T) {
		repo := storage.NewMockRepository()
		seeded := seedDay(t, repo, "2024-06-01")
		handler := handlers.NewDaysHandler(newDayService(repo))

		req := httptest.NewRequest(http.MethodGet, "/api/days/2024-06-01", nil)
		req = req.WithContext(setChiURLParam(req.Context(), "date", "2024-06-01"))
		rec := httptest.NewRecorder()

		handler.Get(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var day profit.DailyRecord
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&day))
		assert.Equal(t, seeded.ID, day.ID)
		assert.Len(t, day.Batches, 2)
	})

	t.Run("returns 404 for missing day", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := handlers.NewDaysHandler(newDayService(repo))

		req := httptest.NewRequest(http.MethodGet, "/api/days/2030-01-01", nil)
		req = req.WithContext(setChiURLParam(req.Context(), "date", "2030-01-01"))
		rec := httptest.NewRecorder()

		handler.Get(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)

		var response dto.APIError
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, dto.ErrCodeNotFound, response.Code)
	})
}

func TestDaysHandler_Replace(t *testing.T) {
	t.Run("overwrites and recomputes the day", func(t *testing.T) {
		repo := storage.NewMockRepository()
		seedDay(t, repo, "2024-06-01")
		handler := handlers.NewDaysHandler(newDayService(repo))

		replacement := profit.DailyRecord{
			DollarRate: 100,
			Batches: []profit.Batch{
				{PageName: "Q", TotalOrders: 5, SalePrice: 300, ComputedNetProfit: -1},
			},
		}
		body, err := json.Marshal(replacement)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPut, "/api/days/2024-06-01", bytes.NewReader(body))
		req = req.WithContext(setChiURLParam(req.Context(), "date", "2024-06-01"))
		rec := httptest.NewRecorder()

		handler.Replace(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var day profit.DailyRecord
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&day))
		assert.Equal(t, "2024-06-01", day.Date)
		require.Len(t, day.Batches, 1)
		assert.NotEmpty(t, day.Batches[0].ID)
		assert.InDelta(t, 1500, day.Summary.TotalProfit, 1e-9)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := handlers.NewDaysHandler(newDayService(repo))

		req := httptest.NewRequest(http.MethodPut, "/api/days/2024-06-01", bytes.NewReader([]byte("nope")))
		req = req.WithContext(setChiURLParam(req.Context(), "date", "2024-06-01"))
		rec := httptest.NewRecorder()

		handler.Replace(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDaysHandler_Delete(t *testing.T) {
	t.Run("deletes an existing day", func(t *testing.T) {
		repo := storage.NewMockRepository()
		seedDay(t, repo, "2024-06-01")
		handler := handlers.NewDaysHandler(newDayService(repo))

		req := httptest.NewRequest(http.MethodDelete, "/api/days/2024-06-01", nil)
		req = req.WithContext(setChiURLParam(req.Context(), "date", "2024-06-01"))
		rec := httptest.NewRecorder()

		handler.Delete(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		stored, err := repo.GetDay("2024-06-01")
		require.NoError(t, err)
		assert.Nil(t, stored)
	})

	t.Run("returns 404 for missing day", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := handlers.NewDaysHandler(newDayService(repo))

		req := httptest.NewRequest(http.MethodDelete, "/api/days/2030-01-01", nil)
		req = req.WithContext(setChiURLParam(req.Context(), "date", "2030-01-01"))
		rec := httptest.NewRecorder()

		handler.Delete(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDaysHandler_DeleteBatch(t *testing.T) {
	t.Run("removes one batch and reallocates the rest", func(t *testing.T) {
		repo := storage.NewMockRepository()
		seedDay(t, repo, "2024-06-01")
		handler := handlers.NewDaysHandler(newDayService(repo))

		req := httptest.NewRequest(http.MethodDelete, "/api/days/2024-06-01/batches/batch-2", nil)
		ctx := setChiURLParam(req.Context(), "date", "2024-06-01")
		rctx := chi.RouteContext(ctx)
		rctx.URLParams.Add("batchID", "batch-2")
		req = req.WithContext(ctx)
		rec := httptest.NewRecorder()

		handler.DeleteBatch(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var day profit.DailyRecord
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&day))
		require.Len(t, day.Batches, 1)
		assert.Equal(t, "batch-1", day.Batches[0].ID)
		assert.Equal(t, 30, day.Summary.TotalOrders)
	})

	t.Run("returns 404 for missing batch", func(t *testing.T) {
		repo := storage.NewMockRepository()
		seedDay(t, repo, "2024-06-01")
		handler := handlers.NewDaysHandler(newDayService(repo))

		req := httptest.NewRequest(http.MethodDelete, "/api/days/2024-06-01/batches/nope", nil)
		ctx := setChiURLParam(req.Context(), "date", "2024-06-01")
		chi.RouteContext(ctx).URLParams.Add("batchID", "nope")
		req = req.WithContext(ctx)
		rec := httptest.NewRecorder()

		handler.DeleteBatch(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
