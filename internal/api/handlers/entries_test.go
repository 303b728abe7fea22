package handlers_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecpm-app/ecpm-backend/internal/api/dto"
	"github.com/ecpm-app/ecpm-backend/internal/api/handlers"
	"github.com/ecpm-app/ecpm-backend/internal/application/service"
	"github.com/ecpm-app/ecpm-backend/internal/domain/profit"
	"github.com/ecpm-app/ecpm-backend/internal/infrastructure/storage"
)

func newDayService(repo storage.Repository) *service.DayService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return service.NewDayService(repo, logger, profit.DefaultOptions(), 126)
}

func TestEntriesHandler_Submit(t *testing.T) {
	t.Run("creates a day from an entry", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := handlers.NewEntriesHandler(newDayService(repo))

		body, err := json.Marshal(dto.SubmitEntryRequest{
			Date:     "2024-06-01",
			PageName: "Page A",
			Products: []dto.EntryProductRequest{
				{Name: "Combo A", Quantity: 30, SalePrice: 500, PurchaseCost: 200},
			},
			PageAdSpendForeign: 50,
			DollarRate:         120,
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/entries", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Submit(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var day profit.DailyRecord
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&day))
		assert.Equal(t, "2024-06-01", day.Date)
		require.Len(t, day.Batches, 1)
		assert.Equal(t, 30, day.Summary.TotalOrders)
		assert.True(t, repo.SaveDayCalled)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := handlers.NewEntriesHandler(newDayService(repo))

		req := httptest.NewRequest(http.MethodPost, "/api/entries", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()

		handler.Submit(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects missing date", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := handlers.NewEntriesHandler(newDayService(repo))

		body, _ := json.Marshal(dto.SubmitEntryRequest{PageName: "Page A"})
		req := httptest.NewRequest(http.MethodPost, "/api/entries", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Submit(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var response dto.APIError
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, dto.ErrCodeValidation, response.Code)
	})

	t.Run("returns 500 when save fails", func(t *testing.T) {
		repo := storage.NewMockRepository()
		repo.SaveDayErr = assert.AnError
		handler := handlers.NewEntriesHandler(newDayService(repo))

		body, _ := json.Marshal(dto.SubmitEntryRequest{
			Date:     "2024-06-01",
			PageName: "Page A",
			Products: []dto.EntryProductRequest{{Quantity: 1}},
		})
		req := httptest.NewRequest(http.MethodPost, "/api/entries", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Submit(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
