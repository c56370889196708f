package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/swifttrack-be/internal/handlers"
	"github.com/ammerola/swifttrack-be/test/helpers"
	"github.com/ammerola/swifttrack-be/test/mocks"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func newHealthMux(t *testing.T, dbErr error, rdb *redis.Client, storage handlers.Pinger) http.Handler {
	t.Helper()
	ctrl := gomock.NewController(t)
	database := mocks.NewMockDatabaseProbe(ctrl)
	database.EXPECT().Ping(gomock.Any()).Return(dbErr).AnyTimes()
	database.EXPECT().Health(gomock.Any()).Return(map[string]interface{}{"total_conns": int32(2)}).AnyTimes()

	h := handlers.NewHealthHandler(database, rdb, nil, helpers.LoadTestConfig(), helpers.TestLogger())
	if storage != nil {
		h.WithStorage(storage)
	}

	mux := http.NewServeMux()
	handlers.Routes{Health: h}.Register(mux)
	return mux
}

func TestHealthHandler_Health(t *testing.T) {
	tests := []struct {
		name           string
		dbErr          error
		storageErr     error
		expectedStatus int
		expectedHealth string
	}{
		{name: "all_healthy", expectedStatus: http.StatusOK, expectedHealth: "healthy"},
		{name: "database_down", dbErr: errors.New("connection refused"), expectedStatus: http.StatusServiceUnavailable, expectedHealth: "degraded"},
		{name: "storage_down", storageErr: errors.New("bucket missing"), expectedStatus: http.StatusServiceUnavailable, expectedHealth: "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := helpers.SetupTestRedis(t)
			storage := pingFunc(func(context.Context) error { return tt.storageErr })
			mux := newHealthMux(t, tt.dbErr, tr.Client, storage)

			w := serve(mux, http.MethodGet, "/health", nil)

			require.Equal(t, tt.expectedStatus, w.Code)
			var status handlers.HealthStatus
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
			assert.Equal(t, tt.expectedHealth, status.Status)
			assert.Equal(t, "test", status.Version)
			assert.Contains(t, status.Services, "database")
			assert.Equal(t, "healthy", status.Services["redis"].Status)
			assert.Contains(t, status.Services, "storage")
			assert.NotContains(t, status.Services, "asynq")
		})
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	t.Run("ready_without_redis", func(t *testing.T) {
		unreachable := redis.NewClient(&redis.Options{
			Addr:        "127.0.0.1:1",
			DialTimeout: 100 * time.Millisecond,
			MaxRetries:  -1,
		})
		t.Cleanup(func() { unreachable.Close() })
		mux := newHealthMux(t, nil, unreachable, nil)

		w := serve(mux, http.MethodGet, "/ready", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Ready   bool              `json:"ready"`
			Details map[string]string `json:"details"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Ready)
		assert.Equal(t, "degraded", resp.Details["redis"])
	})

	t.Run("not_ready_without_database", func(t *testing.T) {
		mux := newHealthMux(t, errors.New("no route to host"), nil, nil)

		w := serve(mux, http.MethodGet, "/ready", nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
