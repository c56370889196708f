// internal/handlers/export_test.go
package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/swifttrack-be/internal/core/analysis"
	"github.com/ammerola/swifttrack-be/internal/core/domain"
	"github.com/ammerola/swifttrack-be/internal/core/ports"
	"github.com/ammerola/swifttrack-be/internal/core/services"
	"github.com/ammerola/swifttrack-be/internal/handlers"
	"github.com/ammerola/swifttrack-be/internal/workers"
	"github.com/ammerola/swifttrack-be/test/helpers"
	"github.com/ammerola/swifttrack-be/test/mocks"
)

// fakeQueue records enqueued tasks instead of talking to Redis
type fakeQueue struct {
	tasks []*asynq.Task
	err   error
}

func (q *fakeQueue) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{ID: "task-" + strconv.Itoa(len(q.tasks)), Queue: workers.QueueDefault, Type: task.Type()}, nil
}

type reportMocks struct {
	reports   *mocks.MockReportService
	analytics *mocks.MockAnalyticsService
}

func newReportMux(t *testing.T, queue workers.Enqueuer) (reportMocks, http.Handler) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := reportMocks{
		reports:   mocks.NewMockReportService(ctrl),
		analytics: mocks.NewMockAnalyticsService(ctrl),
	}

	mux := http.NewServeMux()
	handlers.Routes{
		Reports: handlers.NewReportHandler(m.reports, m.analytics, queue, helpers.TestLogger()),
	}.Register(mux)
	return m, mux
}

func TestReportHandler_GetReport(t *testing.T) {
	tests := []struct {
		name           string
		kind           string
		setupMocks     func(reportMocks)
		expectedStatus int
	}{
		{
			name: "profit_margins",
			kind: "profit-margins",
			setupMocks: func(m reportMocks) {
				m.analytics.EXPECT().ProfitMargins(gomock.Any()).Return([]analysis.ProfitMarginRow{
					{ID: "QR1", Name: "Coffee", MarginPercentage: decimal.NewFromInt(40)},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "stock_aging",
			kind: "stock-aging",
			setupMocks: func(m reportMocks) {
				m.analytics.EXPECT().StockAging(gomock.Any()).Return([]analysis.StockAgingRow{{ID: "QR1"}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "supplier_performance",
			kind: "supplier-performance",
			setupMocks: func(m reportMocks) {
				m.analytics.EXPECT().SupplierPerformance(gomock.Any()).Return([]analysis.SupplierPerformanceRow{{SupplierID: "SUP001"}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "kind_without_table_view",
			kind:           "abc",
			setupMocks:     func(reportMocks) {},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unknown_kind",
			kind:           "sales-forecast",
			setupMocks:     func(reportMocks) {},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "service_error",
			kind: "stock-aging",
			setupMocks: func(m reportMocks) {
				m.analytics.EXPECT().StockAging(gomock.Any()).Return(nil, errors.New("pool closed"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, mux := newReportMux(t, nil)
			tt.setupMocks(m)

			w := serve(mux, http.MethodGet, "/api/v1/reports/"+tt.kind, nil)

			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var resp struct {
					Kind string            `json:"kind"`
					Rows []json.RawMessage `json:"rows"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.kind, resp.Kind)
				assert.Len(t, resp.Rows, 1)
			}
		})
	}
}

func TestReportHandler_Export(t *testing.T) {
	workbook := []byte("PK\x03\x04fake-xlsx")

	tests := []struct {
		name         string
		target       string
		kind         domain.ReportKind
		expectedName string
	}{
		{name: "inventory_shortcut", target: "/api/v1/export/inventory", kind: domain.ReportInventory, expectedName: "inventory-2025-06-15.xlsx"},
		{name: "abc_report", target: "/api/v1/reports/abc/export", kind: domain.ReportABC, expectedName: "abc-2025-06-15.xlsx"},
		{name: "dead_stock_report", target: "/api/v1/reports/dead-stock/export", kind: domain.ReportDeadStock, expectedName: "dead-stock-2025-06-15.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, mux := newReportMux(t, nil)
			m.reports.EXPECT().Export(gomock.Any(), tt.kind).Return(&ports.ReportFile{
				Kind:        tt.kind,
				Filename:    tt.kind.Filename("2025-06-15"),
				ContentType: services.XLSXContentType,
				Data:        workbook,
			}, nil)

			w := serve(mux, http.MethodGet, tt.target, nil)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, services.XLSXContentType, w.Header().Get("Content-Type"))
			assert.Equal(t, `attachment; filename="`+tt.expectedName+`"`, w.Header().Get("Content-Disposition"))
			assert.Equal(t, strconv.Itoa(len(workbook)), w.Header().Get("Content-Length"))
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			assert.Equal(t, workbook, w.Body.Bytes())
		})
	}

	t.Run("unknown_kind", func(t *testing.T) {
		_, mux := newReportMux(t, nil)

		w := serve(mux, http.MethodGet, "/api/v1/reports/forecast/export", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("render_failure", func(t *testing.T) {
		m, mux := newReportMux(t, nil)
		m.reports.EXPECT().Export(gomock.Any(), domain.ReportABC).Return(nil, errors.New("xlsx: write failed"))

		w := serve(mux, http.MethodGet, "/api/v1/reports/abc/export", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to export report", decodeError(t, w).Error)
	})
}

func TestReportHandler_EnqueueReport(t *testing.T) {
	t.Run("queues_task", func(t *testing.T) {
		queue := &fakeQueue{}
		_, mux := newReportMux(t, queue)

		w := serve(mux, http.MethodPost, "/api/v1/reports/abc/jobs", nil)

		require.Equal(t, http.StatusAccepted, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "task-1", resp["task_id"])
		assert.Equal(t, "abc", resp["kind"])
		assert.Equal(t, "queued", resp["status"])

		require.Len(t, queue.tasks, 1)
		assert.Equal(t, workers.TypeGenerateReport, queue.tasks[0].Type())
		var payload workers.ReportPayload
		require.NoError(t, json.Unmarshal(queue.tasks[0].Payload(), &payload))
		assert.Equal(t, domain.ReportABC, payload.Kind)
	})

	t.Run("unknown_kind_is_not_queued", func(t *testing.T) {
		queue := &fakeQueue{}
		_, mux := newReportMux(t, queue)

		w := serve(mux, http.MethodPost, "/api/v1/reports/forecast/jobs", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, queue.tasks)
	})

	t.Run("queue_unavailable", func(t *testing.T) {
		_, mux := newReportMux(t, nil)

		w := serve(mux, http.MethodPost, "/api/v1/reports/abc/jobs", nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("enqueue_error", func(t *testing.T) {
		_, mux := newReportMux(t, &fakeQueue{err: errors.New("redis down")})

		w := serve(mux, http.MethodPost, "/api/v1/reports/inventory/jobs", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to queue report", decodeError(t, w).Error)
	})
}
