package services_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/swifttrack-be/internal/core/analysis"
	"github.com/ammerola/swifttrack-be/internal/core/domain"
	"github.com/ammerola/swifttrack-be/internal/core/services"
	"github.com/ammerola/swifttrack-be/test/helpers"
	"github.com/ammerola/swifttrack-be/test/mocks"
)

type reportFixture struct {
	analytics *mocks.MockAnalyticsService
	renderer  *mocks.MockWorkbookRenderer
	storage   *mocks.MockFileStorage
	service   *services.ReportService
}

func newReportFixture(t *testing.T, withStorage bool) *reportFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &reportFixture{
		analytics: mocks.NewMockAnalyticsService(ctrl),
		renderer:  mocks.NewMockWorkbookRenderer(ctrl),
		storage:   mocks.NewMockFileStorage(ctrl),
	}
	// a nil *MockFileStorage would still be a non-nil interface
	if withStorage {
		f.service = services.NewReportService(f.analytics, f.renderer, f.storage, time.Hour, helpers.TestLogger())
	} else {
		f.service = services.NewReportService(f.analytics, f.renderer, nil, time.Hour, helpers.TestLogger())
	}
	f.service.WithClock(func() time.Time { return helpers.FixedNow })
	return f
}

func TestReportService_Export(t *testing.T) {
	workbook := []byte("PK\x03\x04")

	tests := []struct {
		name   string
		kind   domain.ReportKind
		expect func(f *reportFixture)
	}{
		{
			name: "inventory",
			kind: domain.ReportInventory,
			expect: func(f *reportFixture) {
				f.analytics.EXPECT().ClassifiedItems(gomock.Any()).Return([]domain.InventoryItem{*helpers.CreateTestInventoryItem()}, nil)
				f.renderer.EXPECT().Inventory(gomock.Len(1), helpers.FixedNow).Return(workbook, nil)
			},
		},
		{
			name: "abc",
			kind: domain.ReportABC,
			expect: func(f *reportFixture) {
				f.analytics.EXPECT().ABCSummary(gomock.Any()).Return(&analysis.ABCSummary{}, nil)
				f.renderer.EXPECT().ABC(gomock.Any()).Return(workbook, nil)
			},
		},
		{
			name: "dead_stock",
			kind: domain.ReportDeadStock,
			expect: func(f *reportFixture) {
				f.analytics.EXPECT().DeadStock(gomock.Any()).Return([]analysis.DeadStockItem{}, nil)
				f.renderer.EXPECT().DeadStock(gomock.Any()).Return(workbook, nil)
			},
		},
		{
			name: "profit_margins",
			kind: domain.ReportProfitMargins,
			expect: func(f *reportFixture) {
				f.analytics.EXPECT().ProfitMargins(gomock.Any()).Return(nil, nil)
				f.renderer.EXPECT().ProfitMargins(gomock.Any()).Return(workbook, nil)
			},
		},
		{
			name: "stock_aging",
			kind: domain.ReportStockAging,
			expect: func(f *reportFixture) {
				f.analytics.EXPECT().StockAging(gomock.Any()).Return(nil, nil)
				f.renderer.EXPECT().StockAging(gomock.Any()).Return(workbook, nil)
			},
		},
		{
			name: "supplier_performance",
			kind: domain.ReportSupplierPerformance,
			expect: func(f *reportFixture) {
				f.analytics.EXPECT().SupplierPerformance(gomock.Any()).Return(nil, nil)
				f.renderer.EXPECT().SupplierPerformance(gomock.Any()).Return(workbook, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReportFixture(t, false)
			tt.expect(f)

			file, err := f.service.Export(context.Background(), tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, file.Kind)
			assert.Equal(t, string(tt.kind)+"-2025-06-15.xlsx", file.Filename)
			assert.Equal(t, services.XLSXContentType, file.ContentType)
			assert.Equal(t, workbook, file.Data)
		})
	}

	t.Run("unknown_kind", func(t *testing.T) {
		f := newReportFixture(t, false)

		_, err := f.service.Export(context.Background(), "quarterly")
		assert.ErrorIs(t, err, domain.ErrUnknownReport)
	})

	t.Run("render_error", func(t *testing.T) {
		f := newReportFixture(t, false)
		f.analytics.EXPECT().DeadStock(gomock.Any()).Return(nil, nil)
		f.renderer.EXPECT().DeadStock(gomock.Any()).Return(nil, errors.New("sheet name too long"))

		_, err := f.service.Export(context.Background(), domain.ReportDeadStock)
		assert.ErrorContains(t, err, "failed to render dead-stock workbook")
	})
}

func TestReportService_Generate(t *testing.T) {
	t.Run("uploads_and_presigns", func(t *testing.T) {
		f := newReportFixture(t, true)
		f.analytics.EXPECT().ABCSummary(gomock.Any()).Return(&analysis.ABCSummary{}, nil)
		f.renderer.EXPECT().ABC(gomock.Any()).Return([]byte("workbook"), nil)

		var uploadedKey string
		f.storage.EXPECT().
			Upload(gomock.Any(), gomock.Any(), gomock.Any(), services.XLSXContentType).
			DoAndReturn(func(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
				uploadedKey = key
				body, err := io.ReadAll(data)
				require.NoError(t, err)
				assert.Equal(t, "workbook", string(body))
				return "s3://swifttrack-reports/" + key, nil
			})
		f.storage.EXPECT().
			GetPresignedURL(gomock.Any(), gomock.Any(), time.Hour).
			Return("https://example.invalid/signed", nil)

		report, err := f.service.Generate(context.Background(), domain.ReportABC)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(uploadedKey, "reports/abc/2025-06-15-"), uploadedKey)
		assert.True(t, strings.HasSuffix(uploadedKey, ".xlsx"))
		assert.Equal(t, uploadedKey, report.Key)
		assert.Equal(t, "https://example.invalid/signed", report.DownloadURL)
		assert.Equal(t, 8, report.Size)
		assert.Equal(t, helpers.FixedNow, report.GeneratedAt)
	})

	t.Run("presign_failure_still_returns_report", func(t *testing.T) {
		f := newReportFixture(t, true)
		f.analytics.EXPECT().StockAging(gomock.Any()).Return(nil, nil)
		f.renderer.EXPECT().StockAging(gomock.Any()).Return([]byte("x"), nil)
		f.storage.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("file:///tmp/x", nil)
		f.storage.EXPECT().GetPresignedURL(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("no credentials"))

		report, err := f.service.Generate(context.Background(), domain.ReportStockAging)
		require.NoError(t, err)
		assert.Empty(t, report.DownloadURL)
		assert.Equal(t, "file:///tmp/x", report.Location)
	})

	t.Run("upload_failure", func(t *testing.T) {
		f := newReportFixture(t, true)
		f.analytics.EXPECT().StockAging(gomock.Any()).Return(nil, nil)
		f.renderer.EXPECT().StockAging(gomock.Any()).Return([]byte("x"), nil)
		f.storage.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("access denied"))

		_, err := f.service.Generate(context.Background(), domain.ReportStockAging)
		assert.ErrorContains(t, err, "access denied")
	})

	t.Run("storage_disabled", func(t *testing.T) {
		f := newReportFixture(t, false)

		_, err := f.service.Generate(context.Background(), domain.ReportABC)
		assert.ErrorIs(t, err, services.ErrStorageDisabled)
	})
}

func TestReportService_Cleanup(t *testing.T) {
	retention := 30 * 24 * time.Hour

	t.Run("deletes_expired_reports", func(t *testing.T) {
		f := newReportFixture(t, true)
		keys := []string{"reports/abc/2025-04-01-a.xlsx", "reports/inventory/2025-04-02-b.xlsx"}
		f.storage.EXPECT().ListOlderThan(gomock.Any(), "reports/", helpers.Days(-30)).Return(keys, nil)
		f.storage.EXPECT().DeleteMultiple(gomock.Any(), keys).Return(nil)

		n, err := f.service.Cleanup(context.Background(), retention)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("nothing_to_delete", func(t *testing.T) {
		f := newReportFixture(t, true)
		f.storage.EXPECT().ListOlderThan(gomock.Any(), "reports/", gomock.Any()).Return(nil, nil)

		n, err := f.service.Cleanup(context.Background(), retention)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("delete_failure", func(t *testing.T) {
		f := newReportFixture(t, true)
		f.storage.EXPECT().ListOlderThan(gomock.Any(), "reports/", gomock.Any()).Return([]string{"reports/a.xlsx"}, nil)
		f.storage.EXPECT().DeleteMultiple(gomock.Any(), gomock.Any()).Return(errors.New("throttled"))

		_, err := f.service.Cleanup(context.Background(), retention)
		assert.ErrorContains(t, err, "throttled")
	})
}
