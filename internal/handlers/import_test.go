package handlers_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/swifttrack-be/internal/adapters/spreadsheet"
	"github.com/ammerola/swifttrack-be/internal/core/domain"
	"github.com/ammerola/swifttrack-be/internal/handlers"
	"github.com/ammerola/swifttrack-be/test/helpers"
	"github.com/ammerola/swifttrack-be/test/mocks"
)

func multipartUpload(t *testing.T, field, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/xlsx", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func exportedWorkbook(t *testing.T, items ...domain.InventoryItem) []byte {
	t.Helper()
	data, err := spreadsheet.NewRenderer("en-US", "USD").Inventory(items, helpers.FixedNow)
	require.NoError(t, err)
	return data
}

func newImportMux(t *testing.T, maxSize int64) (*mocks.MockInventoryService, http.Handler) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockInventoryService(ctrl)

	mux := http.NewServeMux()
	handlers.Routes{Import: handlers.NewImportHandler(svc, helpers.TestLogger(), maxSize)}.Register(mux)
	return svc, mux
}

func TestImportHandler_ImportXLSX(t *testing.T) {
	apples := *helpers.CreateTestInventoryItem()
	milk := *helpers.CreateTestInventoryItem(func(i *domain.InventoryItem) {
		i.ID = "QR67890"
		i.Name = "Whole Milk"
		i.Quantity = 8
	})

	t.Run("imports_rows", func(t *testing.T) {
		svc, mux := newImportMux(t, 0)
		svc.EXPECT().ImportItems(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, items []domain.InventoryItem) (int, error) {
				require.Len(t, items, 2)
				assert.Equal(t, "QR12345", items[0].ID)
				assert.Equal(t, "Whole Milk", items[1].Name)
				assert.Equal(t, 8, items[1].Quantity)
				return len(items), nil
			})

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, multipartUpload(t, "file", "stock.xlsx", exportedWorkbook(t, apples, milk)))

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"filename":"stock.xlsx","rows":2,"imported":2}`, w.Body.String())
	})

	tests := []struct {
		name           string
		field          string
		filename       string
		data           []byte
		maxSize        int64
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "missing_file_field",
			field:          "upload",
			filename:       "stock.xlsx",
			data:           []byte("x"),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "File is required",
		},
		{
			name:           "wrong_extension",
			field:          "file",
			filename:       "stock.csv",
			data:           []byte("id,name\n"),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Only .xlsx workbooks are supported",
		},
		{
			name:           "not_a_workbook",
			field:          "file",
			filename:       "stock.xlsx",
			data:           []byte("definitely not a zip archive"),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "file is not an xlsx workbook",
		},
		{
			name:           "too_large",
			field:          "file",
			filename:       "stock.xlsx",
			data:           bytes.Repeat([]byte{'x'}, 4096),
			maxSize:        1024,
			expectedStatus: http.StatusRequestEntityTooLarge,
			expectedError:  "File is too large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mux := newImportMux(t, tt.maxSize)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, multipartUpload(t, tt.field, tt.filename, tt.data))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, decodeError(t, w).Error, tt.expectedError)
		})
	}
}
