package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/swifttrack-be/internal/core/domain"
)

func TestDecodeQRPayload(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantOK   bool
		validate func(*testing.T, domain.QRDecodeResult)
	}{
		{
			name:   "minimal_payload",
			raw:    `{"id":"QR12345","name":"Wireless Mouse"}`,
			wantOK: true,
			validate: func(t *testing.T, r domain.QRDecodeResult) {
				assert.Equal(t, "QR12345", r.Payload.ID)
				assert.Equal(t, "Wireless Mouse", r.Payload.Name)
				assert.Nil(t, r.Payload.UnitCost)
				assert.Nil(t, r.Payload.ExpiryDate)
				assert.Nil(t, r.Payload.SupplierID)
			},
		},
		{
			name: "full_payload",
			raw: `{"id":"QR11223","name":"Organic Milk","expiryDate":"2024-06-15",
				"unitCost":2,"unitPrice":3.99,"supplierId":"SUP003","purchaseDate":"2024-05-01T08:00:00Z"}`,
			wantOK: true,
			validate: func(t *testing.T, r domain.QRDecodeResult) {
				p := r.Payload
				require.NotNil(t, p.ExpiryDate)
				assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), *p.ExpiryDate)
				require.NotNil(t, p.PurchaseDate)
				assert.Equal(t, 2024, p.PurchaseDate.Year())
				require.NotNil(t, p.UnitCost)
				assert.True(t, decimal.NewFromInt(2).Equal(*p.UnitCost))
				require.NotNil(t, p.UnitPrice)
				assert.Equal(t, "3.99", p.UnitPrice.String())
				require.NotNil(t, p.SupplierID)
				assert.Equal(t, "SUP003", *p.SupplierID)
			},
		},
		{
			name:   "null_optionals_are_absent",
			raw:    `{"id":"QR1","name":"Tape","unitCost":null,"expiryDate":null,"supplierId":""}`,
			wantOK: true,
			validate: func(t *testing.T, r domain.QRDecodeResult) {
				assert.Nil(t, r.Payload.UnitCost)
				assert.Nil(t, r.Payload.ExpiryDate)
				assert.Nil(t, r.Payload.SupplierID)
			},
		},
		{
			name:   "extra_fields_are_ignored",
			raw:    `{"id":"QR1","name":"Tape","color":"blue"}`,
			wantOK: true,
		},
		{name: "empty_input", raw: "  "},
		{name: "not_json", raw: "QR12345"},
		{name: "json_array", raw: `[{"id":"QR1","name":"x"}]`},
		{name: "missing_name", raw: `{"id":"QR1"}`},
		{name: "numeric_id", raw: `{"id":123,"name":"Mouse"}`},
		{name: "blank_id", raw: `{"id":"  ","name":"Mouse"}`},
		{name: "string_unit_cost", raw: `{"id":"QR1","name":"Mouse","unitCost":"15"}`},
		{name: "negative_unit_price", raw: `{"id":"QR1","name":"Mouse","unitPrice":-1}`},
		{name: "numeric_expiry", raw: `{"id":"QR1","name":"Mouse","expiryDate":20240101}`},
		{name: "unparseable_purchase_date", raw: `{"id":"QR1","name":"Mouse","purchaseDate":"yesterday"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := domain.DecodeQRPayload([]byte(tt.raw))

			assert.Equal(t, tt.wantOK, result.OK())
			if tt.wantOK {
				require.NotNil(t, result.Payload)
				assert.Nil(t, result.Err)
			} else {
				assert.Nil(t, result.Payload)
				require.NotNil(t, result.Err)
				assert.NotEmpty(t, result.Err.Error())
			}
			if tt.validate != nil {
				tt.validate(t, result)
			}
		})
	}
}

func TestDecodeQRPayload_ReportsSchemaViolations(t *testing.T) {
	result := domain.DecodeQRPayload([]byte(`{"id":1}`))

	require.False(t, result.OK())
	assert.NotEmpty(t, result.Err.Violations)
	assert.Contains(t, result.Err.Error(), "schema")
}

func TestEncodeQRPayload(t *testing.T) {
	cost := decimal.RequireFromString("15.00")
	expiry := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	supplier := "SUP001"

	raw, err := domain.EncodeQRPayload(domain.QRPayload{
		ID:         " QR12345 ",
		Name:       "Wireless Mouse",
		UnitCost:   &cost,
		ExpiryDate: &expiry,
		SupplierID: &supplier,
	})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "QR12345", fields["id"])
	assert.Equal(t, 15.0, fields["unitCost"])
	assert.Equal(t, "2025-01-31", fields["expiryDate"])
	assert.NotContains(t, fields, "unitPrice")

	decoded := domain.DecodeQRPayload(raw)
	require.True(t, decoded.OK())
	assert.Equal(t, expiry, *decoded.Payload.ExpiryDate)
}

func TestEncodeQRPayload_RequiresIdentity(t *testing.T) {
	_, err := domain.EncodeQRPayload(domain.QRPayload{Name: "No ID"})
	assert.Error(t, err)

	_, err = domain.EncodeQRPayload(domain.QRPayload{ID: "QR1"})
	assert.Error(t, err)

	negative := decimal.NewFromInt(-1)
	_, err = domain.EncodeQRPayload(domain.QRPayload{ID: "QR1", Name: "x", UnitCost: &negative})
	assert.Error(t, err)
}
