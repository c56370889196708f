package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xeipuuv/gojsonschema"
)

// DateLayout is the calendar date format carried in QR labels
const DateLayout = "2006-01-02"

const qrPayloadSchema = `{
	"type": "object",
	"required": ["id", "name"],
	"properties": {
		"id":           {"type": "string", "minLength": 1},
		"name":         {"type": "string", "minLength": 1},
		"expiryDate":   {"type": ["string", "null"]},
		"unitCost":     {"type": ["number", "null"], "minimum": 0},
		"unitPrice":    {"type": ["number", "null"], "minimum": 0},
		"supplierId":   {"type": ["string", "null"]},
		"purchaseDate": {"type": ["string", "null"]}
	}
}`

var qrSchema = mustCompileSchema(qrPayloadSchema)

func mustCompileSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("invalid QR payload schema: %v", err))
	}
	return s
}

// QRPayload is the typed content of a scanned item label
type QRPayload struct {
	ID           string
	Name         string
	ExpiryDate   *time.Time
	UnitCost     *decimal.Decimal
	UnitPrice    *decimal.Decimal
	SupplierID   *string
	PurchaseDate *time.Time
}

// qrWire is the JSON shape printed into QR codes
type qrWire struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	ExpiryDate   *string  `json:"expiryDate,omitempty"`
	UnitCost     *float64 `json:"unitCost,omitempty"`
	UnitPrice    *float64 `json:"unitPrice,omitempty"`
	SupplierID   *string  `json:"supplierId,omitempty"`
	PurchaseDate *string  `json:"purchaseDate,omitempty"`
}

// QRDecodeError explains why a scanned payload was rejected
type QRDecodeError struct {
	Reason     string
	Violations []string
}

func (e *QRDecodeError) Error() string {
	if len(e.Violations) == 0 {
		return "invalid QR payload: " + e.Reason
	}
	return fmt.Sprintf("invalid QR payload: %s (%s)", e.Reason, strings.Join(e.Violations, "; "))
}

// QRDecodeResult holds either a decoded payload or the reason it was rejected.
// Exactly one of Payload and Err is set.
type QRDecodeResult struct {
	Payload *QRPayload
	Err     *QRDecodeError
}

// OK reports whether the payload decoded successfully
func (r QRDecodeResult) OK() bool {
	return r.Err == nil && r.Payload != nil
}

func rejected(reason string, violations ...string) QRDecodeResult {
	return QRDecodeResult{Err: &QRDecodeError{Reason: reason, Violations: violations}}
}

// DecodeQRPayload validates untrusted scanner output against the label schema
// and converts it into a typed payload.
func DecodeQRPayload(raw []byte) QRDecodeResult {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return rejected("empty payload")
	}

	result, err := qrSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return rejected("payload is not valid JSON")
	}
	if !result.Valid() {
		violations := make([]string, 0, len(result.Errors()))
		for _, re := range result.Errors() {
			violations = append(violations, re.String())
		}
		return rejected("payload does not match the label schema", violations...)
	}

	var wire qrWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return rejected("payload is not valid JSON")
	}

	payload := &QRPayload{
		ID:   strings.TrimSpace(wire.ID),
		Name: strings.TrimSpace(wire.Name),
	}
	if payload.ID == "" || payload.Name == "" {
		return rejected("id and name must not be blank")
	}

	if payload.ExpiryDate, err = parseLabelDate(wire.ExpiryDate); err != nil {
		return rejected("expiryDate is not a date", err.Error())
	}
	if payload.PurchaseDate, err = parseLabelDate(wire.PurchaseDate); err != nil {
		return rejected("purchaseDate is not a date", err.Error())
	}
	if wire.UnitCost != nil {
		d := decimal.NewFromFloat(*wire.UnitCost)
		payload.UnitCost = &d
	}
	if wire.UnitPrice != nil {
		d := decimal.NewFromFloat(*wire.UnitPrice)
		payload.UnitPrice = &d
	}
	if wire.SupplierID != nil && strings.TrimSpace(*wire.SupplierID) != "" {
		s := strings.TrimSpace(*wire.SupplierID)
		payload.SupplierID = &s
	}

	return QRDecodeResult{Payload: payload}
}

// EncodeQRPayload renders the JSON text to print into a label
func EncodeQRPayload(p QRPayload) ([]byte, error) {
	wire := qrWire{
		ID:   strings.TrimSpace(p.ID),
		Name: strings.TrimSpace(p.Name),
	}
	if wire.ID == "" {
		return nil, &ValidationError{Field: "id", Message: "is required"}
	}
	if wire.Name == "" {
		return nil, &ValidationError{Field: "name", Message: "is required"}
	}
	if p.UnitCost != nil {
		if p.UnitCost.IsNegative() {
			return nil, &ValidationError{Field: "unit_cost", Message: "cannot be negative"}
		}
		f := p.UnitCost.InexactFloat64()
		wire.UnitCost = &f
	}
	if p.UnitPrice != nil {
		if p.UnitPrice.IsNegative() {
			return nil, &ValidationError{Field: "unit_price", Message: "cannot be negative"}
		}
		f := p.UnitPrice.InexactFloat64()
		wire.UnitPrice = &f
	}
	if p.ExpiryDate != nil {
		s := p.ExpiryDate.Format(DateLayout)
		wire.ExpiryDate = &s
	}
	if p.PurchaseDate != nil {
		s := p.PurchaseDate.Format(DateLayout)
		wire.PurchaseDate = &s
	}
	if p.SupplierID != nil && strings.TrimSpace(*p.SupplierID) != "" {
		s := strings.TrimSpace(*p.SupplierID)
		wire.SupplierID = &s
	}
	return json.Marshal(wire)
}

// ParseDate accepts a calendar date or an RFC3339 timestamp
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse %q as a date", s)
	}
	return t, nil
}

func parseLabelDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
