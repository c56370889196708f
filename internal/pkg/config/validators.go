// internal/pkg/config/validators.go
package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Validator checks one aspect of a loaded configuration
type Validator interface {
	Validate(cfg *Config) error
}

// BasicValidator performs basic configuration validation
type BasicValidator struct{}

// Validate performs basic validation
func (v *BasicValidator) Validate(cfg *Config) error {
	if err := validateRequiredFields(cfg); err != nil {
		return err
	}

	if cfg.Database.MaxConnections < cfg.Database.MinConnections {
		return fmt.Errorf("%w: database max_connections must be >= min_connections", ErrInvalidValue)
	}
	if cfg.Redis.PoolSize <= 0 {
		return fmt.Errorf("%w: redis pool_size must be positive", ErrInvalidValue)
	}
	if cfg.Security.RateLimitRequests <= 0 {
		return fmt.Errorf("%w: rate_limit_requests must be positive", ErrInvalidValue)
	}
	if cfg.App.LogSampleRate < 0 || cfg.App.LogSampleRate > 1 {
		return fmt.Errorf("%w: log sample rate must be within [0, 1]", ErrInvalidValue)
	}

	switch cfg.Storage.Driver {
	case "local":
		if cfg.Storage.LocalDir == "" {
			return fmt.Errorf("%w: Storage.LocalDir", ErrMissingRequired)
		}
	case "s3":
		if cfg.AWS.S3Bucket == "" {
			return fmt.Errorf("%w: AWS.S3Bucket", ErrMissingRequired)
		}
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidValue, cfg.Storage.Driver)
	}

	return nil
}

// InventoryValidator checks the stock thresholds and schedules
type InventoryValidator struct{}

// Validate checks threshold ranges and that every cron spec parses
func (v *InventoryValidator) Validate(cfg *Config) error {
	inv := cfg.Inventory
	if inv.CriticalStockThreshold < 0 || inv.LowStockThreshold < 0 {
		return fmt.Errorf("%w: stock thresholds cannot be negative", ErrInvalidValue)
	}
	if inv.CriticalStockThreshold > inv.LowStockThreshold {
		return fmt.Errorf("%w: critical stock threshold must be <= low stock threshold", ErrInvalidValue)
	}
	if inv.NearExpiryDays < 0 || inv.DeadStockDays < 0 {
		return fmt.Errorf("%w: day windows cannot be negative", ErrInvalidValue)
	}
	if inv.CarryingCostRate < 0 || inv.CarryingCostRate > 1 {
		return fmt.Errorf("%w: carrying cost rate must be between 0 and 1", ErrInvalidValue)
	}

	if !cfg.Scheduler.Enabled {
		return nil
	}
	if _, err := time.LoadLocation(cfg.Scheduler.Timezone); err != nil {
		return fmt.Errorf("%w: scheduler timezone: %v", ErrInvalidValue, err)
	}
	specs := map[string]string{
		"alert scan": cfg.Scheduler.AlertScanSpec,
		"reports":    cfg.Scheduler.ReportsSpec,
		"cleanup":    cfg.Scheduler.CleanupSpec,
		"warmup":     cfg.Scheduler.WarmupSpec,
	}
	for name, spec := range specs {
		if spec == "" {
			continue
		}
		if _, err := cron.ParseStandard(spec); err != nil {
			return fmt.Errorf("%w: %s schedule %q: %v", ErrInvalidValue, name, spec, err)
		}
	}
	return nil
}

// ProductionValidator performs strict validation for production environments
type ProductionValidator struct{}

// Validate performs production-specific validation
func (v *ProductionValidator) Validate(cfg *Config) error {
	if strings.Contains(cfg.Database.Password, "MISSING_") || cfg.Database.Password == "" {
		return fmt.Errorf("%w: database password", ErrMissingRequired)
	}
	if cfg.Database.Password == "swifttrack_dev" {
		return fmt.Errorf("%w: default database password cannot be used in production", ErrInvalidValue)
	}
	if cfg.Database.SSLMode == "disable" {
		return fmt.Errorf("%w: database SSL must be enabled in production", ErrInvalidValue)
	}
	if !cfg.Security.SecureHeaders {
		return fmt.Errorf("%w: secure headers must be enabled in production", ErrInvalidValue)
	}
	if len(cfg.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("%w: allowed origins must be configured in production", ErrMissingRequired)
	}
	if cfg.Storage.Driver != "s3" {
		return fmt.Errorf("%w: reports must be stored in S3 in production", ErrInvalidValue)
	}

	if cfg.Server.TLSEnabled {
		if cfg.Server.TLSCertFile == "" || cfg.Server.TLSKeyFile == "" {
			return fmt.Errorf("%w: TLS cert and key files must be provided when TLS is enabled", ErrMissingRequired)
		}
	}

	return nil
}

// SecurityValidator validates security-related configuration
type SecurityValidator struct{}

// Validate performs security validation
func (v *SecurityValidator) Validate(cfg *Config) error {
	if cfg.Security.RateLimitDuration <= 0 {
		return fmt.Errorf("%w: rate limit duration must be positive", ErrInvalidValue)
	}
	if cfg.Security.RequestIDHeader == "" {
		return fmt.Errorf("%w: Security.RequestIDHeader", ErrMissingRequired)
	}

	for _, origin := range cfg.Security.AllowedOrigins {
		if origin == "*" && cfg.IsProduction() {
			return fmt.Errorf("%w: wildcard origin (*) not allowed in production", ErrInvalidValue)
		}
	}

	return nil
}

// validateRequiredFields uses reflection to check required struct tags
func validateRequiredFields(cfg interface{}) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	return validateStruct(v, "")
}

func validateStruct(v reflect.Value, prefix string) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)
		fieldName := fieldType.Name

		if prefix != "" {
			fieldName = prefix + "." + fieldName
		}

		if required := fieldType.Tag.Get("required"); required == "true" {
			if isZeroValue(field) {
				return fmt.Errorf("%w: %s", ErrMissingRequired, fieldName)
			}
		}

		if field.Kind() == reflect.Struct && fieldType.Type != reflect.TypeOf(time.Time{}) {
			if err := validateStruct(field, fieldName); err != nil {
				return err
			}
		}
	}

	return nil
}

func isZeroValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == "" || strings.HasPrefix(v.String(), "MISSING_")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.IsNil() || v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
