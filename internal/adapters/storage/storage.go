// Package storage holds the report file stores: S3 for deployed environments
// and the local filesystem for development.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ammerola/swifttrack-be/internal/core/ports"
	"github.com/ammerola/swifttrack-be/internal/pkg/config"
)

// Storage drivers
const (
	DriverS3    = "s3"
	DriverLocal = "local"
)

// New builds the file store selected by cfg.Storage.Driver
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.FileStorage, error) {
	switch cfg.Storage.Driver {
	case DriverS3:
		s3Store, err := NewS3Storage(ctx, &S3Config{
			Region:          cfg.AWS.Region,
			Bucket:          cfg.AWS.S3Bucket,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Endpoint:        cfg.AWS.S3Endpoint,
			UsePathStyle:    cfg.AWS.UsePathStyle,
		}, logger)
		if err != nil {
			return nil, err
		}
		return s3Store, nil
	case DriverLocal, "":
		local, err := NewLocalStorage(cfg.Storage.LocalDir, cfg.Storage.LocalBaseURL, logger)
		if err != nil {
			return nil, err
		}
		return local, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
