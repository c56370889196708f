// Package mocks holds gomock doubles for the interfaces in internal/core/ports.
// Regenerate with `go generate ./test/mocks` after changing a port.
package mocks

//go:generate mockgen -source=../../internal/core/ports/inventory_repository.go -destination=inventory_repository_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/inventory_service.go -destination=inventory_service_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/analytics_service.go -destination=analytics_service_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/reports.go -destination=reports_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/cache.go -destination=cache_repository_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/database.go -destination=database_mock.go -package=mocks
