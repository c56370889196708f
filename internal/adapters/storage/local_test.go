package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/swifttrack-be/internal/adapters/storage"
	"github.com/ammerola/swifttrack-be/test/helpers"
)

func newLocal(t *testing.T, baseURL string) *storage.LocalStorage {
	t.Helper()
	s, err := storage.NewLocalStorage(filepath.Join(t.TempDir(), "files"), baseURL, helpers.TestLogger())
	require.NoError(t, err)
	return s
}

func TestLocalStorage_UploadAndPresign(t *testing.T) {
	s := newLocal(t, "http://localhost:8080/files/")
	ctx := context.Background()

	location, err := s.Upload(ctx, "reports/abc/2025-06-15-x.xlsx", strings.NewReader("workbook"), "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(location, "file://"))

	data, err := os.ReadFile(filepath.Join(s.Root(), "reports", "abc", "2025-06-15-x.xlsx"))
	require.NoError(t, err)
	assert.Equal(t, "workbook", string(data))

	url, err := s.GetPresignedURL(ctx, "reports/abc/2025-06-15-x.xlsx", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/reports/abc/2025-06-15-x.xlsx", url)

	_, err = s.GetPresignedURL(ctx, "reports/abc/missing.xlsx", time.Hour)
	assert.Error(t, err)
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	s := newLocal(t, "")

	for _, key := range []string{"", "../secrets", "reports/../../etc/passwd", "/"} {
		_, err := s.Upload(context.Background(), key, strings.NewReader("x"), "")
		assert.ErrorIs(t, err, storage.ErrInvalidKey, key)
	}
}

func TestLocalStorage_ListOlderThanAndDelete(t *testing.T) {
	s := newLocal(t, "")
	ctx := context.Background()
	now := time.Now()

	files := map[string]time.Time{
		"reports/abc/old.xlsx":       now.Add(-40 * 24 * time.Hour),
		"reports/inventory/old.xlsx": now.Add(-31 * 24 * time.Hour),
		"reports/abc/new.xlsx":       now.Add(-2 * time.Hour),
		"exports/old.xlsx":           now.Add(-90 * 24 * time.Hour),
	}
	for key, mod := range files {
		_, err := s.Upload(ctx, key, strings.NewReader(key), "")
		require.NoError(t, err)
		p := filepath.Join(s.Root(), filepath.FromSlash(key))
		require.NoError(t, os.Chtimes(p, mod, mod))
	}

	keys, err := s.ListOlderThan(ctx, "reports/", now.Add(-30*24*time.Hour))
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"reports/abc/old.xlsx", "reports/inventory/old.xlsx"}, keys)

	require.NoError(t, s.DeleteMultiple(ctx, append(keys, "reports/abc/already-gone.xlsx")))

	_, err = os.Stat(filepath.Join(s.Root(), "reports", "abc", "old.xlsx"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(s.Root(), "reports", "abc", "new.xlsx"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(s.Root(), "exports", "old.xlsx"))
	assert.NoError(t, err)
}

func TestLocalStorage_ListMissingPrefix(t *testing.T) {
	s := newLocal(t, "")

	keys, err := s.ListOlderThan(context.Background(), "reports/", time.Now())
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestNew_SelectsDriver(t *testing.T) {
	cfg := helpers.LoadTestConfig()
	cfg.Storage.LocalDir = t.TempDir()

	store, err := storage.New(context.Background(), cfg, helpers.TestLogger())
	require.NoError(t, err)
	assert.IsType(t, &storage.LocalStorage{}, store)

	cfg.Storage.Driver = "ftp"
	_, err = storage.New(context.Background(), cfg, helpers.TestLogger())
	assert.ErrorContains(t, err, "unknown storage driver")
}
