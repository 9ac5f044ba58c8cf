package service

import (
	"context"
	"edu_testing_backend/internal/config"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageUpload(t *testing.T) {
	dir := t.TempDir()
	svc := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: "local", LocalPath: dir}})

	url, err := svc.Upload(context.Background(), "exports/tests/t1/a.csv", strings.NewReader("a,b\n"), 4, "text/csv")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/exports/tests/t1/a.csv", url)

	data, err := os.ReadFile(filepath.Join(dir, "exports", "tests", "t1", "a.csv"))
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))
}

func TestLocalStorageStaysInsideRoot(t *testing.T) {
	dir := t.TempDir()
	p := &LocalStorageProvider{Config: &config.StorageConfig{LocalPath: dir}}

	_, err := p.Upload(context.Background(), "../../escape.csv", strings.NewReader("x"), 1, "text/csv")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "escape.csv"))
	assert.NoError(t, err)
}

func TestStorageServiceSelectsMinio(t *testing.T) {
	svc := NewStorageService(&config.Config{Storage: config.StorageConfig{
		Type:          "minio",
		MinioEndpoint: "127.0.0.1:9000",
		MinioBucket:   "edu-testing",
	}})
	_, ok := svc.Provider.(*MinioStorageProvider)
	assert.True(t, ok)
	assert.Equal(t, "/edu-testing/x.csv", svc.GetURL("x.csv"))
}

func TestStorageServiceUnknownTypeUsesLocal(t *testing.T) {
	svc := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: "ftp", LocalPath: t.TempDir()}})
	_, ok := svc.Provider.(*LocalStorageProvider)
	assert.True(t, ok)
}
