package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/denisok6893-rgb/warehouse-grading/internal/config"
	"github.com/denisok6893-rgb/warehouse-grading/internal/domain"
	"github.com/denisok6893-rgb/warehouse-grading/internal/evaluation"
	"github.com/denisok6893-rgb/warehouse-grading/internal/logging"
	"github.com/denisok6893-rgb/warehouse-grading/internal/storage"
)

const oneTemplate = `
templates:
  - name: Cold Storage
    parameters:
      - name: Storage Capacity
        ai_weight: 60
        score: 7
      - name: Power Backup
        ai_weight: 40
        score: 9
`

func TestNew_BuiltinMemory(t *testing.T) {
	cfg := &config.Config{
		HTTP:  config.HTTPConfig{Address: ":0"},
		Store: config.StoreConfig{Driver: config.StoreMemory},
		Log:   logging.LogConfig{Level: "error", Format: "json"},
	}
	a, err := New(cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, 4, a.Catalog.Len())
	assert.IsType(t, &storage.MemoryStore{}, a.Store)
	assert.NotNil(t, a.Server.Routes())
}

func TestNewWithLogger_CatalogFileAndSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(oneTemplate), 0o600))

	core, logs := observer.New(zapcore.InfoLevel)
	cfg := &config.Config{
		Catalog: config.CatalogConfig{Path: path},
		Store:   config.StoreConfig{Driver: config.StoreSQLite, Name: "app-" + uuid.NewString()},
	}
	a, err := NewWithLogger(cfg, logging.NewLoggerFromCore(core))
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, []string{"Cold Storage"}, a.Catalog.Names())
	assert.IsType(t, &storage.SQLiteStore{}, a.Store)

	p, err := a.Service.Save(context.Background(), evaluation.Request{
		BusinessType: "Cold Storage",
		Spec:         demoSpec(),
	})
	require.NoError(t, err)
	assert.Equal(t, 78, p.Analysis.Grade)
	assert.Len(t, logs.FilterMessage("property saved").All(), 1)
	assert.Len(t, logs.FilterMessage("service ready").All(), 1)
}

func TestNewWithLogger_BadCatalogFallsBack(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	cfg := &config.Config{
		Catalog: config.CatalogConfig{Path: filepath.Join(t.TempDir(), "missing.yaml")},
		Store:   config.StoreConfig{Driver: config.StoreMemory},
	}
	a, err := NewWithLogger(cfg, logging.NewLoggerFromCore(core))
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, 4, a.Catalog.Len())
	warned := logs.FilterMessage("use built-in templates").All()
	require.Len(t, warned, 1)
	assert.Equal(t, zapcore.WarnLevel, warned[0].Level)
}

func demoSpec() domain.PropertySpecification {
	return domain.PropertySpecification{
		Name:    "Chakan Cold Store",
		Address: "Industrial Zone, Pune, Maharashtra 411019",
	}
}
