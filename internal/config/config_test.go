package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/asmgraph/internal/chart"
	"github.com/daryltucker/asmgraph/internal/condition"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
input_dir: /data/runs
condition: SM=n,WL=h:24
charts: [energy, spin]
log_format: json
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/runs", cfg.InputDir)
	assert.Equal(t, "SM=n,WL=h:24", cfg.Condition)
	assert.Equal(t, []string{"energy", "spin"}, cfg.Charts)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, ".", cfg.OutputDir)
}

func TestLoadDefaultFileName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "asmgraph.yml"), []byte("output_dir: out\n"), 0644))
	chdir(t, dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.OutputDir)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input_dir: /from/file\ncharts: [hit]\n"), 0644))

	t.Setenv("ASMGRAPH_INPUT_DIR", "/from/env")
	t.Setenv("ASMGRAPH_CHARTS", "energy,overflow")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.InputDir)
	assert.Equal(t, []string{"energy", "overflow"}, cfg.Charts)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("charts: {oops"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestConditionSet(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Condition = "SM=n"

	set, err := cfg.ConditionSet()
	require.NoError(t, err)
	assert.Equal(t, condition.Set{"storage_manager": "n"}, set)

	cfg.Condition = "SM"
	_, err = cfg.ConditionSet()
	assert.True(t, errors.Is(err, condition.ErrMalformedCondition))
}

func TestChartKinds(t *testing.T) {
	cfg := DefaultConfig()

	kinds, err := cfg.ChartKinds()
	require.NoError(t, err)
	assert.Equal(t, chart.Kinds, kinds)

	cfg.Charts = []string{"pie"}
	_, err = cfg.ChartKinds()
	assert.True(t, errors.Is(err, chart.ErrUnknownKind))
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
