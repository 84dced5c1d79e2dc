package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/numstat/internal/config"
	"github.com/verte-zerg/numstat/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSummaryCmd(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "data.csv", "2,4,4,4,5,5,7,9")
	out, err := execute(t, "--config", filepath.Join(dir, "missing.toml"), "summary", data)
	require.NoError(t, err)
	for _, want := range []string{"Summary", "Count: 8", "Trend:", "Mean", "5.0000", "Standard Deviation", "Histogram", "Frequency"} {
		assert.Contains(t, out, want)
	}
}

func TestSummaryCmdInsufficient(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "data.csv", "5")
	out, err := execute(t, "--config", filepath.Join(dir, "missing.toml"), "summary", data)
	assert.Error(t, err)
	assert.Contains(t, out, "Please enter at least two numbers.")
}

func TestSummaryCmdDecimalsFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.toml", "[view]\ndecimals = 1\n")
	data := writeFile(t, dir, "data.csv", "1,2")
	out, err := execute(t, "--config", cfg, "summary", data)
	require.NoError(t, err)
	assert.Contains(t, out, "1.5")
	assert.NotContains(t, out, "1.5000")
}

func TestPlotCmdText(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "data.csv", "1,3,2,5")
	out, err := execute(t, "--config", filepath.Join(dir, "missing.toml"),
		"plot", data, "--kind", "line", "--width", "60", "--height", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "Line Chart")
	assert.Contains(t, out, "Value: 0.00..10.00")
}

func TestPlotCmdConfigOverlay(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.toml", "[view]\nchart = \"histogram\"\nzoom = 200\n")
	data := writeFile(t, dir, "data.csv", "1,1,2")
	out, err := execute(t, "--config", cfg, "plot", data, "--width", "60", "--height", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "Histogram")
	assert.Contains(t, out, "Frequency: 0.00..2.00")

	out, err = execute(t, "--config", cfg, "plot", data, "--kind", "scatter", "--width", "60", "--height", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "Scatter Plot", "flag overrides config")
}

func TestPlotCmdImage(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "data.csv", "1,3,2,5")
	image := filepath.Join(dir, "chart.png")
	_, err := execute(t, "--config", filepath.Join(dir, "missing.toml"), "plot", data, "--out", image)
	require.NoError(t, err)
	info, err := os.Stat(image)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestPlotCmdRejectsBadFlags(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "data.csv", "1,2")
	missing := filepath.Join(dir, "missing.toml")
	_, err := execute(t, "--config", missing, "plot", data, "--kind", "pie")
	assert.Error(t, err, "unknown kind")
	_, err = execute(t, "--config", missing, "plot", data, "--zoom", "500")
	assert.Error(t, err, "out of range zoom")
	_, err = execute(t, "--config", missing, "plot", data, "--theme", "blue")
	assert.Error(t, err, "unknown theme")
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, writeDefaultConfig(path))
	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Nil(t, cfg.View.Zoom)
	assert.Nil(t, cfg.Axis.X.Name)
}

func TestValidateConfig(t *testing.T) {
	cfg := model.Config{
		Zoom:     100,
		Theme:    "dark",
		Decimals: 4,
		XAxis:    model.DefaultXAxis(),
		YAxis:    model.DefaultYAxis(),
	}
	require.NoError(t, validateConfig(cfg))
	cfg.YAxis.TickCount = 1
	assert.Error(t, validateConfig(cfg))
}
