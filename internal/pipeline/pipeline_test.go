package pipeline

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/najamsyed/ESPA/internal/logger"
	"github.com/najamsyed/ESPA/internal/plot"
)

// captureRenderer records chart descriptions instead of drawing them.
type captureRenderer struct {
	descs []*plot.Description
}

func (c *captureRenderer) Render(desc *plot.Description, outDir string) (string, error) {
	c.descs = append(c.descs, desc)
	return filepath.Join(outDir, desc.OutputName+".png"), nil
}

func quietLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})
}

func writeStats(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

const statContent = "MINIMUM=100\nMAXIMUM=9000\nMEAN=4000\nSTDDEV=800\n"

func TestProcessAllEmptyWorkDir(t *testing.T) {
	renderer := &captureRenderer{}
	pipe := New(t.TempDir(), renderer, plot.DefaultConfig(), quietLogger())

	result, err := pipe.ProcessAll()
	if err != nil {
		t.Fatalf("ProcessAll returned error: %v", err)
	}
	if len(result.BandTypes) != 0 {
		t.Errorf("got %d band types, want 0", len(result.BandTypes))
	}
	if len(renderer.descs) != 0 {
		t.Errorf("rendered %d charts, want 0", len(renderer.descs))
	}
}

func TestProcessAllSingleSensor(t *testing.T) {
	dir := t.TempDir()
	writeStats(t, dir, "LT50290302015060PAC01_sr_band1.stats", statContent)
	writeStats(t, dir, "LT50290302016060PAC01_sr_band1.stats", statContent)
	writeStats(t, dir, "LT50290302016200PAC01_sr_band1.stats", statContent)

	renderer := &captureRenderer{}
	pipe := New(dir, renderer, plot.DefaultConfig(), quietLogger())

	result, err := pipe.ProcessAll()
	if err != nil {
		t.Fatalf("ProcessAll returned error: %v", err)
	}

	if len(result.BandTypes) != 1 {
		t.Fatalf("got %d band types, want 1", len(result.BandTypes))
	}
	bt := result.BandTypes[0]
	if bt.BandType != "SR Blue" {
		t.Errorf("band type = %q, want \"SR Blue\"", bt.BandType)
	}
	if bt.SceneCount != 3 {
		t.Errorf("scene count = %d, want 3", bt.SceneCount)
	}
	if len(bt.Tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(bt.Tables))
	}
	if len(bt.Plots) != 5 {
		t.Errorf("got %d plots, want 5", len(bt.Plots))
	}

	// The merged table is written sorted by date.
	data, err := os.ReadFile(bt.Tables[0])
	if err != nil {
		t.Fatalf("failed to read merged table: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("table has %d lines, want 4:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[1], "2015-03-01,") || !strings.HasPrefix(lines[3], "2016-07-18,") {
		t.Errorf("rows out of order:\n%s", data)
	}

	// Single-sensor groups are labeled by the sensor.
	if !strings.Contains(renderer.descs[0].Title, "Landsat 5 SR Blue") {
		t.Errorf("title = %q", renderer.descs[0].Title)
	}

	// The extent spans past a year, so the X axis is padded by two 5-day
	// increments on each end.
	earliest := time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, desc := range renderer.descs {
		if !desc.XMin.Equal(earliest.AddDate(0, 0, -10)) {
			t.Errorf("chart %q XMin = %v, want %v",
				desc.Title, desc.XMin, earliest.AddDate(0, 0, -10))
		}
	}

	// Consumed inputs are removed from the working directory.
	leftover, err := filepath.Glob(filepath.Join(dir, "*.stats"))
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(leftover) != 0 {
		t.Errorf("stat files left behind: %v", leftover)
	}
}

func TestProcessAllMultiSensor(t *testing.T) {
	dir := t.TempDir()
	writeStats(t, dir, "LT50290302016060PAC01_sr_band1.stats", statContent)
	writeStats(t, dir, "MOD09A1.A2016033.h09v05.005.2016041105233_sur_refl_b03.stats", statContent)

	renderer := &captureRenderer{}
	pipe := New(dir, renderer, plot.DefaultConfig(), quietLogger())

	result, err := pipe.ProcessAll()
	if err != nil {
		t.Fatalf("ProcessAll returned error: %v", err)
	}

	if len(result.BandTypes) != 1 {
		t.Fatalf("got %d band types, want 1", len(result.BandTypes))
	}
	bt := result.BandTypes[0]

	// Each contributing sensor still gets its own merged table.
	if len(bt.Tables) != 2 {
		t.Errorf("got %d tables, want 2", len(bt.Tables))
	}

	for _, desc := range renderer.descs {
		if !strings.HasPrefix(desc.Title, "Multi Sensor SR Blue") {
			t.Errorf("title = %q, want Multi Sensor prefix", desc.Title)
		}
	}
}

func TestProcessAllUnreadableStats(t *testing.T) {
	dir := t.TempDir()
	// Matches the SR Blue glob but lacks the required keys.
	writeStats(t, dir, "LT50290302016060PAC01_sr_band1.stats", "MINIMUM=1\n")

	pipe := New(dir, &captureRenderer{}, plot.DefaultConfig(), quietLogger())
	if _, err := pipe.ProcessAll(); err == nil {
		t.Error("incomplete stat file should have failed the run")
	}
}

func TestResultArtifacts(t *testing.T) {
	result := &Result{BandTypes: []BandTypeResult{
		{Tables: []string{"a.csv"}, Plots: []string{"a.png", "b.png"}},
		{Tables: []string{"c.csv"}},
	}}
	if got := len(result.Artifacts()); got != 4 {
		t.Errorf("got %d artifacts, want 4", got)
	}
}
