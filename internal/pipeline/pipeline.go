// Package pipeline drives one plotting run over the local working
// directory: for each catalog band type it discovers the matching stat
// files, writes the per-sensor merged tables, renders the five trend charts,
// and removes the consumed inputs.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/najamsyed/ESPA/internal/aggregate"
	"github.com/najamsyed/ESPA/internal/bandtype"
	"github.com/najamsyed/ESPA/internal/logger"
	"github.com/najamsyed/ESPA/internal/plot"
	"github.com/najamsyed/ESPA/internal/render"
	"github.com/najamsyed/ESPA/internal/stats"
)

// BandTypeResult records what one band type produced.
type BandTypeResult struct {
	BandType   string
	Sensors    []string
	SceneCount int
	Tables     []string
	Plots      []string
}

// Result records what a whole run produced.
type Result struct {
	Started   time.Time
	Finished  time.Time
	BandTypes []BandTypeResult
}

// Artifacts returns every table and plot path produced by the run.
func (r *Result) Artifacts() []string {
	var paths []string
	for _, bt := range r.BandTypes {
		paths = append(paths, bt.Tables...)
		paths = append(paths, bt.Plots...)
	}
	return paths
}

// Pipeline processes the band-type catalog against one working directory.
type Pipeline struct {
	workDir  string
	renderer render.ChartRenderer
	plotCfg  plot.Config
	log      *logger.Logger
}

// New creates a pipeline. The plot configuration is fixed for the lifetime
// of the run.
func New(workDir string, renderer render.ChartRenderer, plotCfg plot.Config, log *logger.Logger) *Pipeline {
	return &Pipeline{
		workDir:  workDir,
		renderer: renderer,
		plotCfg:  plotCfg,
		log:      log.WithComponent("pipeline"),
	}
}

// ProcessAll walks the band-type catalog strictly sequentially. The first
// failure aborts the remaining band types.
func (p *Pipeline) ProcessAll() (*Result, error) {
	result := &Result{Started: time.Now()}

	for _, group := range bandtype.Catalog() {
		btResult, err := p.processBandType(group)
		if err != nil {
			return nil, fmt.Errorf("band type %s: %w", group.BandType, err)
		}
		if btResult != nil {
			result.BandTypes = append(result.BandTypes, *btResult)
		}
	}

	result.Finished = time.Now()
	return result, nil
}

// processBandType handles one catalog group. A group none of whose globs
// match anything is skipped without error. Returns nil when skipped.
func (p *Pipeline) processBandType(group bandtype.Group) (*BandTypeResult, error) {
	btResult := &BandTypeResult{BandType: group.BandType}

	var pool []string
	singleSensorName := ""
	for _, sg := range group.Globs {
		matches, err := filepath.Glob(filepath.Join(p.workDir, sg.Pattern))
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %w", sg.Pattern, err)
		}
		if len(matches) == 0 {
			continue
		}

		// Each contributing sensor always gets its own merged table, even
		// when the band type ends up plotted as multi-sensor.
		table, err := aggregate.WriteSensorStats(sg.SensorName+" "+group.BandType, matches, p.workDir)
		if err != nil {
			return nil, err
		}

		btResult.Sensors = append(btResult.Sensors, sg.SensorName)
		btResult.Tables = append(btResult.Tables, table)
		singleSensorName = sg.SensorName
		pool = append(pool, matches...)
	}

	if len(btResult.Sensors) == 0 {
		p.log.Debug("No statistics found", logger.Fields{"band_type": group.BandType})
		return nil, nil
	}
	btResult.SceneCount = len(pool)

	label := singleSensorName + " " + group.BandType
	if len(btResult.Sensors) > 1 {
		label = "Multi Sensor " + group.BandType
	}

	p.log.Info("Plotting band type", logger.Fields{
		"band_type": group.BandType,
		"label":     label,
		"scenes":    len(pool),
	})

	records := make(map[string]stats.Record, len(pool))
	for _, statFile := range pool {
		rec, err := stats.ReadFile(statFile)
		if err != nil {
			return nil, err
		}
		records[statFile] = rec
	}

	for _, subject := range plot.Subjects {
		desc, err := plot.Build(label, subject, group.BandType, records, p.plotCfg)
		if err != nil {
			return nil, err
		}
		rendered, err := p.renderer.Render(desc, p.workDir)
		if err != nil {
			return nil, err
		}
		btResult.Plots = append(btResult.Plots, rendered)
	}

	// The inputs are consumed; later band types must not rediscover them.
	for _, statFile := range pool {
		if err := os.Remove(statFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove consumed input %s: %w", statFile, err)
		}
	}

	return btResult, nil
}
