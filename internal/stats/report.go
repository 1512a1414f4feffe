// Package stats contains statistics calculations and reporting over result history.
package stats

import (
	"context"
	"io"

	"github.com/verte-zerg/speedtype/internal/model"
)

const defaultRecentRows = 10

// Report contains precomputed data for stats rendering.
type Report struct {
	Results []model.Result
	Window  int
}

// Lister reads stored results in chronological order.
type Lister interface {
	ListResults(ctx context.Context, cfg model.StatsConfig) ([]model.Result, error)
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, l Lister, cfg model.StatsConfig) (Report, error) {
	results, err := l.ListResults(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(results) > cfg.Last {
		results = results[len(results)-cfg.Last:]
	}
	return Report{Results: results, Window: cfg.Window}, nil
}

// Render writes the summary, recent table and trend lines. width bounds the
// sparkline length; 0 means unbounded.
func (r Report) Render(w io.Writer, width int) error {
	if err := RenderSummary(w, r.Results); err != nil {
		return err
	}
	if err := RenderRecent(w, r.Results, defaultRecentRows); err != nil {
		return err
	}
	return RenderTrend(w, r.Results, r.Window, width)
}
