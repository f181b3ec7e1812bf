package estimator

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/hydrograph/sedload/internal/timeseries"
)

// ErrNoStatistics is returned when a site's summary statistics cannot be
// computed (no records, or no finite load values). The site's statistics row
// is omitted; this is a non-fatal skip.
var ErrNoStatistics = errors.New("summary statistics undefined")

// Summarize computes the five-number summary of instantaneous load for one
// site plus the final cumulative total.
func Summarize(site string, loads []float64, total float64) (*timeseries.SiteStatistics, error) {
	finite := make([]float64, 0, len(loads))
	for _, v := range loads {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return nil, ErrNoStatistics
	}

	sort.Float64s(finite)

	return &timeseries.SiteStatistics{
		Site:   site,
		Min:    finite[0],
		Q1:     stat.Quantile(0.25, stat.Empirical, finite, nil),
		Median: stat.Quantile(0.5, stat.Empirical, finite, nil),
		Mean:   stat.Mean(finite, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, finite, nil),
		Max:    finite[len(finite)-1],
		Total:  total,
	}, nil
}
