// Package estimator implements the per-site sediment load computation:
// regression-predicted concentration, time-weighted load accumulation, and
// summary statistics.
package estimator

import (
	"errors"
	"time"

	"github.com/hydrograph/sedload/internal/regression"
	"github.com/hydrograph/sedload/internal/timeseries"
)

// tonnesPerMgSecond converts concentration (mg/m³) × flow (m³/s) into
// tonnes/s.
const tonnesPerMgSecond = 1e-9

// maxElapsedSeconds caps the per-sample elapsed time at the grid interval.
// The last sample of a series, and any gap longer than one grid step, both
// contribute exactly one interval.
const maxElapsedSeconds = float64(timeseries.GridInterval) / float64(time.Second)

// ErrEmptySeries is returned when a site has no usable flow records after
// cleaning and domain filtering.
var ErrEmptySeries = errors.New("no usable flow records")

// Result holds a single site's estimator outputs.
type Result struct {
	Records    []timeseries.LoadRecord
	Statistics *timeseries.SiteStatistics

	// DomainDrops counts samples that produced no prediction because the
	// flow fell outside the regression's domain.
	DomainDrops int
}

// Process runs the load estimation pass for one site over its cleaned flow
// records, which must already be sorted by timestamp. It is pure: all state
// is local to the call, so sites may be processed in any order or in
// parallel by the caller.
//
// The cumulative load is a left Riemann sum taken in a single forward pass;
// each record depends on its predecessor's running total.
func Process(site string, flows []timeseries.FlowRecord, curve regression.Curve) (Result, error) {
	var res Result

	kept := make([]timeseries.FlowRecord, 0, len(flows))
	concs := make([]float64, 0, len(flows))
	for _, fr := range flows {
		conc, err := curve.Predict(fr.Flow)
		if err != nil {
			if errors.Is(err, regression.ErrOutOfDomain) {
				res.DomainDrops++
				continue
			}
			return Result{}, err
		}
		if conc < 0 {
			conc = 0 // physical lower bound
		}
		kept = append(kept, fr)
		concs = append(concs, conc)
	}

	if len(kept) == 0 {
		return res, ErrEmptySeries
	}

	records := make([]timeseries.LoadRecord, len(kept))
	loads := make([]float64, len(kept))
	var cumulative float64
	for i, fr := range kept {
		elapsed := maxElapsedSeconds
		if i+1 < len(kept) {
			delta := kept[i+1].Time.Sub(fr.Time).Seconds()
			if delta < elapsed {
				elapsed = delta
			}
		}

		load := concs[i] * fr.Flow * tonnesPerMgSecond
		cumulative += load * elapsed

		loads[i] = load
		records[i] = timeseries.LoadRecord{
			Time:           fr.Time,
			Site:           site,
			Flow:           fr.Flow,
			Concentration:  concs[i],
			ElapsedSeconds: elapsed,
			Load:           load,
			CumulativeLoad: cumulative,
		}
	}
	res.Records = records

	stats, err := Summarize(site, loads, cumulative)
	if err != nil {
		return res, err
	}
	res.Statistics = stats

	return res, nil
}
