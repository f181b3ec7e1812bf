// Package concentration builds the directly-measured concentration series
// used to sanity-check regression predictions.
package concentration

import (
	"sort"
	"strconv"
	"strings"

	"github.com/hydrograph/sedload/internal/timeseries"
)

type joinKey struct {
	unix int64
	site string
}

// shortCodes relabels archive measurement kinds for downstream filtering.
var shortCodes = map[string]string{
	timeseries.KindSSC: timeseries.CodeSSC,
	timeseries.KindSS:  timeseries.CodeSS,
}

// Build filters raw samples to the concentration kinds, strips laboratory
// qualifier markers from the values, rounds timestamps to the nearest grid
// point, and inner-joins against the flow series on (timestamp, site).
//
// Concentration samples are spot checks, so each is matched to the nearest
// grid point; flow records are floored into continuous bins. Samples with
// no flow counterpart are dropped silently; sparse spot sampling makes
// misses routine, not errors.
func Build(samples []timeseries.Sample, flows map[string][]timeseries.FlowRecord) []timeseries.ConcentrationRecord {
	flowIndex := make(map[joinKey]float64)
	for site, recs := range flows {
		for _, fr := range recs {
			flowIndex[joinKey{unix: fr.Time.Unix(), site: site}] = fr.Flow
		}
	}

	var out []timeseries.ConcentrationRecord
	for _, s := range samples {
		code, ok := shortCodes[s.Kind]
		if !ok {
			continue
		}
		value, err := parseQualified(s.Value)
		if err != nil {
			continue
		}
		rounded := s.Time.Round(timeseries.GridInterval)
		flow, ok := flowIndex[joinKey{unix: rounded.Unix(), site: s.Site}]
		if !ok {
			continue
		}
		out = append(out, timeseries.ConcentrationRecord{
			Time:          rounded.UTC(),
			Site:          s.Site,
			Concentration: value,
			Kind:          code,
			Flow:          flow,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Site != out[j].Site {
			return out[i].Site < out[j].Site
		}
		return out[i].Time.Before(out[j].Time)
	})

	return out
}

// parseQualified parses a laboratory result value, tolerating censoring
// qualifiers like "<5" or ">200" by stripping the marker and keeping the
// bound.
func parseQualified(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimLeft(trimmed, "<>~")
	return strconv.ParseFloat(strings.TrimSpace(trimmed), 64)
}
