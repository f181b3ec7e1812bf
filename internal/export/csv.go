// Package export writes the run outputs as delimited text: the per-site
// statistics table and the per-site load and concentration time series.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/hydrograph/sedload/internal/timeseries"
)

// Numeric columns are rounded to 2 decimal places in the statistics table.
const statPrecision = 2

var statisticsHeader = []string{"site", "min", "q1", "median", "mean", "q3", "max", "total_tonnes"}

// WriteStatistics writes the per-site summary table, one row per
// successfully processed site.
func WriteStatistics(w io.Writer, stats []timeseries.SiteStatistics) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(statisticsHeader); err != nil {
		return fmt.Errorf("failed to write statistics header: %w", err)
	}
	for _, s := range stats {
		row := []string{
			s.Site,
			formatStat(s.Min),
			formatStat(s.Q1),
			formatStat(s.Median),
			formatStat(s.Mean),
			formatStat(s.Q3),
			formatStat(s.Max),
			formatStat(s.Total),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write statistics row for %s: %w", s.Site, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadStatistics parses a statistics table previously written by
// WriteStatistics.
func ReadStatistics(r io.Reader) ([]timeseries.SiteStatistics, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(statisticsHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse statistics table: %w", err)
	}

	var stats []timeseries.SiteStatistics
	for i, rec := range records {
		if i == 0 {
			continue // header
		}
		fields := make([]float64, len(rec)-1)
		for j := 1; j < len(rec); j++ {
			fields[j-1], err = strconv.ParseFloat(rec[j], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad value %q: %w", i+1, rec[j], err)
			}
		}
		stats = append(stats, timeseries.SiteStatistics{
			Site:   rec[0],
			Min:    fields[0],
			Q1:     fields[1],
			Median: fields[2],
			Mean:   fields[3],
			Q3:     fields[4],
			Max:    fields[5],
			Total:  fields[6],
		})
	}

	return stats, nil
}

// WriteLoadSeries writes the per-site load time series for downstream
// consumption or charting.
func WriteLoadSeries(w io.Writer, records []timeseries.LoadRecord) error {
	cw := csv.NewWriter(w)

	header := []string{"timestamp", "site", "flow", "predicted_concentration", "cumulative_load_tonnes"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write load series header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.Time.UTC().Format(time.RFC3339),
			rec.Site,
			strconv.FormatFloat(rec.Flow, 'f', -1, 64),
			strconv.FormatFloat(rec.Concentration, 'f', -1, 64),
			strconv.FormatFloat(rec.CumulativeLoad, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write load series row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteConcentrationSeries writes the measured-concentration overlay series.
func WriteConcentrationSeries(w io.Writer, records []timeseries.ConcentrationRecord) error {
	cw := csv.NewWriter(w)

	header := []string{"timestamp", "site", "kind", "concentration", "flow"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write concentration header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.Time.UTC().Format(time.RFC3339),
			rec.Site,
			rec.Kind,
			strconv.FormatFloat(rec.Concentration, 'f', -1, 64),
			strconv.FormatFloat(rec.Flow, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write concentration row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'f', statPrecision, 64)
}
