package concentration

import (
	"testing"
	"time"

	"github.com/hydrograph/sedload/internal/timeseries"
)

var t0 = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func gridFlows(site string, flows ...float64) map[string][]timeseries.FlowRecord {
	recs := make([]timeseries.FlowRecord, len(flows))
	for i, f := range flows {
		recs[i] = timeseries.FlowRecord{
			Time: t0.Add(time.Duration(i) * 15 * time.Minute),
			Site: site,
			Flow: f,
		}
	}
	return map[string][]timeseries.FlowRecord{site: recs}
}

func TestBuildJoinsOnRoundedTimestamp(t *testing.T) {
	flows := gridFlows("A", 100, 200, 300)
	samples := []timeseries.Sample{
		// 6 minutes past the grid point: rounds down to t0.
		{Time: t0.Add(6 * time.Minute), Site: "A", Kind: timeseries.KindSSC, Value: "45.5"},
		// 9 minutes past: rounds up to t0+15m.
		{Time: t0.Add(9 * time.Minute), Site: "A", Kind: timeseries.KindSS, Value: "12"},
	}

	out := Build(samples, flows)
	if len(out) != 2 {
		t.Fatalf("got %d records, want 2", len(out))
	}

	if !out[0].Time.Equal(t0) || out[0].Kind != timeseries.CodeSSC || out[0].Concentration != 45.5 {
		t.Errorf("first record = %+v, want SSC 45.5 at t0", out[0])
	}
	if out[0].Flow != 100 {
		t.Errorf("first record flow = %v, want 100 from the joined flow series", out[0].Flow)
	}
	if !out[1].Time.Equal(t0.Add(15*time.Minute)) || out[1].Kind != timeseries.CodeSS {
		t.Errorf("second record = %+v, want SS at t0+15m", out[1])
	}
}

func TestBuildStripsQualifiers(t *testing.T) {
	flows := gridFlows("A", 100)
	tests := []struct {
		value string
		want  float64
	}{
		{"<5", 5},
		{">200", 200},
		{"~18.5", 18.5},
		{" 7.25 ", 7.25},
	}

	for _, tt := range tests {
		samples := []timeseries.Sample{
			{Time: t0, Site: "A", Kind: timeseries.KindSSC, Value: tt.value},
		}
		out := Build(samples, flows)
		if len(out) != 1 {
			t.Fatalf("value %q: got %d records, want 1", tt.value, len(out))
		}
		if out[0].Concentration != tt.want {
			t.Errorf("value %q parsed to %v, want %v", tt.value, out[0].Concentration, tt.want)
		}
	}
}

func TestBuildDropsUnmatchedAndForeign(t *testing.T) {
	flows := gridFlows("A", 100)
	samples := []timeseries.Sample{
		// No flow record at this grid point: silent drop, not an error.
		{Time: t0.Add(3 * time.Hour), Site: "A", Kind: timeseries.KindSSC, Value: "9"},
		// Different site entirely.
		{Time: t0, Site: "B", Kind: timeseries.KindSSC, Value: "9"},
		// Flow samples are not concentration records.
		{Time: t0, Site: "A", Kind: timeseries.KindFlow, Value: "100"},
		// Unparseable even after qualifier stripping.
		{Time: t0, Site: "A", Kind: timeseries.KindSS, Value: "pending"},
	}

	if out := Build(samples, flows); len(out) != 0 {
		t.Errorf("got %d records, want 0: %+v", len(out), out)
	}
}
