package timeseries

import (
	"database/sql"
	"fmt"
	"math"

	_ "modernc.org/sqlite"
)

// ExclusionRule bounds the valid flow range for one named site. Readings
// outside [MinFlow, MaxFlow] are removed during flow series cleaning. These
// encode per-site data-quality policy (known sensor faults, rating-curve
// limits), not a general algorithm, and are expected to grow over time.
type ExclusionRule struct {
	Site    string
	MinFlow float64
	MaxFlow float64
}

// Allows reports whether a flow value is inside the rule's valid range.
func (r ExclusionRule) Allows(flow float64) bool {
	return flow >= r.MinFlow && flow <= r.MaxFlow
}

// DefaultExclusionRules is the in-code fallback used when the catalog
// database carries no exclusions table. Site names match the measurement
// archive exactly.
var DefaultExclusionRules = []ExclusionRule{
	{Site: "Blackwater at Mill Ford", MinFlow: 0, MaxFlow: 12000},
	{Site: "Deepdale at Harper Crossing", MinFlow: 5, MaxFlow: math.MaxFloat64},
}

// LoadExclusionRules reads per-site exclusion rules from the exclusions
// table of the catalog SQLite database. A missing table is not an error;
// the caller falls back to DefaultExclusionRules.
func LoadExclusionRules(dbPath string) ([]ExclusionRule, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	defer db.Close()

	var exists int
	err = db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='exclusions'`).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect catalog database: %w", err)
	}
	if exists == 0 {
		return nil, nil
	}

	rows, err := db.Query(`SELECT site, min_flow, max_flow FROM exclusions ORDER BY site`)
	if err != nil {
		return nil, fmt.Errorf("failed to query exclusions: %w", err)
	}
	defer rows.Close()

	var rules []ExclusionRule
	for rows.Next() {
		var r ExclusionRule
		var minFlow, maxFlow sql.NullFloat64
		if err := rows.Scan(&r.Site, &minFlow, &maxFlow); err != nil {
			return nil, fmt.Errorf("failed to scan exclusion row: %w", err)
		}
		r.MinFlow = minFlow.Float64
		if maxFlow.Valid {
			r.MaxFlow = maxFlow.Float64
		} else {
			r.MaxFlow = math.MaxFloat64
		}
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading exclusion rows: %w", err)
	}

	return rules, nil
}
