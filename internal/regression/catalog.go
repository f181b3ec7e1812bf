package regression

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

// Catalog is the immutable per-run table of fitted curves, one per site.
type Catalog struct {
	curves map[string]Curve
}

// NewCatalog wraps an already-built site → curve table.
func NewCatalog(curves map[string]Curve) *Catalog {
	return &Catalog{curves: curves}
}

// Lookup returns the fitted curve for a site. A miss means the site has no
// published regression and must be skipped downstream.
func (c *Catalog) Lookup(site string) (Curve, bool) {
	curve, ok := c.curves[site]
	return curve, ok
}

// Sites returns the cataloged site names in sorted order.
func (c *Catalog) Sites() []string {
	sites := make([]string, 0, len(c.curves))
	for site := range c.curves {
		sites = append(sites, site)
	}
	sort.Strings(sites)
	return sites
}

// Len returns the number of cataloged sites.
func (c *Catalog) Len() int {
	return len(c.curves)
}

// Load reads a coefficient table from path, choosing the loader by file
// extension: .db/.sqlite/.sqlite3 → SQLite, anything else → CSV.
func Load(path string) (*Catalog, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(path)
	default:
		return LoadCSV(path)
	}
}

// LoadSQLite reads the regressions table from a SQLite catalog database.
// Expected schema: regressions(site TEXT, kind TEXT, coef_a REAL,
// coef_b REAL, coef_c REAL), one row per site.
func LoadSQLite(dbPath string) (*Catalog, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping catalog database: %w", err)
	}

	rows, err := db.Query(`SELECT site, kind, coef_a, coef_b, coef_c FROM regressions ORDER BY site`)
	if err != nil {
		return nil, fmt.Errorf("failed to query regressions: %w", err)
	}
	defer rows.Close()

	curves := make(map[string]Curve)
	for rows.Next() {
		var site, kind string
		var a, b, c sql.NullFloat64
		if err := rows.Scan(&site, &kind, &a, &b, &c); err != nil {
			return nil, fmt.Errorf("failed to scan regression row: %w", err)
		}
		curve, err := New(kind, a.Float64, b.Float64, c.Float64)
		if err != nil {
			return nil, fmt.Errorf("site %q: %w", site, err)
		}
		curves[site] = curve
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading regression rows: %w", err)
	}

	return NewCatalog(curves), nil
}

// LoadCSV reads a coefficient table with the columns
// site,kind,coef_a,coef_b,coef_c and a header row.
func LoadCSV(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV parses catalog rows from r. Split out from LoadCSV for testing.
func ReadCSV(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 5

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog CSV: %w", err)
	}
	if len(records) == 0 {
		return NewCatalog(nil), nil
	}

	curves := make(map[string]Curve)
	for i, rec := range records {
		if i == 0 && rec[0] == "site" {
			continue
		}
		coefs := make([]float64, 3)
		for j := 0; j < 3; j++ {
			field := strings.TrimSpace(rec[2+j])
			if field == "" {
				continue
			}
			coefs[j], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad coefficient %q: %w", i+1, field, err)
			}
		}
		curve, err := New(rec[1], coefs[0], coefs[1], coefs[2])
		if err != nil {
			return nil, fmt.Errorf("site %q: %w", rec[0], err)
		}
		curves[rec[0]] = curve
	}

	return NewCatalog(curves), nil
}
