package database

import "time"

// SampleRow maps one row of the measurement archive's samples hypertable.
// Value is stored as text because laboratory results can carry censoring
// qualifiers alongside numeric readings.
type SampleRow struct {
	Bucket   time.Time `gorm:"column:bucket"`
	SiteName string    `gorm:"column:site_name"`
	Kind     string    `gorm:"column:kind"`
	Value    string    `gorm:"column:value"`
}

// TableName implements the GORM table-name convention.
func (SampleRow) TableName() string {
	return "samples"
}
