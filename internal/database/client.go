// Package database provides the client for the TimescaleDB measurement
// archive that raw per-site samples are fetched from.
package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hydrograph/sedload/internal/log"
	"github.com/hydrograph/sedload/internal/timeseries"
	"go.uber.org/zap"
)

// Client holds the connection to the measurement archive
type Client struct {
	DB     *gorm.DB
	logger *zap.SugaredLogger
}

// NewClient creates a new measurement archive client
func NewClient(logger *zap.SugaredLogger) *Client {
	return &Client{
		logger: logger,
	}
}

// Connect connects to the measurement archive database
func (c *Client) Connect(connectionString string) error {
	// Create a logger for gorm
	dbLogger := logger.New(
		zap.NewStdLog(log.GetZapLogger()),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	log.Info("connecting to measurement archive...")
	db, err := gorm.Open(postgres.Open(connectionString), &gorm.Config{Logger: dbLogger})
	if err != nil {
		log.Warnf("warning: unable to create a measurement archive connection: %v", err)
		return err
	}
	log.Info("measurement archive connection successful")

	c.DB = db
	return nil
}

// FetchSamples retrieves all samples for the given sites and measurement
// kinds inside the [start, end) window, ordered by timestamp. Sampling rates
// vary per series; alignment onto the reporting grid happens downstream.
func (c *Client) FetchSamples(ctx context.Context, sites, kinds []string, start, end time.Time) ([]timeseries.Sample, error) {
	var rows []SampleRow

	q := c.DB.WithContext(ctx).
		Where("kind IN ? AND bucket >= ? AND bucket < ?", kinds, start, end).
		Order("bucket")
	if len(sites) > 0 {
		q = q.Where("site_name IN ?", sites)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error querying measurement archive: %w", err)
	}

	samples := make([]timeseries.Sample, len(rows))
	for i, row := range rows {
		samples[i] = timeseries.Sample{
			Time:  row.Bucket,
			Site:  row.SiteName,
			Kind:  row.Kind,
			Value: row.Value,
		}
	}

	c.logger.Debugf("fetched %d samples between %s and %s", len(samples), start, end)
	return samples, nil
}
