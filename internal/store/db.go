package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database wraps the GORM DB handle and exposes the verdict tally helpers.
type Database struct {
	gorm *gorm.DB
	mu   sync.Mutex
}

// Open initializes the SQLite-backed database at the provided path.
func Open(path string, silent bool) (*Database, error) {
	if path == "" {
		return nil, errors.New("db path required")
	}
	cfg := &gorm.Config{}
	if silent {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}
	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&Verdict{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
		logrus.WithError(err).Warn("enable WAL mode")
	}
	if err := db.Exec("PRAGMA synchronous=NORMAL").Error; err != nil {
		logrus.WithError(err).Warn("set synchronous pragma")
	}
	return &Database{gorm: db}, nil
}

// GORM exposes the raw gorm.DB handle.
func (d *Database) GORM() *gorm.DB {
	return d.gorm
}

// Close closes the underlying database connection.
func (d *Database) Close() error {
	if d == nil {
		return nil
	}
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveVerdict appends a verdict row.
func (d *Database) SaveVerdict(v *Verdict) error {
	if d == nil {
		return errors.New("database is nil")
	}
	if v == nil {
		return errors.New("verdict is nil")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Create(v).Error
}

// Summarize aggregates all verdicts created at or after since. A zero since covers
// everything.
func (d *Database) Summarize(since time.Time) (Summary, error) {
	if d == nil {
		return Summary{}, errors.New("database is nil")
	}
	summary := Summary{
		ByRiskLevel: map[string]int64{},
		BySource:    map[string]int64{},
	}

	base := func() *gorm.DB {
		q := d.gorm.Model(&Verdict{})
		if !since.IsZero() {
			q = q.Where("created_at >= ?", since)
		}
		return q
	}

	if err := base().Count(&summary.Total).Error; err != nil {
		return Summary{}, fmt.Errorf("count verdicts: %w", err)
	}

	var levels []LevelCount
	if err := base().Select("risk_level AS label, COUNT(*) AS total").Group("risk_level").Scan(&levels).Error; err != nil {
		return Summary{}, fmt.Errorf("group by risk level: %w", err)
	}
	for _, row := range levels {
		summary.ByRiskLevel[row.Label] = row.Total
	}

	var sources []LevelCount
	if err := base().Select("source AS label, COUNT(*) AS total").Group("source").Scan(&sources).Error; err != nil {
		return Summary{}, fmt.Errorf("group by source: %w", err)
	}
	for _, row := range sources {
		summary.BySource[row.Label] = row.Total
	}

	if err := base().Where("degraded = ?", true).Count(&summary.Fallbacks).Error; err != nil {
		return Summary{}, fmt.Errorf("count fallbacks: %w", err)
	}

	if summary.Total > 0 {
		var avg struct{ AvgConfidence float64 }
		if err := base().Select("AVG(confidence) AS avg_confidence").Scan(&avg).Error; err != nil {
			return Summary{}, fmt.Errorf("average confidence: %w", err)
		}
		summary.AvgConfidence = float64(int(avg.AvgConfidence*100+0.5)) / 100
	}
	if !since.IsZero() {
		s := since
		summary.Since = &s
	}
	return summary, nil
}
