package store

import "time"

// Verdict is an anonymous record of one analysis. It never holds the analyzed text.
type Verdict struct {
	ID             uint   `gorm:"primaryKey"`
	RequestID      string `gorm:"size:64"`
	Source         string `gorm:"size:16;index"`
	RiskLevel      string `gorm:"size:16;index"`
	IsScam         bool
	Confidence     int
	IndicatorCount int
	FallbackReason string `gorm:"size:32"`
	Degraded       bool   `gorm:"index"`
	ProcessingMs   int64
	CreatedAt      time.Time `gorm:"index"`
}

// LevelCount is one row of a grouped tally.
type LevelCount struct {
	Label string
	Total int64
}

// Summary aggregates stored verdicts.
type Summary struct {
	Total         int64            `json:"total"`
	ByRiskLevel   map[string]int64 `json:"by_risk_level"`
	BySource      map[string]int64 `json:"by_source"`
	Fallbacks     int64            `json:"provider_fallbacks"`
	AvgConfidence float64          `json:"avg_confidence"`
	Since         *time.Time       `json:"since,omitempty"`
}
