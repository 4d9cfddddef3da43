package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "verdicts.db"), true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("", true)
	assert.Error(t, err)
}

func TestSummarizeEmpty(t *testing.T) {
	summary, err := openTestDB(t).Summarize(time.Time{})
	require.NoError(t, err)
	assert.Zero(t, summary.Total)
	assert.Empty(t, summary.ByRiskLevel)
	assert.Zero(t, summary.AvgConfidence)
	assert.Nil(t, summary.Since)
}

func TestSaveAndSummarize(t *testing.T) {
	db := openTestDB(t)

	rows := []Verdict{
		{Source: "rules", RiskLevel: "scam", IsScam: true, Confidence: 95, IndicatorCount: 3, FallbackReason: "transport", Degraded: true},
		{Source: "rules", RiskLevel: "safe", Confidence: 20, FallbackReason: "no_provider"},
		{Source: "provider", RiskLevel: "warning", Confidence: 60, IndicatorCount: 1},
		{Source: "provider", RiskLevel: "scam", IsScam: true, Confidence: 90, IndicatorCount: 4},
	}
	for i := range rows {
		require.NoError(t, db.SaveVerdict(&rows[i]))
		assert.NotZero(t, rows[i].ID)
	}

	summary, err := db.Summarize(time.Time{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), summary.Total)
	assert.Equal(t, map[string]int64{"scam": 2, "safe": 1, "warning": 1}, summary.ByRiskLevel)
	assert.Equal(t, map[string]int64{"rules": 2, "provider": 2}, summary.BySource)
	assert.Equal(t, int64(1), summary.Fallbacks)
	assert.InDelta(t, 66.25, summary.AvgConfidence, 0.001)

	future, err := db.Summarize(time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, future.Total)
	assert.NotNil(t, future.Since)
}

func TestSaveVerdictRejectsNil(t *testing.T) {
	assert.Error(t, openTestDB(t).SaveVerdict(nil))

	var db *Database
	assert.Error(t, db.SaveVerdict(&Verdict{}))
	assert.NoError(t, db.Close())
}
