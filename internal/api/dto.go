package api

import (
	"burlometro/internal/scoring"
	"burlometro/internal/store"
)

// AnalyzeRequest is the body accepted by POST /api/analyze.
type AnalyzeRequest struct {
	Message string `json:"message"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ConfigResponse describes how the running instance classifies messages.
type ConfigResponse struct {
	ProviderEnabled bool           `json:"provider_enabled"`
	Model           string         `json:"model,omitempty"`
	Scoring         ScoringDTO     `json:"scoring"`
	StatsEnabled    bool           `json:"stats_enabled"`
	Lexicon         LexiconSummary `json:"lexicon"`
}

// ScoringDTO mirrors scoring.Config with wire names.
type ScoringDTO struct {
	IndicatorWeight      int `json:"indicator_weight"`
	URLWeight            int `json:"url_weight"`
	LongNumberWeight     int `json:"long_number_weight"`
	OfficialEntityWeight int `json:"official_entity_weight"`
	ExclamationsWeight   int `json:"exclamations_weight"`
	CapitalWordsWeight   int `json:"capital_words_weight"`
	ScamThreshold        int `json:"scam_threshold"`
	WarningThreshold     int `json:"warning_threshold"`
	ConfidenceOffset     int `json:"confidence_offset"`
	ConfidenceFloor      int `json:"confidence_floor"`
	ConfidenceCeiling    int `json:"confidence_ceiling"`
}

// LexiconSummary reports the size of the static phrase lists.
type LexiconSummary struct {
	ScamIndicators   int `json:"scam_indicators"`
	OfficialEntities int `json:"official_entities"`
}

// StatsResponse wraps the verdict tallies.
type StatsResponse struct {
	Enabled bool           `json:"enabled"`
	Summary *store.Summary `json:"summary,omitempty"`
}

// ScoringFromConfig converts the calibration into its DTO.
func ScoringFromConfig(cfg scoring.Config) ScoringDTO {
	return ScoringDTO{
		IndicatorWeight:      cfg.Weights.Indicator,
		URLWeight:            cfg.Weights.URL,
		LongNumberWeight:     cfg.Weights.LongNumber,
		OfficialEntityWeight: cfg.Weights.OfficialEntity,
		ExclamationsWeight:   cfg.Weights.Exclamations,
		CapitalWordsWeight:   cfg.Weights.CapitalWords,
		ScamThreshold:        cfg.ScamThreshold,
		WarningThreshold:     cfg.WarningThreshold,
		ConfidenceOffset:     cfg.ConfidenceOffset,
		ConfidenceFloor:      cfg.ConfidenceFloor,
		ConfidenceCeiling:    cfg.ConfidenceCeiling,
	}
}
