package scoring

import (
	"errors"
	"strings"

	"burlometro/internal/match"
)

// Weights are the additive contributions of each heuristic to the raw risk score.
type Weights struct {
	Indicator      int `mapstructure:"indicator"`
	URL            int `mapstructure:"url"`
	LongNumber     int `mapstructure:"long_number"`
	OfficialEntity int `mapstructure:"official_entity"`
	Exclamations   int `mapstructure:"exclamations"`
	CapitalWords   int `mapstructure:"capital_words"`
}

// Config holds the scorer calibration. Zero fields fall back to DefaultConfig.
type Config struct {
	Weights           Weights `mapstructure:"weights"`
	ScamThreshold     int     `mapstructure:"scam_threshold"`
	WarningThreshold  int     `mapstructure:"warning_threshold"`
	ConfidenceOffset  int     `mapstructure:"confidence_offset"`
	ConfidenceFloor   int     `mapstructure:"confidence_floor"`
	ConfidenceCeiling int     `mapstructure:"confidence_ceiling"`
}

// DefaultConfig returns the calibration the service has always shipped with.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Indicator:      15,
			URL:            25,
			LongNumber:     20,
			OfficialEntity: 30,
			Exclamations:   10,
			CapitalWords:   15,
		},
		ScamThreshold:     70,
		WarningThreshold:  35,
		ConfidenceOffset:  10,
		ConfidenceFloor:   20,
		ConfidenceCeiling: 95,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	fill := func(v *int, d int) {
		if *v == 0 {
			*v = d
		}
	}
	fill(&c.Weights.Indicator, def.Weights.Indicator)
	fill(&c.Weights.URL, def.Weights.URL)
	fill(&c.Weights.LongNumber, def.Weights.LongNumber)
	fill(&c.Weights.OfficialEntity, def.Weights.OfficialEntity)
	fill(&c.Weights.Exclamations, def.Weights.Exclamations)
	fill(&c.Weights.CapitalWords, def.Weights.CapitalWords)
	fill(&c.ScamThreshold, def.ScamThreshold)
	fill(&c.WarningThreshold, def.WarningThreshold)
	fill(&c.ConfidenceOffset, def.ConfidenceOffset)
	fill(&c.ConfidenceFloor, def.ConfidenceFloor)
	fill(&c.ConfidenceCeiling, def.ConfidenceCeiling)
	return c
}

// Validate ensures the calibration keeps the three levels and the confidence range sane.
func (c Config) Validate() error {
	w := c.Weights
	if w.Indicator < 0 || w.URL < 0 || w.LongNumber < 0 || w.OfficialEntity < 0 || w.Exclamations < 0 || w.CapitalWords < 0 {
		return errors.New("scoring weights must not be negative")
	}
	if c.WarningThreshold >= c.ScamThreshold {
		return errors.New("warning threshold must be below scam threshold")
	}
	if c.ConfidenceFloor < 0 || c.ConfidenceCeiling > 100 || c.ConfidenceFloor > c.ConfidenceCeiling {
		return errors.New("confidence bounds must satisfy 0 <= floor <= ceiling <= 100")
	}
	return nil
}

// Signals is the raw output of the rule-based pass over a message.
type Signals struct {
	RiskScore              int
	FoundIndicators        []string
	MentionsOfficialEntity bool
	HasURL                 bool
	URLHosts               []string
	HasLongNumbers         bool
	ManyExclamations       bool
	ManyCapitalWords       bool
}

// Scorer is the deterministic rule-based classifier. It holds no mutable state and is
// safe for concurrent use.
type Scorer struct {
	cfg Config
}

// NewScorer builds a scorer from the supplied calibration.
func NewScorer(cfg Config) (*Scorer, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{cfg: cfg}, nil
}

// NewDefaultScorer returns a scorer with the shipped calibration.
func NewDefaultScorer() *Scorer {
	return &Scorer{cfg: DefaultConfig()}
}

// Config exposes the effective calibration.
func (s *Scorer) Config() Config {
	return s.cfg
}

// Score runs indicator matching and the surface heuristics over the message.
func (s *Scorer) Score(message string) Signals {
	profile := match.NormalizeMessage(message)

	found := make([]string, 0, 4)
	for _, phrase := range scamIndicators {
		if strings.Contains(profile.Lower, phrase) {
			found = appendUnique(found, phrase)
		}
	}

	mentionsOfficial := false
	for _, entity := range officialEntities {
		if strings.Contains(profile.Lower, entity) {
			mentionsOfficial = true
			break
		}
	}

	sig := Signals{
		FoundIndicators:        found,
		MentionsOfficialEntity: mentionsOfficial,
		HasURL:                 profile.HasURL(),
		URLHosts:               profile.Hosts,
		HasLongNumbers:         profile.LongNumbers,
		ManyExclamations:       profile.Exclamations > 2,
		ManyCapitalWords:       profile.CapitalRuns > 1,
	}

	w := s.cfg.Weights
	score := len(found) * w.Indicator
	if sig.HasURL {
		score += w.URL
	}
	if sig.HasLongNumbers {
		score += w.LongNumber
	}
	if mentionsOfficial && len(found) > 0 {
		score += w.OfficialEntity
	}
	if sig.ManyExclamations {
		score += w.Exclamations
	}
	if sig.ManyCapitalWords {
		score += w.CapitalWords
	}
	sig.RiskScore = score
	return sig
}

// Classify maps a raw score to a risk level and a bounded confidence.
func (s *Scorer) Classify(riskScore int) (RiskLevel, int) {
	level := RiskSafe
	switch {
	case riskScore >= s.cfg.ScamThreshold:
		level = RiskScam
	case riskScore >= s.cfg.WarningThreshold:
		level = RiskWarning
	}
	confidence := clampInt(riskScore+s.cfg.ConfidenceOffset, s.cfg.ConfidenceFloor, s.cfg.ConfidenceCeiling)
	return level, confidence
}

// Evaluate produces the full verdict for a message without any external help.
func (s *Scorer) Evaluate(message string) Result {
	return s.Verdict(s.Score(message))
}

// Verdict turns previously computed signals into a canonical result.
func (s *Scorer) Verdict(sig Signals) Result {
	level, confidence := s.Classify(sig.RiskScore)
	return Result{
		IsScam:      level == RiskScam,
		Confidence:  confidence,
		RiskLevel:   level,
		Explanation: Explain(level, sig.FoundIndicators, sig.MentionsOfficialEntity),
		Indicators:  sig.FoundIndicators,
	}
}

func clampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func appendUnique(s []string, v string) []string {
	for _, existing := range s {
		if existing == v {
			return s
		}
	}
	return append(s, v)
}
