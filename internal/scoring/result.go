package scoring

import (
	"encoding/json"
	"fmt"
)

// RiskLevel is the three-valued severity of an analyzed message.
type RiskLevel string

const (
	RiskSafe    RiskLevel = "safe"
	RiskWarning RiskLevel = "warning"
	RiskScam    RiskLevel = "scam"
)

// ParseRiskLevel reconstructs a RiskLevel from its wire representation.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch RiskLevel(s) {
	case RiskSafe, RiskWarning, RiskScam:
		return RiskLevel(s), nil
	default:
		return "", fmt.Errorf("invalid risk level: %q", s)
	}
}

// Valid reports whether r is one of the known levels.
func (r RiskLevel) Valid() bool {
	_, err := ParseRiskLevel(string(r))
	return err == nil
}

// Severity orders levels: safe=0, warning=1, scam=2. Unknown levels return -1.
func (r RiskLevel) Severity() int {
	switch r {
	case RiskSafe:
		return 0
	case RiskWarning:
		return 1
	case RiskScam:
		return 2
	default:
		return -1
	}
}

func (r RiskLevel) String() string {
	return string(r)
}

// Result is the canonical verdict returned for every analyzed message.
type Result struct {
	IsScam      bool      `json:"is_scam"`
	Confidence  int       `json:"confidence"`
	RiskLevel   RiskLevel `json:"risk_level"`
	Explanation string    `json:"explanation"`
	Indicators  []string  `json:"indicators"`
}

// MarshalJSON always emits indicators as an array.
func (r Result) MarshalJSON() ([]byte, error) {
	type Alias Result
	if r.Indicators == nil {
		r.Indicators = []string{}
	}
	return json.Marshal(Alias(r))
}
