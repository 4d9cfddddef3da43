package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"burlometro/internal/scoring"
)

const fence = "```"

var requiredFields = []string{"is_scam", "confidence", "risk_level", "explanation", "indicators"}

// Normalize validates raw provider text and converts it into a canonical result. Every
// failure wraps ErrParse.
func Normalize(raw string) (scoring.Result, error) {
	content := stripFences(raw)
	if content == "" {
		return scoring.Result{}, fmt.Errorf("%w: empty content", ErrParse)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		return scoring.Result{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	for _, name := range requiredFields {
		value, ok := fields[name]
		if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return scoring.Result{}, fmt.Errorf("%w: missing field %s", ErrParse, name)
		}
	}

	var result scoring.Result
	if err := json.Unmarshal(fields["is_scam"], &result.IsScam); err != nil {
		return scoring.Result{}, fmt.Errorf("%w: is_scam: %v", ErrParse, err)
	}

	var confidence float64
	if err := json.Unmarshal(fields["confidence"], &confidence); err != nil {
		return scoring.Result{}, fmt.Errorf("%w: confidence: %v", ErrParse, err)
	}
	result.Confidence = clampConfidence(confidence)

	var level string
	if err := json.Unmarshal(fields["risk_level"], &level); err != nil {
		return scoring.Result{}, fmt.Errorf("%w: risk_level: %v", ErrParse, err)
	}
	parsed, err := scoring.ParseRiskLevel(level)
	if err != nil {
		return scoring.Result{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	result.RiskLevel = parsed

	if err := json.Unmarshal(fields["explanation"], &result.Explanation); err != nil {
		return scoring.Result{}, fmt.Errorf("%w: explanation: %v", ErrParse, err)
	}
	result.Explanation = strings.TrimSpace(result.Explanation)
	if result.Explanation == "" {
		return scoring.Result{}, fmt.Errorf("%w: explanation is blank", ErrParse)
	}

	if err := json.Unmarshal(fields["indicators"], &result.Indicators); err != nil {
		return scoring.Result{}, fmt.Errorf("%w: indicators: %v", ErrParse, err)
	}
	if result.Indicators == nil {
		result.Indicators = []string{}
	}

	if result.IsScam != (result.RiskLevel == scoring.RiskScam) {
		return scoring.Result{}, fmt.Errorf("%w: is_scam=%t contradicts risk_level=%s", ErrParse, result.IsScam, result.RiskLevel)
	}
	return result, nil
}

// stripFences removes a leading ``` or ```lang line and a trailing ``` marker.
func stripFences(input string) string {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, fence) {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, fence)
	if idx := strings.IndexRune(trimmed, '\n'); idx >= 0 {
		trimmed = trimmed[idx+1:]
	} else {
		// single-line reply such as ```json{...}```
		trimmed = strings.TrimLeft(trimmed, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
	}
	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, fence)
	return strings.TrimSpace(trimmed)
}

func clampConfidence(value float64) int {
	if math.IsNaN(value) || value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return int(math.Round(value))
}
