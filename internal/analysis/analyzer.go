// Package analysis decides, per message, whether the model provider or the rule-based
// scorer produces the verdict, and degrades to the rules whenever the provider cannot be
// trusted.
package analysis

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"burlometro/internal/ai"
	"burlometro/internal/scoring"
	"burlometro/internal/util"
)

// ErrEmptyMessage is the only error Analyze returns; callers surface it as a client error.
var ErrEmptyMessage = errors.New("message is required")

// Source identifies which path produced a verdict.
type Source string

const (
	SourceProvider Source = "provider"
	SourceRules    Source = "rules"
)

// Fallback reasons recorded when the provider path is discarded.
const (
	ReasonNoProvider   = "no_provider"
	ReasonTransport    = "transport"
	ReasonParse        = "parse"
	ReasonProviderMisc = "provider_error"
)

// Request is a single message submitted for analysis.
type Request struct {
	Message   string
	RequestID string
}

// Report carries the verdict together with how it was produced.
type Report struct {
	Result         scoring.Result
	Source         Source
	FallbackReason string
	DurationMs     int64
	URLHosts       []string
}

// Analyzer is the entry point for message classification. It is safe for concurrent use.
type Analyzer struct {
	scorer   *scoring.Scorer
	provider ai.Classifier
}

// New builds an analyzer. provider may be nil, in which case every message goes through the
// rule-based scorer; scorer nil selects the default calibration.
func New(scorer *scoring.Scorer, provider ai.Classifier) *Analyzer {
	if scorer == nil {
		scorer = scoring.NewDefaultScorer()
	}
	if provider != nil && !provider.Enabled() {
		provider = nil
	}
	return &Analyzer{scorer: scorer, provider: provider}
}

// ProviderEnabled reports whether a provider is wired in.
func (a *Analyzer) ProviderEnabled() bool {
	return a.provider != nil
}

// Analyze classifies the message. The returned error is always ErrEmptyMessage or nil.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (scoring.Result, error) {
	report, err := a.AnalyzeDetailed(ctx, req)
	if err != nil {
		return scoring.Result{}, err
	}
	return report.Result, nil
}

// AnalyzeDetailed is Analyze plus the provenance of the verdict.
func (a *Analyzer) AnalyzeDetailed(ctx context.Context, req Request) (Report, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return Report{}, ErrEmptyMessage
	}
	timer := util.StartTimer()

	log := logrus.WithFields(logrus.Fields{
		"request_id":     req.RequestID,
		"message_length": len(message),
	})

	if a.provider == nil {
		report := a.evaluateRules(message, ReasonNoProvider)
		report.DurationMs = timer.ElapsedMs()
		log.WithField("risk_level", report.Result.RiskLevel).Debug("no provider configured, used rule-based analysis")
		return report, nil
	}

	result, err := a.provider.Classify(ctx, message)
	if err != nil {
		reason := classifyFailure(err)
		report := a.evaluateRules(message, reason)
		report.DurationMs = timer.ElapsedMs()
		log.WithError(err).WithFields(logrus.Fields{
			"reason":     reason,
			"risk_level": report.Result.RiskLevel,
		}).Warn("provider analysis failed, falling back to rule-based analysis")
		return report, nil
	}

	log.WithFields(logrus.Fields{
		"risk_level": result.RiskLevel,
		"confidence": result.Confidence,
	}).Debug("provider analysis succeeded")
	return Report{
		Result:     result,
		Source:     SourceProvider,
		DurationMs: timer.ElapsedMs(),
	}, nil
}

func (a *Analyzer) evaluateRules(message, reason string) Report {
	sig := a.scorer.Score(message)
	return Report{
		Result:         a.scorer.Verdict(sig),
		Source:         SourceRules,
		FallbackReason: reason,
		URLHosts:       sig.URLHosts,
	}
}

func classifyFailure(err error) string {
	switch {
	case errors.Is(err, ai.ErrTransport), errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ReasonTransport
	case errors.Is(err, ai.ErrParse):
		return ReasonParse
	default:
		return ReasonProviderMisc
	}
}
