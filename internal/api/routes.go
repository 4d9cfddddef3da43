package api

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"burlometro/internal/ai"
	"burlometro/internal/analysis"
	"burlometro/internal/scoring"
	"burlometro/internal/store"
)

// msgRequired is the client-facing error for a missing, blank or malformed message.
const msgRequired = "Mensagem é obrigatória"

// Config defines server dependencies.
type Config struct {
	AllowedOrigins []string
	StaticDir      string
	DBPath         string
	SilentDB       bool
	AIConfig       ai.Config
	DisableAI      bool
	Scoring        scoring.Config

	// Classifier replaces the client built from AIConfig when set.
	Classifier ai.Classifier
	// Registry receives the service metrics; a fresh registry is used when nil.
	Registry *prometheus.Registry
}

// Server wires HTTP handlers with the analyzer, persistence and metrics.
type Server struct {
	analyzer       *analysis.Analyzer
	scorer         *scoring.Scorer
	model          string
	db             *store.Database
	allowedOrigins []string
	staticDir      string
	metrics        *metrics
}

// NewServer constructs the API server. A missing provider credential is not an error:
// the server then answers every request with the rule-based scorer.
func NewServer(cfg Config) (*Server, error) {
	scorer, err := scoring.NewScorer(cfg.Scoring)
	if err != nil {
		return nil, err
	}

	classifier := cfg.Classifier
	model := ""
	if classifier == nil && !cfg.DisableAI {
		client, err := ai.NewClient(cfg.AIConfig)
		switch {
		case err == nil:
			classifier = client
			model = client.Model()
		case errors.Is(err, ai.ErrDisabled):
			logrus.Info("provider API key not configured, using rule-based analysis")
		default:
			return nil, err
		}
	}
	if cfg.DisableAI {
		classifier = nil
		logrus.Info("provider disabled by configuration, using rule-based analysis")
	}

	var db *store.Database
	if cfg.DBPath != "" {
		db, err = store.Open(cfg.DBPath, cfg.SilentDB)
		if err != nil {
			return nil, err
		}
	}

	staticDir := strings.TrimSpace(cfg.StaticDir)
	if staticDir != "" {
		if info, err := os.Stat(staticDir); err != nil || !info.IsDir() {
			logrus.WithField("dir", staticDir).Warn("static directory not found, not serving static files")
			staticDir = ""
		}
	}

	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Server{
		analyzer:       analysis.New(scorer, classifier),
		scorer:         scorer,
		model:          model,
		db:             db,
		allowedOrigins: cfg.AllowedOrigins,
		staticDir:      staticDir,
		metrics:        newMetrics(reg),
	}, nil
}

// Close releases the verdict store, if any.
func (s *Server) Close() error {
	return s.db.Close()
}

// Router builds the gin engine.
func (s *Server) Router() (*gin.Engine, error) {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowCredentials = true
	if len(s.allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.allowedOrigins
		corsCfg.AllowWildcard = true
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", requestIDHeader}
	corsCfg.ExposeHeaders = []string{requestIDHeader}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	if err := corsCfg.Validate(); err != nil {
		return nil, err
	}
	r.Use(cors.New(corsCfg))
	r.Use(requestID())

	r.GET("/metrics", gin.WrapH(s.metrics.handler))

	api := r.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/config", s.handleConfig)
		api.GET("/stats", s.handleStats)
		api.POST("/analyze", s.handleAnalyze)
	}

	if s.staticDir != "" {
		files := http.FileServer(http.Dir(s.staticDir))
		r.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				s.renderError(c, http.StatusNotFound, errors.New("not found"))
				return
			}
			files.ServeHTTP(c.Writer, c.Request)
		})
	}

	return r, nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "OK",
		Timestamp: time.Now().Format(time.RFC3339Nano),
	})
}

func (s *Server) handleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, ConfigResponse{
		ProviderEnabled: s.analyzer.ProviderEnabled(),
		Model:           s.model,
		Scoring:         ScoringFromConfig(s.scorer.Config()),
		StatsEnabled:    s.db != nil,
		Lexicon: LexiconSummary{
			ScamIndicators:   len(scoring.ScamIndicators()),
			OfficialEntities: len(scoring.OfficialEntities()),
		},
	})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.metrics.rejected.Inc()
		s.renderError(c, http.StatusBadRequest, errors.New(msgRequired))
		return
	}

	report, err := s.analyzer.AnalyzeDetailed(c.Request.Context(), analysis.Request{
		Message:   req.Message,
		RequestID: c.GetString(requestIDKey),
	})
	if errors.Is(err, analysis.ErrEmptyMessage) {
		s.metrics.rejected.Inc()
		s.renderError(c, http.StatusBadRequest, errors.New(msgRequired))
		return
	}
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}

	s.metrics.observe(report)
	s.recordVerdict(c.GetString(requestIDKey), report)
	c.JSON(http.StatusOK, report.Result)
}

func (s *Server) handleStats(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusOK, StatsResponse{Enabled: false})
		return
	}

	var since time.Time
	if raw := strings.TrimSpace(c.Query("since")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			s.renderError(c, http.StatusBadRequest, errors.New("since must be an RFC 3339 timestamp"))
			return
		}
		since = parsed
	}

	summary, err := s.db.Summarize(since)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, StatsResponse{Enabled: true, Summary: &summary})
}

// recordVerdict persists the anonymous outcome. Storage failures never fail the request.
func (s *Server) recordVerdict(requestID string, report analysis.Report) {
	if s.db == nil {
		return
	}
	verdict := &store.Verdict{
		RequestID:      requestID,
		Source:         string(report.Source),
		RiskLevel:      report.Result.RiskLevel.String(),
		IsScam:         report.Result.IsScam,
		Confidence:     report.Result.Confidence,
		IndicatorCount: len(report.Result.Indicators),
		FallbackReason: report.FallbackReason,
		Degraded:       report.FallbackReason != "" && report.FallbackReason != analysis.ReasonNoProvider,
		ProcessingMs:   report.DurationMs,
	}
	if err := s.db.SaveVerdict(verdict); err != nil {
		logrus.WithError(err).WithField("request_id", requestID).Warn("persist verdict")
	}
}

func (s *Server) renderError(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		logrus.WithError(err).Error("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
