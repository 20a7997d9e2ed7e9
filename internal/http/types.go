package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/onsideagency/touchline/internal/analysis"
	"github.com/onsideagency/touchline/internal/blob"
	"github.com/onsideagency/touchline/internal/config"
	"github.com/onsideagency/touchline/internal/events"
	"github.com/onsideagency/touchline/internal/fixtures"
	"github.com/onsideagency/touchline/internal/highlights"
	"github.com/onsideagency/touchline/internal/knowledge"
	"github.com/onsideagency/touchline/internal/metrics"
	"github.com/onsideagency/touchline/internal/notifier"
	"github.com/onsideagency/touchline/internal/roster"
	"github.com/onsideagency/touchline/internal/scouting"
	"github.com/onsideagency/touchline/internal/textgen"
)

type Server struct {
	Store          roster.PlayerStore
	Highlights     *highlights.Manager
	Uploader       *highlights.Uploader
	Blob           blob.Store
	Fixtures       fixtures.FixtureStore
	Extractor      *fixtures.Extractor
	Analysis       analysis.ReportStore
	Scouting       scouting.ReportStore
	Reviewer       *scouting.Reviewer
	Knowledge      knowledge.ArticleStore
	TextGen        textgen.Client
	Notifier       notifier.Notifier
	Events         events.Publisher
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux

	validate *validator.Validate
}
