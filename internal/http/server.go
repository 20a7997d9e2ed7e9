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

func NewServer(store roster.PlayerStore, manager *highlights.Manager, uploader *highlights.Uploader, blobStore blob.Store, fixtureStore fixtures.FixtureStore, extractor *fixtures.Extractor, analysisStore analysis.ReportStore, scoutingStore scouting.ReportStore, reviewer *scouting.Reviewer, knowledgeStore knowledge.ArticleStore, textGen textgen.Client, notifier notifier.Notifier, eventsClient events.Publisher, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Store:          store,
		Highlights:     manager,
		Uploader:       uploader,
		Blob:           blobStore,
		Fixtures:       fixtureStore,
		Extractor:      extractor,
		Analysis:       analysisStore,
		Scouting:       scoutingStore,
		Reviewer:       reviewer,
		Knowledge:      knowledgeStore,
		TextGen:        textGen,
		Notifier:       notifier,
		Events:         eventsClient,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		validate:       validator.New(validator.WithRequiredStructEnabled()),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("/players/create", Chain(s.CreatePlayerHandler(), paramsMiddleware))
	s.Router.Handle("/players/update", Chain(s.UpdatePlayerHandler(), paramsMiddleware))
	s.Router.Handle("/players/delete", Chain(s.DeletePlayerHandler(), paramsMiddleware))
	s.Router.Handle("/highlights", Chain(s.GetHighlightsHandler(), paramsMiddleware))
	s.Router.Handle("/highlights/upload", Chain(s.UploadHighlightsHandler(), paramsMiddleware))
	s.Router.Handle("/highlights/uploads", Chain(s.ListUploadsHandler(), paramsMiddleware))
	s.Router.Handle("/highlights/uploads/retry", Chain(s.RetryUploadHandler(), paramsMiddleware))
	s.Router.Handle("/highlights/uploads/remove", Chain(s.RemoveUploadHandler(), paramsMiddleware))
	s.Router.Handle("/highlights/uploads/logo", Chain(s.AttachLogoHandler(), paramsMiddleware))
	s.Router.Handle("/highlights/reorder", Chain(s.ReorderClipHandler(), paramsMiddleware))
	s.Router.Handle("/highlights/delete", Chain(s.DeleteClipHandler(), paramsMiddleware))
	s.Router.Handle("/highlights/clip/update", Chain(s.UpdateClipHandler(), paramsMiddleware))
	s.Router.Handle("/fixtures", Chain(s.ListFixturesHandler(), paramsMiddleware))
	s.Router.Handle("/fixtures/add", Chain(s.AddFixtureHandler(), paramsMiddleware))
	s.Router.Handle("/fixtures/delete", Chain(s.DeleteFixtureHandler(), paramsMiddleware))
	s.Router.Handle("/fixtures/extract", Chain(s.ExtractFixturesHandler(), paramsMiddleware))
	s.Router.Handle("/analysis", Chain(s.ListAnalysisHandler(), paramsMiddleware))
	s.Router.Handle("/analysis/add", Chain(s.AddAnalysisHandler(), paramsMiddleware))
	s.Router.Handle("/analysis/delete", Chain(s.DeleteAnalysisHandler(), paramsMiddleware))
	s.Router.Handle("/scouting", Chain(s.ListScoutingHandler(), paramsMiddleware))
	s.Router.Handle("/scouting/add", Chain(s.AddScoutingHandler(), paramsMiddleware))
	s.Router.Handle("/scouting/review", Chain(s.ReviewScoutingHandler(), paramsMiddleware))
	s.Router.Handle("/knowledge", Chain(s.ListKnowledgeHandler(), paramsMiddleware))
	s.Router.Handle("/knowledge/add", Chain(s.AddKnowledgeHandler(), paramsMiddleware))
	s.Router.Handle("/knowledge/delete", Chain(s.DeleteKnowledgeHandler(), paramsMiddleware))
	s.Router.Handle("/coach/chat", Chain(s.CoachChatHandler(), paramsMiddleware))
	s.Router.Handle("/events/scouting-review-done", Chain(s.ScoutingReviewDoneHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
