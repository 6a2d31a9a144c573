package gymstats

import (
	"fmt"
	"net/http"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtracker/internal/config"
	"github.com/2beens/gymtracker/internal/gymstats/autosave"
	"github.com/2beens/gymtracker/internal/gymstats/events"
	"github.com/2beens/gymtracker/internal/gymstats/exercises"
	"github.com/2beens/gymtracker/internal/gymstats/history"
	gymstatsmcp "github.com/2beens/gymtracker/internal/gymstats/mcp"
	"github.com/2beens/gymtracker/internal/gymstats/notify"
	"github.com/2beens/gymtracker/internal/gymstats/progression"
	"github.com/2beens/gymtracker/internal/gymstats/session"
	"github.com/2beens/gymtracker/internal/gymstats/templates"
	"github.com/2beens/gymtracker/internal/telemetry/metrics"
)

type Params struct {
	Config         *config.Config
	DBPool         *pgxpool.Pool
	RedisClient    *redis.Client
	MetricsManager *metrics.Manager
	// HTTPClient is used for webhook notifications, a traced client is used when nil.
	HTTPClient *http.Client
}

// Gymstats wires the workout session engine to its storage, catalog and notification backends.
type Gymstats struct {
	Engine        *session.Engine
	Autosaves     autosave.Store
	TemplatesRepo *templates.Repo
	Templates     templates.Chain
	ExerciseTypes *exercises.Repo
	Catalog       *exercises.Catalog
	History       *history.Repo
	Analyzer      *history.Analyzer
	Rules         *progression.RulesStore
	Events        *events.Service

	pool   *pgxpool.Pool
	closer func() error
}

func New(params Params) (*Gymstats, error) {
	cfg := params.Config

	autosaves, closer, err := NewAutosaveStore(cfg, params.RedisClient)
	if err != nil {
		return nil, err
	}

	templatesRepo := templates.NewRepo(params.DBPool)
	var templateSources []templates.Source
	if cfg.TemplatesDir != "" {
		templateSources = append(templateSources, templates.NewFileSource(cfg.TemplatesDir))
	}
	templateSources = append(templateSources, templatesRepo)

	exerciseTypes := exercises.NewRepo(params.DBPool)
	historyRepo := history.NewRepo(params.DBPool, cfg.PastSessionsLimit)
	eventsService := events.NewService(events.NewRepo(params.DBPool))

	notifiers := []session.Notifier{
		notify.LogNotifier{},
		notify.NewRedisNotifier(params.RedisClient, params.MetricsManager),
	}
	if cfg.NotifyWebhookURL != "" {
		notifiers = append(notifiers, notify.NewWebhookNotifier(cfg.NotifyWebhookURL, params.HTTPClient, params.MetricsManager))
	}

	g := &Gymstats{
		Autosaves:     autosaves,
		TemplatesRepo: templatesRepo,
		Templates:     templates.NewChain(templateSources...),
		ExerciseTypes: exerciseTypes,
		Catalog:       exercises.NewCatalog(exerciseTypes, cfg.CatalogCacheSizeMB*1024*1024, cfg.CatalogCacheTTLDuration()),
		History:       historyRepo,
		Analyzer:      history.NewAnalyzer(historyRepo),
		Rules:         progression.NewRulesStore(params.RedisClient, cfg.Progression),
		Events:        eventsService,
		pool:          params.DBPool,
		closer:        closer,
	}

	g.Engine = session.NewEngine(session.EngineParams{
		Templates:          g.Templates,
		Catalog:            g.Catalog,
		History:            g.History,
		Rules:              g.Rules,
		Autosaves:          g.Autosaves,
		Sink:               g.History,
		Notifier:           notify.NewMulti(notifiers...),
		Events:             g.Events,
		Metrics:            params.MetricsManager,
		DefaultRestSeconds: cfg.DefaultRestSeconds,
	})

	log.Debugf("gymstats set up: autosave backend [%s], templates dir [%s]", cfg.AutosaveBackend, cfg.TemplatesDir)
	return g, nil
}

// NewAutosaveStore opens the autosave backend selected in the config.
// The returned func releases the backend resources.
func NewAutosaveStore(cfg *config.Config, rdb *redis.Client) (autosave.Store, func() error, error) {
	switch cfg.AutosaveBackend {
	case config.AutosaveBackendSQLite:
		store, err := autosave.OpenSQLiteStore(cfg.AutosaveSQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite autosave store: %w", err)
		}
		return store, store.Close, nil
	case config.AutosaveBackendRedis:
		return autosave.NewRedisStore(rdb), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown autosave backend: %s", cfg.AutosaveBackend)
	}
}

// SetupRoutes registers all gymstats HTTP routes on r.
func (g *Gymstats) SetupRoutes(r *mux.Router) {
	session.NewHandler(g.Engine).SetupRoutes(r)
	templates.NewHandler(g.TemplatesRepo, g.Templates).SetupRoutes(r)
	exercises.NewTypesHandler(g.ExerciseTypes, g.Catalog).SetupRoutes(r)
	history.NewHandler(g.History, g.Analyzer).SetupRoutes(r)
	events.NewHandler(g.Events).SetupRoutes(r)
	progression.NewHandler(g.Rules).SetupRoutes(r)
}

// MCPParams returns the MCP context service dependencies backed by this instance.
func (g *Gymstats) MCPParams() gymstatsmcp.ContextServiceParams {
	return gymstatsmcp.ContextServiceParams{
		Schema:        gymstatsmcp.NewPoolSchemaRepo(g.pool),
		Sessions:      g.Engine,
		Autosaves:     g.Autosaves,
		History:       g.History,
		Analyzer:      g.Analyzer,
		ExerciseTypes: g.ExerciseTypes,
	}
}

// Close releases the autosave backend. Live sessions must be shut down first.
func (g *Gymstats) Close() error {
	return g.closer()
}
