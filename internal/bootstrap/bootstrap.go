package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	crawlinadapter "wikitrail/internal/modules/crawl/adapter/in"
	crawloutadapter "wikitrail/internal/modules/crawl/adapter/out"
	crawlout "wikitrail/internal/modules/crawl/port/out"
	crawlservice "wikitrail/internal/modules/crawl/service"
	crawlusecase "wikitrail/internal/modules/crawl/usecase"
	gameinadapter "wikitrail/internal/modules/game/adapter/in"
	gameusecase "wikitrail/internal/modules/game/usecase"
	"wikitrail/internal/platform/clock"
	"wikitrail/internal/platform/config"
	"wikitrail/internal/platform/id"
	"wikitrail/internal/platform/random"
	uiapp "wikitrail/internal/ui/app"
)

type App struct {
	CrawlCLI crawlinadapter.CLIHandler
	GameTUI  gameinadapter.TUIHandler
	Logger   *log.Logger

	closers []io.Closer
}

func New(cfg config.Config, logger *log.Logger) (*App, error) {
	client := &http.Client{Timeout: cfg.Timeout}
	var source crawlout.LinkSource = crawloutadapter.NewWikiLinkSource(client, crawloutadapter.WikiOptions{
		APIURL:    cfg.APIURL,
		LinkLimit: cfg.LinkLimit,
		UserAgent: cfg.UserAgent,
	})

	app := &App{Logger: logger}
	var cache crawlout.LinkCache
	if !cfg.NoCache {
		sqliteCache, err := crawloutadapter.NewSQLiteLinkCache(cfg.CachePath, source, clock.SystemClock{}, cfg.CacheTTL, logger)
		if err != nil {
			return nil, fmt.Errorf("open link cache: %w", err)
		}
		app.closers = append(app.closers, sqliteCache)
		cache = sqliteCache
		source = sqliteCache
	}
	source = crawloutadapter.NewFilteredLinkSource(source, cfg.Denylist)

	treeSvc := crawlservice.NewTreeService(source, random.New(cfg.Seed), logger, cfg.MaxNodes)
	crawlUC := crawlusecase.NewInteractor(treeSvc, cache)
	gameUC := gameusecase.NewInteractor(id.UUID{}, logger)

	app.CrawlCLI = crawlinadapter.NewCLIHandler(crawlUC)
	app.GameTUI = gameinadapter.NewTUIHandler(gameUC)
	return app, nil
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

func RunTUI(app *App, settings uiapp.Settings) error {
	model := uiapp.NewModel(app.CrawlCLI, app.GameTUI, settings)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
