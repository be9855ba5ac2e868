package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/su-perfume/storefront/config"
	"github.com/su-perfume/storefront/internal/adapter/localstore"
	"github.com/su-perfume/storefront/internal/adapter/restapi"
	"github.com/su-perfume/storefront/internal/adapter/telegram"
	"github.com/su-perfume/storefront/internal/core/port"
	"github.com/su-perfume/storefront/internal/core/service"
	"github.com/su-perfume/storefront/internal/tui"
)

type outbound struct {
	store    *localstore.Store
	api      *restapi.Client
	notifier telegram.Notifier
}

type coreServices struct {
	catalog     port.CatalogViewer
	collections port.CollectionsKeeper
	orders      port.OrderSubmitter
	session     port.SessionManager
	admin       port.AdminManager
}

type App struct {
	ctx      context.Context
	cfg      config.Config
	outbound outbound
	services coreServices
	program  *tea.Program
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initOutboundAdapters()
	app.initCoreServices()
	app.initProgram()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	store, err := localstore.Open(app.cfg.StatePath)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.store = store

	app.outbound.api = restapi.New(app.cfg.API.BaseURL, app.cfg.API.Timeout)

	app.outbound.notifier = telegram.NewNotifier(
		app.cfg.Telegram.APIURL,
		app.cfg.Telegram.BotToken,
		app.cfg.Telegram.ChatID,
		app.cfg.Telegram.Timeout,
	)
}

func (app *App) initCoreServices() {
	catalog := service.NewCatalog(app.outbound.api)
	collections := service.NewCollections(app.outbound.store)
	orders := service.NewOrder(collections, app.outbound.notifier)
	session := service.NewSession(app.outbound.api, app.outbound.store)
	admin := service.NewAdmin(app.outbound.api, app.outbound.api, app.outbound.api, session)

	app.services.catalog = catalog
	app.services.collections = collections
	app.services.orders = orders
	app.services.session = session
	app.services.admin = admin
}

func (app *App) initProgram() {
	model := tui.New(
		app.ctx,
		app.services.catalog,
		app.services.collections,
		app.services.orders,
		app.services.session,
		app.services.admin,
		app.cfg.PlaceholderImage,
	)
	app.program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(app.ctx))
}

func (app *App) Run(stopFn context.CancelFunc) {
	go func() {
		defer stopFn()
		if _, err := app.program.Run(); err != nil {
			slog.Error("program stopped", "err", err)
		}
	}()

	slog.Info("application is running")
}

func (app *App) Close() {
	slog.Info("application is closing...")

	app.outbound.store.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
