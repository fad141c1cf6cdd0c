package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jekabolt/retail-dashboard/config"
	"github.com/jekabolt/retail-dashboard/internal/analytics/adspend"
	httpapi "github.com/jekabolt/retail-dashboard/internal/api/http"
	"github.com/jekabolt/retail-dashboard/internal/apisrv/admin"
	"github.com/jekabolt/retail-dashboard/internal/apisrv/auth"
	"github.com/jekabolt/retail-dashboard/internal/cache"
	"github.com/jekabolt/retail-dashboard/internal/dashboard"
	"github.com/jekabolt/retail-dashboard/internal/dependency"
	"github.com/jekabolt/retail-dashboard/internal/rates"
	"github.com/jekabolt/retail-dashboard/internal/store"
	"github.com/jekabolt/retail-dashboard/internal/store/mongo"
)

const (
	SourceMySQL = "mysql"
	SourceMongo = "mongo"
)

// App is the main application
type App struct {
	hs        *httpapi.Server
	c         *config.Config
	store     httpapi.Pinger
	dashboard *dashboard.Composer
	auth      *auth.Server
	admin     *admin.Server
	closers   []func() error
	done      chan struct{}
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Init connects the stores and builds the dashboard and admin API without serving them.
func (a *App) Init(ctx context.Context) error {
	rp, err := rates.New(&a.c.Rates)
	if err != nil {
		return fmt.Errorf("bad rates config: %w", err)
	}

	var (
		orders        dependency.OrderReader
		catalog       dependency.ProductReader
		productsAdmin dependency.Products
		ordersAdmin   dependency.Order
	)
	switch a.c.Dashboard.Source {
	case "", SourceMySQL:
		db, err := store.New(ctx, a.c.DB)
		if err != nil {
			slog.Default().ErrorContext(ctx, "couldn't connect to mysql", slog.String("err", err.Error()))
			return err
		}
		a.closers = append(a.closers, func() error { db.Close(); return nil })
		a.store = db
		orders, catalog = db.Order(), db.Products()
		productsAdmin, ordersAdmin = db.Products(), db.Order()
	case SourceMongo:
		ms, err := mongo.New(ctx, &a.c.Mongo)
		if err != nil {
			slog.Default().ErrorContext(ctx, "couldn't connect to mongo", slog.String("err", err.Error()))
			return err
		}
		a.closers = append(a.closers, func() error { ms.Close(); return nil })
		a.store = ms
		orders, catalog = ms, ms
	default:
		return fmt.Errorf("unknown dashboard source %q", a.c.Dashboard.Source)
	}

	pc, closeCache, err := cache.New(ctx, &a.c.Cache)
	if err != nil {
		return fmt.Errorf("can't create product cache: %w", err)
	}
	a.closers = append(a.closers, closeCache)
	resolver := cache.NewResolver(catalog, pc)

	ads, err := adspend.New(ctx, &a.c.AdSpend, rp)
	if err != nil {
		return fmt.Errorf("can't create ad spend client: %w", err)
	}

	a.dashboard, err = dashboard.New(&a.c.Dashboard, orders, resolver, rp, ads)
	if err != nil {
		return fmt.Errorf("can't create dashboard: %w", err)
	}

	a.auth, err = auth.New(&a.c.Auth)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed create new auth server", slog.String("err", err.Error()))
		return err
	}
	a.admin = admin.New(a.dashboard, productsAdmin, ordersAdmin, resolver, rp, a.dashboard.Location())

	slog.Default().InfoContext(ctx, "dashboard ready",
		slog.String("source", a.c.Dashboard.Source),
		slog.String("cache", a.c.Cache.Backend),
		slog.Bool("ad_spend", a.c.AdSpend.Enabled),
	)
	return nil
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	slog.Default().InfoContext(ctx, "starting retail dashboard")
	if err := a.Init(ctx); err != nil {
		return err
	}

	a.hs = httpapi.New(&a.c.HTTP)
	if err := a.hs.Start(ctx, a.admin, a.auth, a.store); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server", slog.String("err", err.Error()))
		return err
	}
	go func() {
		<-a.hs.Done()
		select {
		case <-a.done:
		default:
			close(a.done)
		}
	}()
	return nil
}

// Dashboard returns the composer built by Init.
func (a *App) Dashboard() *dashboard.Composer {
	return a.dashboard
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) error {
	var errs []error
	if a.hs != nil {
		if err := a.hs.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
		<-a.hs.Done()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Done returns a channel that is closed after the http server has exited
func (a *App) Done() <-chan struct{} {
	return a.done
}
