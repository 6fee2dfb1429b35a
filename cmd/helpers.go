package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/Karanja-eng/jengacost/internal/catalog"
	"github.com/Karanja-eng/jengacost/internal/rate"
	"github.com/Karanja-eng/jengacost/internal/store"
)

// initEngine builds the rate engine over the catalog with the configured
// price book.
func initEngine() (*catalog.Catalog, *rate.Engine, error) {
	cat := catalog.New()
	eng, err := rate.New(cat, cfg.PriceBook())
	if err != nil {
		return nil, nil, eris.Wrap(err, "init engine")
	}
	return cat, eng, nil
}

// initStore opens the configured store backend and runs migrations.
func initStore(ctx context.Context) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	case "sqlite", "":
		st, err = store.NewSQLite(cfg.Store.Path)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}
