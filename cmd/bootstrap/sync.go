package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"hotel-booking/internal/infra/peer"
	"hotel-booking/internal/infra/repository"
	"hotel-booking/internal/pkg/config"
	"hotel-booking/internal/usecase/sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var SyncModule = fx.Module("sync",
	fx.Provide(
		func(cfg config.Config) sync.PeerCatalog {
			return peer.NewClient(cfg.Peer)
		},
		func(pool *pgxpool.Pool) sync.CatalogWriter {
			return repository.NewCatalogRepository(pool)
		},
		sync.NewCatalogSync,
	),
	fx.Invoke(startCatalogSync),
)

// startCatalogSync mirrors the peer catalog once at boot and then on a fixed
// interval. A failed sweep is logged and retried on the next tick; the local
// mirror keeps serving whatever it last saw.
func startCatalogSync(lc fx.Lifecycle, catalogSync *sync.CatalogSync, cfg config.Config, logger *slog.Logger) {
	stop := make(chan struct{})
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)

				runOnce := func() {
					ctx, cancel := context.WithTimeout(context.Background(), cfg.Peer.RequestTimeout+cfg.Peer.RetryMaxElapse)
					defer cancel()
					if err := catalogSync.SyncOnce(ctx); err != nil {
						logger.Warn("catalog sync failed", "error", err.Error())
					}
				}

				runOnce()
				ticker := time.NewTicker(cfg.Peer.SyncInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						runOnce()
					case <-stop:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(stop)
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}
