package bootstrap

import (
	"hotel-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	RedisModule,
	SyncModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
