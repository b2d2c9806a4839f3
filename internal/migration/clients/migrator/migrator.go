package migrator

import "context"

type Migrator interface {
	Migrate(ctx context.Context, opts ...MigrateOption) error
}
