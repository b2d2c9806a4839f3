package schemamanager

import (
	"context"

	"github.com/w-h-a/notify/internal/migration/clients/migrator"
)

type Service struct {
	migrator migrator.Migrator
}

func (s *Service) CreateSchema(ctx context.Context) error {
	return s.migrator.Migrate(ctx)
}

func New(migrator migrator.Migrator) *Service {
	return &Service{
		migrator: migrator,
	}
}
