package migration

import (
	"github.com/w-h-a/notify/internal/migration/clients/migrator"
	schemamanager "github.com/w-h-a/notify/internal/migration/services/schema_manager"
)

func NewSchemaManager(m migrator.Migrator) *schemamanager.Service {
	s := schemamanager.New(m)

	return s
}
