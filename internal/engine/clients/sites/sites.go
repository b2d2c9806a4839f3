package sites

import "context"

type SitesType string

const (
	Memory   SitesType = "memory"
	File     SitesType = "file"
	Postgres SitesType = "postgres"
	Redis    SitesType = "redis"
)

var (
	SitesTypes = map[string]SitesType{
		"memory":   Memory,
		"file":     File,
		"postgres": Postgres,
		"redis":    Redis,
	}
)

// Sites stores site documents by id. Documents are decoded trees
// (map[string]any, []any, scalars).
type Sites interface {
	Read(ctx context.Context, id string) (any, error)
	Write(ctx context.Context, id string, doc any) error
	List(ctx context.Context) ([]string, error)
	CheckHealth(ctx context.Context) error
	Close(ctx context.Context) error
}
