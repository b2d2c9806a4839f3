package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/notify/internal/engine/clients/sites"
	"github.com/w-h-a/notify/internal/site"
)

func TestMemorySites_WriteRead(t *testing.T) {
	// Arrange
	s := NewSites()

	doc := map[string]any{
		"notify": map[string]any{
			"webhooks": map[string]any{"publishPage": []string{"http://hooks.test/a"}},
		},
	}

	// Act
	err := s.Write(context.Background(), "blog", doc)
	require.NoError(t, err)

	got, err := s.Read(context.Background(), "blog")
	require.NoError(t, err)

	// Assert
	assert.Equal(t, []any{"http://hooks.test/a"}, site.Webhooks(got, "publishPage"))
}

func TestMemorySites_ReadIsolatedFromWriter(t *testing.T) {
	// Arrange
	doc := map[string]any{"notify": map[string]any{"webhooks": map[string]any{"e": []any{"http://hooks.test/a"}}}}
	s := NewSites(sites.WithSeed(map[string]any{"blog": doc}))

	// Act
	doc["notify"] = "changed"
	got, err := s.Read(context.Background(), "blog")
	require.NoError(t, err)

	// Assert
	assert.Len(t, site.Webhooks(got, "e"), 1)
}

func TestMemorySites_NotFound(t *testing.T) {
	s := NewSites()

	_, err := s.Read(context.Background(), "missing")

	assert.ErrorIs(t, err, sites.ErrSiteNotFound)
}

func TestMemorySites_List(t *testing.T) {
	s := NewSites(sites.WithSeed(map[string]any{"b": map[string]any{}, "a": map[string]any{}}))

	ids, err := s.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestMemorySites_Write_Unencodable(t *testing.T) {
	s := NewSites()

	err := s.Write(context.Background(), "bad", map[string]any{"ch": make(chan int)})

	assert.ErrorIs(t, err, sites.ErrEncodingSite)
}
