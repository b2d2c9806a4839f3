package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/w-h-a/notify/internal/engine/clients/sites"
)

type memorySites struct {
	options sites.Options
	store   map[string][]byte
	mtx     sync.RWMutex
}

func (s *memorySites) Read(ctx context.Context, id string) (any, error) {
	s.mtx.RLock()
	data, ok := s.store[id]
	s.mtx.RUnlock()

	if !ok {
		return nil, sites.ErrSiteNotFound
	}

	return sites.Decode(data)
}

func (s *memorySites) Write(ctx context.Context, id string, doc any) error {
	data, err := sites.Encode(doc)
	if err != nil {
		return err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.store[id] = data

	return nil
}

func (s *memorySites) List(ctx context.Context) ([]string, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	ids := make([]string, 0, len(s.store))
	for id := range s.store {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids, nil
}

func (s *memorySites) CheckHealth(ctx context.Context) error {
	return nil
}

func (s *memorySites) Close(ctx context.Context) error {
	return nil
}

func NewSites(opts ...sites.Option) sites.Sites {
	options := sites.NewOptions(opts...)

	s := &memorySites{
		options: options,
		store:   map[string][]byte{},
		mtx:     sync.RWMutex{},
	}

	for id, doc := range options.Seed {
		if err := s.Write(options.Context, id, doc); err != nil {
			slog.ErrorContext(options.Context, "failed to seed site", "site", id, "error", err)
		}
	}

	return s
}
