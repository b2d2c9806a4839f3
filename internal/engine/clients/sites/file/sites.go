package file

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/w-h-a/notify/internal/engine/clients/sites"
	"gopkg.in/yaml.v3"
)

type document struct {
	Sites map[string]any `yaml:"sites"`
}

type fileSites struct {
	options  sites.Options
	snapshot map[string]any
	mtx      sync.RWMutex
	exit     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

func (s *fileSites) Read(ctx context.Context, id string) (any, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	doc, ok := s.snapshot[id]
	if !ok {
		return nil, sites.ErrSiteNotFound
	}

	return doc, nil
}

func (s *fileSites) Write(ctx context.Context, id string, doc any) error {
	return sites.ErrReadOnly
}

func (s *fileSites) List(ctx context.Context) ([]string, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	ids := make([]string, 0, len(s.snapshot))
	for id := range s.snapshot {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids, nil
}

func (s *fileSites) CheckHealth(ctx context.Context) error {
	if _, err := os.Stat(s.options.Location); err != nil {
		return err
	}

	return nil
}

func (s *fileSites) Close(ctx context.Context) error {
	done := make(chan struct{})

	s.once.Do(func() {
		close(s.exit)
	})

	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

func (s *fileSites) reload(ctx context.Context, trigger string) {
	snapshot, err := load(s.options.Location)
	if err != nil {
		// span
		slog.ErrorContext(ctx, "failed to reload sites, keeping last snapshot", "path", s.options.Location, "trigger", trigger, "error", err)
		return
	}

	s.mtx.Lock()
	s.snapshot = snapshot
	s.mtx.Unlock()

	// span
	slog.InfoContext(ctx, "reloaded sites", "path", s.options.Location, "trigger", trigger, "count", len(snapshot))
}

func (s *fileSites) watch(ctx context.Context, w *fsnotify.Watcher) {
	defer s.wg.Done()
	defer w.Close()

	base := filepath.Base(s.options.Location)

	var timer *time.Timer
	var timerCh <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(s.options.Debounce)
		} else {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(s.options.Debounce)
		}
		timerCh = timer.C
	}

	for {
		select {
		case <-s.exit:
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			schedule()
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			slog.WarnContext(ctx, "sites watch error", "error", err)
		case <-timerCh:
			timerCh = nil
			s.reload(ctx, "watch")
		}
	}
}

func load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", sites.ErrDecodingSite, err)
	}

	if doc.Sites == nil {
		doc.Sites = map[string]any{}
	}

	return doc.Sites, nil
}

func NewSites(opts ...sites.Option) sites.Sites {
	options := sites.NewOptions(opts...)

	snapshot, err := load(options.Location)
	if err != nil {
		detail := "failed to load sites file"
		slog.ErrorContext(options.Context, detail, "path", options.Location, "error", err)
		panic(detail)
	}

	s := &fileSites{
		options:  options,
		snapshot: snapshot,
		mtx:      sync.RWMutex{},
		exit:     make(chan struct{}),
		wg:       sync.WaitGroup{},
		once:     sync.Once{},
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		slog.WarnContext(options.Context, "sites watch disabled", "error", err)
		return s
	}

	// editors replace files atomically, so the directory is watched
	if err := w.Add(filepath.Dir(options.Location)); err != nil {
		w.Close()
		slog.WarnContext(options.Context, "sites watch disabled", "error", err)
		return s
	}

	slog.InfoContext(options.Context, "watching sites", "path", options.Location)

	s.wg.Add(1)
	go s.watch(options.Context, w)

	return s
}
