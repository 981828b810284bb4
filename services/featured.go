package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"asp_listings/config"
	"asp_listings/listing"
	"asp_listings/models"
	"asp_listings/propfusion"
)

const FeaturedCount = 3

type featuredFetcher func(ctx context.Context) ([]Row, error)

// FeaturedService keeps the first few active listings of each kind for the
// home screen. Refresh replaces the whole snapshot or nothing.
type FeaturedService struct {
	kinds    []string
	fetchers map[string]featuredFetcher

	mu          sync.RWMutex
	rows        map[string][]Row
	refreshedAt time.Time
}

func NewFeaturedService(cfg *config.Config, client *propfusion.Client) (*FeaturedService, error) {
	s := &FeaturedService{
		fetchers: make(map[string]featuredFetcher),
		rows:     make(map[string][]Row),
	}
	for _, id := range cfg.KindIDs() {
		kind := cfg.Kinds[id]
		var fetch featuredFetcher
		switch kind.Handler {
		case config.KindProperties:
			fetch = firstRows(propfusion.NewSource[models.Property](client, kind), kind.PageSize, PropertyRow)
		case config.KindRentals:
			fetch = firstRows(propfusion.NewSource[models.Rental](client, kind), kind.PageSize, RentalRow)
		case config.KindProjects:
			fetch = firstRows(propfusion.NewSource[models.Project](client, kind), kind.PageSize, ProjectRow)
		default:
			return nil, fmt.Errorf("kind %s: unknown handler %q", id, kind.Handler)
		}
		s.kinds = append(s.kinds, id)
		s.fetchers[id] = fetch
	}
	return s, nil
}

// firstRows fetches page 1 at the kind's normal page size, so the request is
// shared with the browser's first page, and keeps the first FeaturedCount.
func firstRows[T listing.Listing](src listing.Source[T], pageSize int, row func(T) Row) featuredFetcher {
	return func(ctx context.Context) ([]Row, error) {
		page, err := src.FetchPage(ctx, listing.Query{}, 1, pageSize)
		if err != nil {
			return nil, err
		}
		items := page.Items
		if len(items) > FeaturedCount {
			items = items[:FeaturedCount]
		}
		rows := make([]Row, len(items))
		for i, item := range items {
			rows[i] = row(item)
		}
		return rows, nil
	}
}

func (s *FeaturedService) Refresh(ctx context.Context) error {
	start := time.Now()
	results := make([][]Row, len(s.kinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range s.kinds {
		g.Go(func() error {
			rows, err := s.fetchers[id](gctx)
			if err != nil {
				return fmt.Errorf("featured %s: %w", id, err)
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Printf("Featured: refresh failed, keeping previous snapshot: %v", err)
		return err
	}

	s.mu.Lock()
	for i, id := range s.kinds {
		s.rows[id] = results[i]
	}
	s.refreshedAt = time.Now()
	s.mu.Unlock()

	log.Printf("Featured: refreshed %d kinds in %s", len(s.kinds), time.Since(start).Round(time.Millisecond))
	return nil
}

// Rows returns the featured listings of one kind from the last successful
// refresh.
func (s *FeaturedService) Rows(kind string) []Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Row(nil), s.rows[kind]...)
}

func (s *FeaturedService) Kinds() []string {
	return append([]string(nil), s.kinds...)
}

func (s *FeaturedService) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}
