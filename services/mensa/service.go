package mensa

import (
	"context"
	"log/slog"

	"mensa-backend/lib/menuhistory"
	"mensa-backend/lib/timezone"

	"go.opentelemetry.io/otel/codes"
)

type Service struct {
	fetcher        *Fetcher
	cache          *Cache
	history        *menuhistory.Store
	defaultCanteen string
	refreshHours   map[int]bool
}

type Options struct {
	SourceURL string
	// wall-clock hours (Europe/Berlin) at which the daemon refreshes;
	// defaults to 1, 7 and 10
	RefreshHours []int
	// canteen served on the root route and logged to history;
	// defaults to DefaultCanteen
	DefaultCanteen string
	// nil disables history logging
	History *menuhistory.Store
}

func NewService(opts Options) *Service {
	hours := opts.RefreshHours
	if len(hours) == 0 {
		hours = []int{1, 7, 10}
	}
	hourSet := map[int]bool{}
	for _, h := range hours {
		hourSet[h] = true
	}

	defaultCanteen := opts.DefaultCanteen
	if defaultCanteen == "" {
		defaultCanteen = DefaultCanteen
	}

	return &Service{
		fetcher:        NewFetcher(opts.SourceURL),
		cache:          NewCache(),
		history:        opts.History,
		defaultCanteen: defaultCanteen,
		refreshHours:   hourSet,
	}
}

func (s *Service) Cache() *Cache {
	return s.cache
}

func (s *Service) DefaultCanteen() string {
	return s.defaultCanteen
}

// refreshCycle runs one fetch+parse+replace pass. Any error leaves the
// cache untouched; history failures are logged but do not fail the
// cycle, matching the stale-but-available policy.
func (s *Service) refreshCycle(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "refreshCycle")
	defer span.End()

	html, err := s.fetcher.Fetch(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return err
	}

	snapshot, err := parseMenuPage(html)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse failed")
		return err
	}

	now := timezone.Now()
	s.cache.Replace(snapshot, now)

	s.logHistory(ctx, snapshot, now.Format("2006-01-02"))
	return nil
}

func (s *Service) logHistory(ctx context.Context, snapshot Snapshot, date string) {
	if s.history == nil {
		return
	}

	canteen, ok := snapshot[s.defaultCanteen]
	if !ok {
		slog.WarnContext(ctx, "default canteen missing from snapshot", "canteen", s.defaultCanteen)
		return
	}

	lines := map[string][]menuhistory.Meal{}
	for name, line := range canteen.Lines {
		meals := make([]menuhistory.Meal, len(line))
		for i, meal := range line {
			meals[i] = menuhistory.Meal{
				Name:  meal.Name,
				Note:  meal.Note,
				Price: meal.Price,
				Tags:  meal.Tags,
			}
		}
		lines[name] = meals
	}

	err := s.history.Append(ctx, date, lines)
	if err != nil {
		slog.WarnContext(ctx, "failed to append menu history", "date", date, "err", err)
	}
}
