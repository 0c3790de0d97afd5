// Package source produces story candidates from the configured ingestion
// surfaces: RSS/Atom feeds and autonomous crawl seeds.
package source

import (
	"context"

	"storyscout/pkg/domain"
)

// Source yields a batch of story candidates per discovery pass
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.StoryCandidate, error)
}
