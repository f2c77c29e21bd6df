// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pattern

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/narrative-engine/pkg/types"
)

// mapWorkers bounds the fan-out of MapBeats.
const mapWorkers = 4

// MapBeats classifies every beat concurrently. Per-beat mapping is pure and
// order-independent, so beats fan out across workers while results keep the
// input order (R1.3). The first rule error cancels the remaining work.
func MapBeats(ctx context.Context, beats []types.StoryBeat, class types.DurationClass) ([]types.PatternDecision, error) {
	decisions := make([]types.PatternDecision, len(beats))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(mapWorkers)

	for i, beat := range beats {
		i, beat := i, beat
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			d, err := Decide(beat, class)
			if err != nil {
				return fmt.Errorf("beat %d: %w", i, err)
			}
			decisions[i] = d
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return decisions, nil
}
