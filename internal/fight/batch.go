package fight

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lox/bridgebot/internal/engine"
)

// Case pairs a board identifier with a label for reporting.
type Case struct {
	Name       string
	Identifier string
}

// Verdict records one comparison outcome.
type Verdict struct {
	Name          string
	Identifier    string
	EngineCall    string
	ReferenceCall string
	Agree         bool
	Err           error
}

// Summary tallies a batch of Verdicts.
type Summary struct {
	Total      int
	Agreements int
	Disagreements []Verdict
	Errors        []Verdict
}

// RunBatch fans Cases out across workers, asking both the local engine and
// the reference bidder for each board, and returns a tallied Summary. The
// reference server connection is shared read-write under a mutex inside
// ReferenceClient, so Ask calls from concurrent workers still serialize on
// the wire; the fan-out buys overlap between local engine evaluation and
// waiting on the network round-trip.
func RunBatch(ctx context.Context, eng *engine.Engine, ref *ReferenceClient, cases []Case, workers int, timeout time.Duration) (Summary, error) {
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, workers)
	var mu sync.Mutex
	var verdicts []Verdict

	for _, c := range cases {
		c := c
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-sem }()

			v := compareOne(eng, ref, c, timeout)

			mu.Lock()
			verdicts = append(verdicts, v)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Summary{}, fmt.Errorf("fight: batch run: %w", err)
	}

	summary := Summary{Total: len(verdicts)}
	for _, v := range verdicts {
		switch {
		case v.Err != nil:
			summary.Errors = append(summary.Errors, v)
		case v.Agree:
			summary.Agreements++
		default:
			summary.Disagreements = append(summary.Disagreements, v)
		}
	}
	return summary, nil
}

func compareOne(eng *engine.Engine, ref *ReferenceClient, c Case, timeout time.Duration) Verdict {
	interp, err := eng.SuggestCall(c.Identifier)
	if err != nil {
		return Verdict{Name: c.Name, Identifier: c.Identifier, Err: fmt.Errorf("engine: %w", err)}
	}

	resp, err := ref.Ask(c.Identifier, timeout)
	if err != nil {
		return Verdict{Name: c.Name, Identifier: c.Identifier, EngineCall: interp.Call.String(), Err: fmt.Errorf("reference: %w", err)}
	}

	return Verdict{
		Name:          c.Name,
		Identifier:    c.Identifier,
		EngineCall:    interp.Call.String(),
		ReferenceCall: resp.Call,
		Agree:         interp.Call.String() == resp.Call,
	}
}
