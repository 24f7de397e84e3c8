// Package simulate runs many independent skill resolutions in parallel.
//
// Each worker owns its own random source derived from the request seed,
// so workers never contend and a run is reproducible for a fixed
// (seed, workers, trials) triple.
package simulate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/battleskill/internal/game/rng"
	"github.com/udisondev/battleskill/internal/game/skill"
	"github.com/udisondev/battleskill/internal/model"
)

var ErrNoTrials = errors.New("trials must be > 0")

// Request describes one simulation run.
type Request struct {
	Resolver skill.Resolver
	Attacker model.Snapshot
	Defender model.Snapshot
	Trials   int
	Workers  int // <= 0 means GOMAXPROCS
	Seed     uint64
}

// Report aggregates the outcomes of a run.
type Report struct {
	Skill          string
	Trials         int
	Min            int32
	Max            int32
	Mean           float64
	SecondaryRate  float64 // share of outcomes with Secondary set
	StatusRate     float64 // share of outcomes whose status triggered
	MagnitudeCount map[int32]int
}

type partial struct {
	n         int
	min, max  int32
	sum       int64
	secondary int
	status    int
	counts    map[int32]int
}

func newPartial() partial {
	return partial{min: math.MaxInt32, max: math.MinInt32, counts: make(map[int32]int)}
}

func (p *partial) add(o model.Outcome) {
	p.n++
	p.sum += int64(o.Magnitude)
	p.min = min(p.min, o.Magnitude)
	p.max = max(p.max, o.Magnitude)
	p.counts[o.Magnitude]++
	if o.Secondary {
		p.secondary++
	}
	if o.StatusApplied() {
		p.status++
	}
}

// Run resolves req.Trials times across req.Workers goroutines.
// The first resolution error cancels the run.
func Run(ctx context.Context, req Request) (Report, error) {
	if req.Trials <= 0 {
		return Report{}, ErrNoTrials
	}
	if req.Resolver == nil {
		return Report{}, fmt.Errorf("simulate: nil resolver")
	}

	workers := req.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, req.Trials)

	parts := make([]partial, workers)
	g, ctx := errgroup.WithContext(ctx)

	for w := range workers {
		n := req.Trials / workers
		if w < req.Trials%workers {
			n++
		}
		g.Go(func() error {
			src := rng.New(rng.Derive(req.Seed, w))
			p := newPartial()
			for i := range n {
				if i%256 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				out, err := req.Resolver.Resolve(req.Attacker, req.Defender, src, nil)
				if err != nil {
					return fmt.Errorf("worker %d trial %d: %w", w, i, err)
				}
				p.add(out)
			}
			parts[w] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	total := newPartial()
	for _, p := range parts {
		total.n += p.n
		total.sum += p.sum
		total.min = min(total.min, p.min)
		total.max = max(total.max, p.max)
		total.secondary += p.secondary
		total.status += p.status
		for k, v := range p.counts {
			total.counts[k] += v
		}
	}

	return Report{
		Skill:          req.Resolver.Name(),
		Trials:         total.n,
		Min:            total.min,
		Max:            total.max,
		Mean:           float64(total.sum) / float64(total.n),
		SecondaryRate:  float64(total.secondary) / float64(total.n),
		StatusRate:     float64(total.status) / float64(total.n),
		MagnitudeCount: total.counts,
	}, nil
}
