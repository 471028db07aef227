package reduce

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kr/pretty"

	"github.com/vic/tromp/pkg/lambda"
)

// Options configures Run.
type Options struct {
	Strategy Strategy
	// MaxSteps caps the number of beta steps; non-positive means
	// DefaultMaxSteps.
	MaxSteps int
	// TraceEvents is how many redex events to keep; zero keeps none.
	TraceEvents int
}

// Result is the outcome of Run.
type Result struct {
	// Terms is the full trace, starting with the input term.
	Terms []lambda.Term
	// Normal is true when the last term has no redex left. False means the
	// step budget ran out first.
	Normal bool
	Stats  Stats
	Events []Event
}

// Final returns the last term reached.
func (r *Result) Final() lambda.Term {
	return r.Terms[len(r.Terms)-1]
}

// Run reduces term under opts, stopping at normal form, after MaxSteps
// steps, or when ctx is done. On cancellation it returns the partial
// result together with the context error.
func Run(ctx context.Context, term lambda.Term, opts Options) (*Result, error) {
	if err := lambda.Validate(term); err != nil {
		return nil, fmt.Errorf("cannot reduce %s: %w", pretty.Sprint(term), err)
	}
	maxSteps := opts.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	events := newEventLog(opts.TraceEvents)
	res := &Result{
		Terms: []lambda.Term{term},
		Stats: Stats{PeakSize: lambda.Size(term)},
	}

	for res.Stats.Steps < maxSteps {
		if err := ctx.Err(); err != nil {
			res.Events = events.snapshot()
			return res, err
		}

		next, path, redex, ok := step(term, opts.Strategy)
		if !ok {
			res.Normal = true
			break
		}
		res.Stats.Steps++
		if size := lambda.Size(next); size > res.Stats.PeakSize {
			res.Stats.PeakSize = size
		}
		events.record(Event{Step: res.Stats.Steps, Path: path, Redex: redex})
		slog.DebugContext(ctx, "beta step",
			"strategy", opts.Strategy,
			"step", res.Stats.Steps,
			"path", path,
			"term", next)

		res.Terms = append(res.Terms, next)
		term = next
	}

	if !res.Normal {
		res.Normal = !Reducible(term)
	}
	res.Events = events.snapshot()
	return res, nil
}
