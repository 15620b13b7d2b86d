// Package batch turns a list of card names into a CardConjurer project.
package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arcanaland/framesmith/internal/assembler"
	"github.com/arcanaland/framesmith/internal/card"
	"github.com/arcanaland/framesmith/internal/ports"
)

// Outcome is the result of one input line
type Outcome struct {
	Name   string
	Result *assembler.Result
	Err    error
}

// Builder assembles one card from its attributes
type Builder interface {
	Assemble(ctx context.Context, attrs card.Attributes) (*assembler.Result, error)
}

// Runner looks up and assembles cards with a bounded number of workers
type Runner struct {
	catalog  ports.Catalog
	builder  Builder
	workers  int
	logger   *zap.Logger
	progress func(done, total int)
}

// Option configures a Runner
type Option func(*Runner)

// WithProgress registers a callback invoked after each card
func WithProgress(fn func(done, total int)) Option {
	return func(r *Runner) { r.progress = fn }
}

// NewRunner creates a Runner. workers below 1 means one worker.
func NewRunner(catalog ports.Catalog, builder Builder, workers int, logger *zap.Logger, opts ...Option) *Runner {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{catalog: catalog, builder: builder, workers: workers, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes names and returns one Outcome per name, in input order. A
// failing card is recorded in its Outcome and does not stop the others; Run
// only returns an error when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, names []string) ([]Outcome, error) {
	outcomes := make([]Outcome, len(names))
	var done atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, name := range names {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			outcomes[i] = r.one(gctx, name)
			n := int(done.Add(1))
			if r.progress != nil {
				r.progress(n, len(names))
			}
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, ctx.Err()
}

func (r *Runner) one(ctx context.Context, name string) Outcome {
	log := r.logger.With(zap.String("card", name))
	log.Info("processing card")

	attrs, err := r.catalog.Lookup(ctx, name)
	if err != nil {
		log.Error("card lookup failed", zap.Error(err))
		return Outcome{Name: name, Err: err}
	}
	res, err := r.builder.Assemble(ctx, attrs)
	if err != nil {
		log.Error("card skipped", zap.Error(err))
		return Outcome{Name: name, Err: err}
	}
	return Outcome{Name: name, Result: res}
}

// ReadNames reads one card name per line, skipping blank lines and lines
// starting with #.
func ReadNames(r io.Reader) ([]string, error) {
	var names []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("error reading card list: %v", err)
	}
	return names, nil
}

type projectEntry struct {
	Key  string            `json:"key"`
	Data *assembler.Result `json:"data"`
}

// WriteProject writes the successful outcomes as a CardConjurer project file
func WriteProject(w io.Writer, outcomes []Outcome) (int, error) {
	entries := make([]projectEntry, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Result == nil {
			continue
		}
		entries = append(entries, projectEntry{Key: o.Name, Data: o.Result})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entries); err != nil {
		return 0, fmt.Errorf("error writing project: %v", err)
	}
	return len(entries), nil
}
