// Package prover drives the tableau expansion loop. It repeatedly expands
// the oldest active formula, closes contradictory branches and, when a
// branch survives, reads a countermodel off it.
package prover

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rfielding/kripke-tableau/internal/ctxlog"
	"github.com/rfielding/kripke-tableau/kripke"
	"github.com/rfielding/kripke-tableau/parser"
	"github.com/rfielding/kripke-tableau/tableau"
)

// Parser decomposes a formula at its main connective.
type Parser interface {
	Parse(formula string) (parser.Instructions, error)
}

// Verdict is the outcome of a proof run.
type Verdict int

const (
	// Satisfiable means an open branch survived expansion.
	Satisfiable Verdict = iota
	// Unsatisfiable means every branch closed.
	Unsatisfiable
	// Inconclusive means a limit or cancellation stopped the run.
	Inconclusive
)

func (v Verdict) String() string {
	switch v {
	case Satisfiable:
		return "satisfiable"
	case Unsatisfiable:
		return "unsatisfiable"
	case Inconclusive:
		return "inconclusive"
	}
	return fmt.Sprintf("Verdict(%d)", int(v))
}

var (
	// ErrStepLimit is reported when MaxSteps expansions did not finish the
	// tableau.
	ErrStepLimit = errors.New("step limit reached")

	// ErrWorldLimit is reported when an expansion needs more than
	// MaxWorlds worlds.
	ErrWorldLimit = errors.New("world limit reached")
)

// Options configure a Prover. The zero value proves in the unrestricted
// frame (K) without limits.
type Options struct {
	Frame kripke.Frame
	// MaxSteps bounds the number of rule applications. 0 disables it.
	MaxSteps int
	// MaxWorlds bounds the size of the world graph. 0 disables it.
	MaxWorlds int
	// LoopCheck lets a possibility formula reuse an accessible world that
	// already satisfies its operand on the branch instead of creating a
	// new one. Without it S4 and S5 tableaux with ◻◇ never finish.
	LoopCheck bool
	// Parser defaults to parser.New().
	Parser Parser
	// Metrics is optional.
	Metrics *Metrics
}

// Result summarizes a run.
type Result struct {
	RunID   string
	Verdict Verdict
	// Reason explains an inconclusive verdict.
	Reason       string
	Frame        kripke.Frame
	Formulas     []string
	Steps        int
	Nodes        int
	Worlds       int
	OpenBranches int
	Elapsed      time.Duration
	Countermodel *Countermodel
}

// Prover owns one tableau and its world graph.
type Prover struct {
	opts     Options
	formulas []string
	tab      *tableau.Tableau
	worlds   *kripke.WorldGraph
	steps    int
}

// New prepares a proof of the conjunction of formulas. Every formula
// starts on the root branch at world 0.
func New(formulas []string, opts Options) *Prover {
	if opts.Parser == nil {
		opts.Parser = parser.New()
	}
	worlds := kripke.NewWorldGraph(1)
	worlds.ImplementModals(opts.Frame)
	return &Prover{
		opts:     opts,
		formulas: append([]string(nil), formulas...),
		tab:      tableau.New(formulas),
		worlds:   worlds,
	}
}

// Tableau exposes the proof tree.
func (p *Prover) Tableau() *tableau.Tableau {
	return p.tab
}

// Worlds exposes the world graph.
func (p *Prover) Worlds() *kripke.WorldGraph {
	return p.worlds
}

// Steps returns the number of rule applications so far.
func (p *Prover) Steps() int {
	return p.steps
}

// Step expands the first active node and runs contradiction detection. It
// reports false when no active node was left.
func (p *Prover) Step(ctx context.Context) (bool, error) {
	id, ok := p.tab.FirstActiveNode()
	if !ok {
		return false, nil
	}
	if p.opts.MaxSteps > 0 && p.steps >= p.opts.MaxSteps {
		return false, fmt.Errorf("%w after %d expansions", ErrStepLimit, p.steps)
	}
	p.steps++
	if err := p.expand(ctx, id); err != nil {
		return false, err
	}
	if closed := p.tab.FindContradictions(); len(closed) > 0 {
		ctxlog.FromContext(ctx).Debug("Branches closed.", "terminals", closed)
		p.opts.Metrics.closed(len(closed))
	}
	return true, nil
}

// Run expands until no active node remains, a limit is hit or ctx is
// done. Limits and cancellation give an Inconclusive result; parse errors
// are returned.
func (p *Prover) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	res := &Result{
		RunID:    uuid.NewString(),
		Frame:    p.opts.Frame,
		Formulas: p.formulas,
	}
	logger := ctxlog.FromContext(ctx).With("run_id", res.RunID)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Info("Proof started.", "formulas", len(p.formulas), "frame", res.Frame)

	if err := p.checkFormulas(); err != nil {
		return nil, err
	}
	// Input may already be contradictory.
	p.tab.FindContradictions()

	var stopErr error
	for {
		if err := ctx.Err(); err != nil {
			stopErr = err
			break
		}
		more, err := p.Step(ctx)
		if err != nil {
			if !errors.Is(err, ErrStepLimit) && !errors.Is(err, ErrWorldLimit) {
				return nil, err
			}
			stopErr = err
			break
		}
		if !more {
			break
		}
	}

	res.Steps = p.steps
	res.Nodes = p.tab.Size()
	res.Worlds = p.worlds.Size()
	branches, _ := p.tab.UnclosedBranches()
	res.OpenBranches = len(branches)

	switch {
	case stopErr != nil:
		res.Verdict = Inconclusive
		res.Reason = stopErr.Error()
	case p.tab.Size() > 0 && len(branches) == 0:
		res.Verdict = Unsatisfiable
	default:
		res.Verdict = Satisfiable
		cm, err := p.Countermodel(ctx)
		if err != nil {
			return nil, err
		}
		res.Countermodel = cm
	}
	res.Elapsed = time.Since(start)
	p.opts.Metrics.finished(res)

	logger.Info("Proof finished.",
		"verdict", res.Verdict,
		"steps", res.Steps,
		"worlds", res.Worlds,
		"open_branches", res.OpenBranches,
		"elapsed", res.Elapsed)
	return res, nil
}

// checkFormulas parses every input formula down to its atoms, so a
// malformed line fails the run even when its branch would close first.
func (p *Prover) checkFormulas() error {
	for i, text := range p.formulas {
		if _, err := ToModal(p.opts.Parser, text); err != nil {
			return fmt.Errorf("formula %d: %w", i+1, err)
		}
	}
	return nil
}

// ActiveNodes expands nothing and returns the ids the loop would start
// from.
func (p *Prover) ActiveNodes() []int {
	ids, _ := p.tab.ActiveNodes()
	return ids
}

func (p *Prover) logger(ctx context.Context) *slog.Logger {
	return ctxlog.FromContext(ctx)
}
