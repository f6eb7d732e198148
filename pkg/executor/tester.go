// Package executor orchestrates flow execution: it drives a model through
// the declared steps, renders after each one, and delegates capture to
// the snapshot engine.
package executor

import (
	"context"
	"time"

	"github.com/devicelab-dev/flowshot/pkg/core"
	"github.com/devicelab-dev/flowshot/pkg/flow"
	"github.com/devicelab-dev/flowshot/pkg/logger"
	"github.com/devicelab-dev/flowshot/pkg/render"
	"github.com/devicelab-dev/flowshot/pkg/snapshot"
)

// Hook runs between the phases of a step: before the action, or after
// the assertions. Hooks share the orchestration thread with everything
// else and may mutate the model.
type Hook[M any] func(resolvedName string, index int, model M)

// CustomCapture replaces the snapshot engine in custom capture mode. It
// receives the resolved step name and the built (unrendered) view; the
// step records no snapshot result.
type CustomCapture func(resolvedName string, view any)

// captureMode selects one of the three mutually exclusive capture
// strategies of a run.
type captureMode int

const (
	modeEngine   captureMode = iota // Built-in: render and delegate to snapshot.Engine
	modeCustom                      // Invoke a caller-supplied closure with the view
	modeDisabled                    // Skip capture entirely
)

// Tester sequences step execution against a single model. Steps execute
// strictly in declaration order on one logical thread; there is no
// retry, reordering, or parallelism at this layer.
//
// The zero Tester is not usable; construct with New.
type Tester[M any] struct {
	name      string
	model     M
	buildView func(model M) any
	renderer  render.Renderer

	config flow.Configuration
	steps  []flow.Step[M]

	beforeEach Hook[M]
	afterEach  Hook[M]

	mode       captureMode
	snapCfg    snapshot.Config
	hasSnapCfg bool
	engine     *snapshot.Engine
	custom     CustomCapture
}

// New creates a tester owning model, with buildView constructing the
// declarative view to render from the current model state.
func New[M any](model M, buildView func(model M) any, renderer render.Renderer) *Tester[M] {
	return &Tester[M]{
		model:     model,
		buildView: buildView,
		renderer:  renderer,
	}
}

// Named sets the tester name, prefixed onto every resolved step name.
func (t *Tester[M]) Named(name string) *Tester[M] {
	t.name = name
	return t
}

// Name returns the tester name.
func (t *Tester[M]) Name() string {
	return t.name
}

// WithConfiguration sets the default configuration used outside matrix
// runs. A non-empty label participates exactly as in a matrix run: it is
// appended to every resolved step name and recorded as the results'
// ConfigLabel.
func (t *Tester[M]) WithConfiguration(cfg flow.Configuration) *Tester[M] {
	t.config = cfg
	return t
}

// BeforeEach registers a hook invoked before every step's action.
func (t *Tester[M]) BeforeEach(h Hook[M]) *Tester[M] {
	t.beforeEach = h
	return t
}

// AfterEach registers a hook invoked after every step's assertions.
func (t *Tester[M]) AfterEach(h Hook[M]) *Tester[M] {
	t.afterEach = h
	return t
}

// WithSnapshots selects built-in capture with the given configuration.
// This is also the default mode, using snapshot.NewConfig defaults.
func (t *Tester[M]) WithSnapshots(cfg snapshot.Config) *Tester[M] {
	t.mode = modeEngine
	t.snapCfg = cfg
	t.hasSnapCfg = true
	t.engine = nil
	return t
}

// WithCustomCapture selects custom capture: fn is invoked with each
// step's resolved name and built view, and steps record a nil snapshot
// result.
func (t *Tester[M]) WithCustomCapture(fn CustomCapture) *Tester[M] {
	t.mode = modeCustom
	t.custom = fn
	return t
}

// WithoutSnapshots disables capture for the whole run; steps record a
// nil snapshot result.
func (t *Tester[M]) WithoutSnapshots() *Tester[M] {
	t.mode = modeDisabled
	return t
}

// Step appends a named synchronous step. An empty name auto-names from
// the execution index.
func (t *Tester[M]) Step(name string, action flow.Action[M], assertions ...flow.Assertion[M]) *Tester[M] {
	return t.Add(flow.NewStep(name, action, assertions...))
}

// AsyncStep appends a named suspending step.
func (t *Tester[M]) AsyncStep(name string, action flow.AsyncAction[M], assertions ...flow.Assertion[M]) *Tester[M] {
	return t.Add(flow.NewAsyncStep(name, action, assertions...))
}

// Add appends a prebuilt step.
func (t *Tester[M]) Add(step flow.Step[M]) *Tester[M] {
	t.steps = append(t.steps, step)
	return t
}

// Steps returns a copy of the accumulated step list, for composition
// into another tester. Names resolve lazily from index at execution
// time, so appended lists renumber automatically.
func (t *Tester[M]) Steps() []flow.Step[M] {
	out := make([]flow.Step[M], len(t.steps))
	copy(out, t.steps)
	return out
}

// Append appends an extracted step list to this tester.
func (t *Tester[M]) Append(steps []flow.Step[M]) *Tester[M] {
	t.steps = append(t.steps, steps...)
	return t
}

// Run executes every step in declaration order against the tester's
// model and returns one result per step. Assertion and snapshot failures
// never halt the run; every step always executes.
func (t *Tester[M]) Run() []core.StepResult {
	return t.run(context.Background(), t.config, t.model, false)
}

// RunAsync executes like Run, but steps declaring an asynchronous action
// have it awaited in place of the synchronous one. The loop itself is the
// single suspension point; no two steps ever run concurrently.
func (t *Tester[M]) RunAsync(ctx context.Context) []core.StepResult {
	return t.run(ctx, t.config, t.model, true)
}

// RunMatrix executes the full step sequence once per configuration, in
// declared order, each against a fresh model from newModel. Results are
// concatenated in configuration-then-step order; each configuration's
// label is folded into name resolution and recorded on its results.
// Configurations run sequentially so snapshot-directory writes stay
// deterministic.
func (t *Tester[M]) RunMatrix(configs []flow.Configuration, newModel func() M) []core.StepResult {
	results := make([]core.StepResult, 0, len(configs)*len(t.steps))
	for _, cfg := range configs {
		results = append(results, t.run(context.Background(), cfg, newModel(), false)...)
	}
	return results
}

// Result wraps step results into an aggregated RunResult with summary
// counts computed.
func (t *Tester[M]) Result(start time.Time, steps []core.StepResult) core.RunResult {
	run := core.RunResult{
		Name:      t.name,
		StartTime: start,
		Duration:  time.Since(start),
		Steps:     steps,
	}
	run.ComputeSummary()
	return run
}

func (t *Tester[M]) run(ctx context.Context, cfg flow.Configuration, model M, async bool) []core.StepResult {
	results := make([]core.StepResult, 0, len(t.steps))
	for i, step := range t.steps {
		results = append(results, t.runStep(ctx, i, step, cfg, model, async))
	}
	return results
}

// runStep executes one step through its phases in order: before hook,
// action, view build, environment patch, capture, assertions, after
// hook. All phases run on the caller's goroutine.
func (t *Tester[M]) runStep(ctx context.Context, index int, step flow.Step[M], cfg flow.Configuration, model M, async bool) core.StepResult {
	resolved := flow.ResolveName(t.name, step.Name, index, cfg.Label)
	start := time.Now()

	if t.beforeEach != nil {
		t.beforeEach(resolved, index, model)
	}

	if async && step.AsyncAction != nil {
		step.AsyncAction(ctx, model)
	} else if step.Action != nil {
		step.Action(model)
	}

	view := t.buildView(model)
	env := render.Environment{}
	if cfg.Patch != nil {
		cfg.Patch(env)
	}

	snap := t.capture(resolved, step, view, env)

	for _, assertion := range step.Assertions {
		if assertion.Body != nil {
			assertion.Body(model)
		}
	}

	if t.afterEach != nil {
		t.afterEach(resolved, index, model)
	}

	return core.StepResult{
		StepName:       step.Name,
		ResolvedName:   resolved,
		Index:          index,
		StartTime:      start,
		Duration:       time.Since(start),
		AssertionCount: len(step.Assertions),
		ConfigLabel:    cfg.Label,
		Snapshot:       snap,
	}
}

// capture applies the run's capture strategy to one step. A per-step
// opt-out always wins and yields a skipped status regardless of mode.
func (t *Tester[M]) capture(resolved string, step flow.Step[M], view any, env render.Environment) *core.SnapshotResult {
	if !step.SnapshotEnabled {
		return &core.SnapshotResult{Status: core.SnapshotSkipped}
	}

	switch t.mode {
	case modeCustom:
		t.custom(resolved, view)
		return nil
	case modeDisabled:
		return nil
	}

	engine := t.snapshotEngine()
	data, err := t.renderer.Render(view, env, engine.Config().RenderOptions())
	if err != nil {
		// Renderer errors degrade to unavailable, never abort the run.
		logger.Logger().Warn().Err(err).Str("step", resolved).Msg("render failed")
		data = nil
	}
	result := engine.Capture(resolved, data)
	return &result
}

// snapshotEngine creates the engine on first use so directory derivation
// from the calling test file happens while the test is on the stack.
func (t *Tester[M]) snapshotEngine() *snapshot.Engine {
	if t.engine == nil {
		if !t.hasSnapCfg {
			t.snapCfg = snapshot.NewConfig()
			t.hasSnapCfg = true
		}
		t.engine = snapshot.NewEngine(t.snapCfg)
	}
	return t.engine
}
