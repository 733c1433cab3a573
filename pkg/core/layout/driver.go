package layout

import (
	"context"
	"errors"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindlayout/pkg/core/geometry"
	"github.com/matzehuels/mindlayout/pkg/core/tree"
	"github.com/matzehuels/mindlayout/pkg/observability"
)

var (
	// ErrSuperseded is returned by Run.Wait when a newer layout request on
	// the same driver replaced the run before it completed.
	ErrSuperseded = errors.New("layout superseded by a newer request")

	// ErrClosed is returned by Run.Wait for requests made after Close.
	ErrClosed = errors.New("layout driver closed")
)

// Compute runs a full layout pass synchronously, yielding the processor
// between phases.
func Compute(root *tree.Node, cfg Config) *Result {
	p := newPass(context.Background(), root, cfg, nil)
	runTasks(p.tasks())
	return p.res
}

// runTasks executes tasks in order. Control is yielded after each task, so
// a large layout never holds the processor for more than one phase.
func runTasks(tasks []func()) {
	for _, task := range tasks {
		task()
		runtime.Gosched()
	}
}

// pass is one layout run over its own arena.
type pass struct {
	ctx    context.Context
	e      *engine
	root   *tree.Node
	res    *Result
	logger *log.Logger
}

func newPass(ctx context.Context, root *tree.Node, cfg Config, logger *log.Logger) *pass {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	capacity := 0
	if root != nil {
		capacity = tree.CountVisible(root)
	}
	return &pass{
		ctx:    ctx,
		e:      newEngine(cfg, capacity),
		root:   root,
		res:    &Result{Strategy: cfg.Strategy, LineStyle: cfg.Theme.LineStyle},
		logger: logger,
	}
}

// tasks returns one task per phase. An empty tree yields an empty result
// without running the phases.
func (p *pass) tasks() []func() {
	if p.root == nil {
		p.res.Tree = p.e.t
		p.res.Bounds = geometry.Rect{}
		return nil
	}

	strategy := p.e.s.Kind.String()
	hooks := observability.Pipeline()
	start := time.Now()
	phases := p.e.phases(p.root, p.res)

	out := make([]func(), 0, len(phases))
	for i, ph := range phases {
		first, last := i == 0, i == len(phases)-1
		out = append(out, func() {
			if first {
				hooks.OnLayoutStart(p.ctx, strategy, tree.CountVisible(p.root))
			}
			t0 := time.Now()
			ph.run()
			elapsed := time.Since(t0)
			hooks.OnLayoutPhase(p.ctx, strategy, ph.name, elapsed)
			p.logger.Debug("layout phase", "strategy", strategy, "phase", ph.name, "nodes", p.e.t.Len(), "took", elapsed)
			if last {
				hooks.OnLayoutComplete(p.ctx, strategy, time.Since(start), nil)
			}
		})
	}
	return out
}

// Run is a queued or completed layout request.
type Run struct {
	ctx  context.Context
	root *tree.Node
	cfg  Config
	done func(*Result)
	gen  uint64

	finished chan struct{}
	result   *Result
	err      error
}

// Done is closed once the run finished or was rejected.
func (r *Run) Done() <-chan struct{} { return r.finished }

// Wait blocks until the run completes and returns its result. A run that
// was superseded returns ErrSuperseded.
func (r *Run) Wait(ctx context.Context) (*Result, error) {
	select {
	case <-r.finished:
		return r.result, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Driver executes layout requests one at a time on a worker goroutine.
// Requests queue in arrival order. Only the most recent request delivers
// its result; older ones still run their phases on their own arena but
// their completion callback is dropped. A run cannot be cancelled once
// queued.
type Driver struct {
	logger *log.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []*Run
	gen     uint64
	closed  bool
	stopped chan struct{}
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithLogger sets the logger used for phase timings.
func WithLogger(l *log.Logger) DriverOption {
	return func(d *Driver) {
		d.logger = l
	}
}

// NewDriver starts a driver. Call Close to stop its worker.
func NewDriver(opts ...DriverOption) *Driver {
	d := &Driver{
		logger:  log.New(io.Discard),
		stopped: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.cond = sync.NewCond(&d.mu)
	go d.loop()
	return d
}

// Layout queues a layout of root and returns immediately. done, if not
// nil, is called on the worker goroutine with the result unless a newer
// request superseded this one.
func (d *Driver) Layout(ctx context.Context, root *tree.Node, cfg Config, done func(*Result)) *Run {
	r := &Run{
		ctx:      ctx,
		root:     root,
		cfg:      cfg,
		done:     done,
		finished: make(chan struct{}),
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		r.err = ErrClosed
		close(r.finished)
		return r
	}
	d.gen++
	r.gen = d.gen
	d.queue = append(d.queue, r)
	d.cond.Signal()
	return r
}

// Close waits for queued runs to finish and stops the worker.
func (d *Driver) Close() {
	d.mu.Lock()
	d.closed = true
	d.cond.Broadcast()
	d.mu.Unlock()
	<-d.stopped
}

func (d *Driver) loop() {
	defer close(d.stopped)
	for {
		d.mu.Lock()
		for len(d.queue) == 0 && !d.closed {
			d.cond.Wait()
		}
		if len(d.queue) == 0 {
			d.mu.Unlock()
			return
		}
		r := d.queue[0]
		d.queue[0] = nil
		d.queue = d.queue[1:]
		d.mu.Unlock()

		d.execute(r)
	}
}

func (d *Driver) current(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return gen == d.gen
}

func (d *Driver) execute(r *Run) {
	defer close(r.finished)

	p := newPass(r.ctx, r.root, r.cfg, d.logger)
	tasks := append(p.tasks(), func() {
		if !d.current(r.gen) {
			r.err = ErrSuperseded
			d.logger.Debug("layout superseded", "generation", r.gen)
			return
		}
		r.result = p.res
		if r.done != nil {
			r.done(p.res)
		}
	})
	runTasks(tasks)
}
