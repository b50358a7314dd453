// Package orchestrator is the single entry point for reading and mutating
// taskdeck data. It prefers the remote store and degrades to the local store
// for the rest of the session once the remote store fails.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/eleven-am/taskdeck/internal/logger"
	"github.com/eleven-am/taskdeck/internal/mapper"
	"github.com/eleven-am/taskdeck/internal/model"
	"github.com/eleven-am/taskdeck/internal/remote"
)

// Mode is the outcome of the last LoadData.
type Mode int

const (
	ModeInit Mode = iota
	ModeLocalOnly
	ModeRemote
)

func (m Mode) String() string {
	switch m {
	case ModeLocalOnly:
		return "local-only"
	case ModeRemote:
		return "remote"
	default:
		return "init"
	}
}

// state is the in-memory copy of every collection.
type state struct {
	projects        []model.Project
	accounts        []model.Account
	tasks           []model.Task
	emailTemplates  []model.EmailTemplate
	codeComponents  []model.CodeComponent
	reportTemplates []model.ReportTemplate
	settings        model.Settings
}

type Orchestrator struct {
	remote RemoteStore
	local  LocalStore
	log    logger.Logger
	now    func() time.Time

	// mu guards the fields below. Store calls run outside it, so concurrent
	// mutations of one record resolve in whatever order they finish.
	mu        sync.RWMutex
	mode      Mode
	available bool
	state     state
}

type Option func(*Orchestrator)

func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

func WithLogger(l logger.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

// New wires the two stores. remote may be nil, or report Configured() ==
// false, when no database is set up. The caller owns both stores.
func New(remote RemoteStore, local LocalStore, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		remote: remote,
		local:  local,
		log:    logger.Orchestrator(),
		now:    time.Now,
		state:  state{settings: model.DefaultSettings()},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) remoteConfigured() bool {
	return o.remote != nil && o.remote.Configured()
}

// LoadData fills memory from the remote store when it answers and is
// initialized, otherwise from the local store. Remote problems are logged,
// never returned; an error means the local store failed too.
func (o *Orchestrator) LoadData(ctx context.Context) error {
	start := o.now()
	if o.remoteConfigured() {
		st, err := o.loadRemote(ctx)
		if err == nil {
			o.install(st, ModeRemote, true)
			o.log.Info("loaded data from remote store",
				"projects", len(st.projects), "tasks", len(st.tasks), "took", o.now().Sub(start))
			return nil
		}
		o.log.Warn("remote store unavailable, using local storage", "error", err)
	} else {
		o.log.Warn("no database configured, using local storage")
	}

	st, err := o.loadLocal(ctx)
	if err != nil {
		return fmt.Errorf("failed to load local storage: %w", err)
	}
	o.install(st, ModeLocalOnly, false)
	o.log.Info("loaded data from local storage",
		"projects", len(st.projects), "tasks", len(st.tasks), "took", o.now().Sub(start))
	return nil
}

func (o *Orchestrator) install(st state, mode Mode, available bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = st
	o.mode = mode
	o.available = available
}

func (o *Orchestrator) loadRemote(ctx context.Context) (state, error) {
	if err := o.remote.TestConnection(ctx); err != nil {
		return state{}, fmt.Errorf("connection probe: %w", err)
	}
	if err := o.remote.InitializeTables(ctx); err != nil {
		return state{}, fmt.Errorf("initialize tables: %w", err)
	}

	var st state
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := o.remote.ListProjects(gctx)
		st.projects = mapper.Projects(rows)
		return err
	})
	g.Go(func() error {
		rows, err := o.remote.ListAccounts(gctx)
		st.accounts = mapper.Accounts(rows)
		return err
	})
	g.Go(func() error {
		rows, err := o.remote.ListTasks(gctx)
		st.tasks = mapper.Tasks(rows)
		return err
	})
	g.Go(func() error {
		rows, err := o.remote.ListEmailTemplates(gctx)
		st.emailTemplates = mapper.EmailTemplates(rows)
		return err
	})
	g.Go(func() error {
		rows, err := o.remote.ListCodeComponents(gctx)
		st.codeComponents = mapper.CodeComponents(rows)
		return err
	})
	g.Go(func() error {
		rows, err := o.remote.ListReportTemplates(gctx)
		st.reportTemplates = mapper.ReportTemplates(rows)
		return err
	})
	g.Go(func() error {
		row, err := o.remote.GetSettings(gctx)
		switch {
		case errors.Is(err, model.ErrNotFound):
			st.settings = model.DefaultSettings()
			return nil
		case err != nil:
			return err
		}
		st.settings = mapper.SettingsFromRow(*row)
		return nil
	})
	if err := g.Wait(); err != nil {
		return state{}, err
	}
	return st, nil
}

func (o *Orchestrator) loadLocal(ctx context.Context) (state, error) {
	var (
		st  state
		err error
	)
	if st.projects, err = o.local.ListProjects(ctx); err != nil {
		return state{}, err
	}
	if st.accounts, err = o.local.ListAccounts(ctx); err != nil {
		return state{}, err
	}
	if st.tasks, err = o.local.ListTasks(ctx); err != nil {
		return state{}, err
	}
	if st.emailTemplates, err = o.local.ListEmailTemplates(ctx); err != nil {
		return state{}, err
	}
	if st.codeComponents, err = o.local.ListCodeComponents(ctx); err != nil {
		return state{}, err
	}
	if st.reportTemplates, err = o.local.ListReportTemplates(ctx); err != nil {
		return state{}, err
	}
	if st.settings, err = o.local.GetSettings(ctx); err != nil {
		return state{}, err
	}
	return st, nil
}

// useRemote reports whether mutations should still try the remote store.
func (o *Orchestrator) useRemote() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.available && o.remoteConfigured()
}

// markUnavailable flips the availability flag. It stays false until the next
// LoadData.
func (o *Orchestrator) markUnavailable(op string, err error) {
	o.mu.Lock()
	wasAvailable := o.available
	o.available = false
	o.mu.Unlock()

	switch {
	case wasAvailable && remote.IsConstraintError(err):
		o.log.Error("remote store rejected the write, switching to local storage", "op", op, "error", err)
	case wasAvailable:
		o.log.Warn("remote store failed, switching to local storage", "op", op, "error", err)
	default:
		o.log.Debug("remote store failed", "op", op, "error", err)
	}
}

// mutate runs the remote attempt, then the local fallback. adopt copies the
// in-memory record into the local store when the local store has never seen
// it; it reports whether there was anything to copy.
func mutate[T any](
	ctx context.Context,
	o *Orchestrator,
	op string,
	viaRemote func(context.Context) (T, error),
	viaLocal func(context.Context) (T, error),
	adopt func(context.Context) (bool, error),
) (T, error) {
	var zero T

	if o.useRemote() {
		v, err := viaRemote(ctx)
		if err == nil {
			return v, nil
		}
		if model.IsDomainError(err) {
			return zero, err
		}
		o.markUnavailable(op, err)
	}

	v, err := viaLocal(ctx)
	if err != nil && adopt != nil && errors.Is(err, model.ErrNotFound) {
		adopted, aerr := adopt(ctx)
		if aerr != nil {
			return zero, fmt.Errorf("%s: adopt record into local storage: %w", op, aerr)
		}
		if adopted {
			o.log.Debug("adopted record into local storage", "op", op)
			v, err = viaLocal(ctx)
		}
	}
	if err != nil {
		return zero, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

// none adapts an error-only store call to mutate.
func none(fn func(context.Context) error) func(context.Context) (struct{}, error) {
	return func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	}
}
