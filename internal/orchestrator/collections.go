package orchestrator

import (
	"context"

	"github.com/eleven-am/taskdeck/internal/model"
)

// collection describes how one entity type sits in memory and how a record is
// copied into the local store.
type collection[T any] struct {
	name string
	idOf func(*T) string
	slot func(*state) *[]T
	put  func(LocalStore, context.Context, T) error
}

var (
	projects = collection[model.Project]{
		name: "project",
		idOf: func(p *model.Project) string { return p.ID },
		slot: func(s *state) *[]model.Project { return &s.projects },
		put:  LocalStore.PutProject,
	}
	accounts = collection[model.Account]{
		name: "account",
		idOf: func(a *model.Account) string { return a.ID },
		slot: func(s *state) *[]model.Account { return &s.accounts },
		put:  LocalStore.PutAccount,
	}
	tasks = collection[model.Task]{
		name: "task",
		idOf: func(t *model.Task) string { return t.ID },
		slot: func(s *state) *[]model.Task { return &s.tasks },
		put:  LocalStore.PutTask,
	}
	emailTemplates = collection[model.EmailTemplate]{
		name: "email template",
		idOf: func(e *model.EmailTemplate) string { return e.ID },
		slot: func(s *state) *[]model.EmailTemplate { return &s.emailTemplates },
		put:  LocalStore.PutEmailTemplate,
	}
	codeComponents = collection[model.CodeComponent]{
		name: "code component",
		idOf: func(c *model.CodeComponent) string { return c.ID },
		slot: func(s *state) *[]model.CodeComponent { return &s.codeComponents },
		put:  LocalStore.PutCodeComponent,
	}
	reportTemplates = collection[model.ReportTemplate]{
		name: "report template",
		idOf: func(r *model.ReportTemplate) string { return r.ID },
		slot: func(s *state) *[]model.ReportTemplate { return &s.reportTemplates },
		put:  LocalStore.PutReportTemplate,
	}
)

// insert prepends a created record.
func insert[T any](o *Orchestrator, c collection[T], v T) {
	o.mu.Lock()
	defer o.mu.Unlock()
	items := c.slot(&o.state)
	*items = append([]T{v}, *items...)
}

// replace swaps an updated record in place.
func replace[T any](o *Orchestrator, c collection[T], v T) {
	o.mu.Lock()
	defer o.mu.Unlock()
	items := *c.slot(&o.state)
	id := c.idOf(&v)
	for i := range items {
		if c.idOf(&items[i]) == id {
			items[i] = v
			return
		}
	}
}

// drop filters a deleted record out.
func drop[T any](o *Orchestrator, c collection[T], id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	items := c.slot(&o.state)
	kept := make([]T, 0, len(*items))
	for i := range *items {
		if c.idOf(&(*items)[i]) != id {
			kept = append(kept, (*items)[i])
		}
	}
	*items = kept
}

func lookup[T any](o *Orchestrator, c collection[T], id string) (T, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	for _, v := range *c.slot(&o.state) {
		if c.idOf(&v) == id {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func snapshot[T any](o *Orchestrator, c collection[T]) []T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	items := *c.slot(&o.state)
	out := make([]T, len(items))
	copy(out, items)
	return out
}

// adopter copies the in-memory record with id into the local store. Records
// loaded from the remote store are unknown locally until then.
func adopter[T any](o *Orchestrator, c collection[T], id string) func(context.Context) (bool, error) {
	return func(ctx context.Context) (bool, error) {
		v, ok := lookup(o, c, id)
		if !ok {
			return false, nil
		}
		return true, c.put(o.local, ctx, v)
	}
}
