package orchestrator

import (
	"context"

	"github.com/eleven-am/taskdeck/internal/mapper"
	"github.com/eleven-am/taskdeck/internal/model"
)

func (o *Orchestrator) AddProject(ctx context.Context, in model.ProjectInput) (model.Project, error) {
	if err := in.Validate(); err != nil {
		return model.Project{}, err
	}
	p, err := mutate(ctx, o, "add project",
		func(ctx context.Context) (model.Project, error) {
			row, err := o.remote.CreateProject(ctx, mapper.ProjectCreateToRemote(in))
			if err != nil {
				return model.Project{}, err
			}
			return mapper.ProjectFromRow(*row), nil
		},
		func(ctx context.Context) (model.Project, error) {
			return o.local.CreateProject(ctx, in)
		},
		nil,
	)
	if err != nil {
		return model.Project{}, err
	}
	insert(o, projects, p)
	return p, nil
}

func (o *Orchestrator) EditProject(ctx context.Context, id string, patch model.ProjectPatch) (model.Project, error) {
	if err := patch.Validate(); err != nil {
		return model.Project{}, err
	}
	p, err := mutate(ctx, o, "edit project",
		func(ctx context.Context) (model.Project, error) {
			rid, err := mapper.ParseID(id)
			if err != nil {
				return model.Project{}, err
			}
			row, err := o.remote.UpdateProject(ctx, rid, mapper.ProjectPatchToRemote(patch))
			if err != nil {
				return model.Project{}, err
			}
			return mapper.ProjectFromRow(*row), nil
		},
		func(ctx context.Context) (model.Project, error) {
			return o.local.UpdateProject(ctx, id, patch)
		},
		adopter(o, projects, id),
	)
	if err != nil {
		return model.Project{}, err
	}
	replace(o, projects, p)
	return p, nil
}

// RemoveProject deletes a project. Its accounts go with it; its tasks and
// code components stay, detached.
func (o *Orchestrator) RemoveProject(ctx context.Context, id string) error {
	_, err := mutate(ctx, o, "remove project",
		func(ctx context.Context) (struct{}, error) {
			rid, err := mapper.ParseID(id)
			if err != nil {
				return struct{}{}, err
			}
			return struct{}{}, o.remote.DeleteProject(ctx, rid)
		},
		none(func(ctx context.Context) error { return o.local.DeleteProject(ctx, id) }),
		adopter(o, projects, id),
	)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	st := &o.state
	kept := make([]model.Project, 0, len(st.projects))
	for _, p := range st.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	st.projects = kept

	accs := make([]model.Account, 0, len(st.accounts))
	for _, a := range st.accounts {
		if a.ProjectID != id {
			accs = append(accs, a)
		}
	}
	st.accounts = accs

	for i := range st.tasks {
		if st.tasks[i].ProjectID != nil && *st.tasks[i].ProjectID == id {
			st.tasks[i].ProjectID = nil
		}
	}
	for i := range st.codeComponents {
		if st.codeComponents[i].ProjectID != nil && *st.codeComponents[i].ProjectID == id {
			st.codeComponents[i].ProjectID = nil
		}
	}
	return nil
}
