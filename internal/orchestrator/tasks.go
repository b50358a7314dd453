package orchestrator

import (
	"context"
	"fmt"

	"github.com/eleven-am/taskdeck/internal/mapper"
	"github.com/eleven-am/taskdeck/internal/model"
)

// TaskChange is the before and after of a task mutation.
type TaskChange struct {
	Before model.Task
	After  model.Task
}

// Completed reports whether the change moved the task into completion.
func (c TaskChange) Completed() bool {
	return !c.Before.Completed && c.After.Completed
}

func (o *Orchestrator) AddTask(ctx context.Context, in model.TaskInput) (model.Task, error) {
	if err := in.Validate(); err != nil {
		return model.Task{}, err
	}
	in = in.Normalize()
	t, err := mutate(ctx, o, "add task",
		func(ctx context.Context) (model.Task, error) {
			create, err := mapper.TaskCreateToRemote(in)
			if err != nil {
				return model.Task{}, err
			}
			row, err := o.remote.CreateTask(ctx, create)
			if err != nil {
				return model.Task{}, err
			}
			return mapper.TaskFromRow(*row), nil
		},
		func(ctx context.Context) (model.Task, error) {
			return o.local.CreateTask(ctx, in)
		},
		nil,
	)
	if err != nil {
		return model.Task{}, err
	}
	insert(o, tasks, t)
	return t, nil
}

// EditTask applies patch as given. Status and Completed are not reconciled;
// use ToggleTask or MoveTask for that.
func (o *Orchestrator) EditTask(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error) {
	if err := patch.Validate(); err != nil {
		return model.Task{}, err
	}
	t, err := mutate(ctx, o, "edit task",
		func(ctx context.Context) (model.Task, error) {
			rid, err := mapper.ParseID(id)
			if err != nil {
				return model.Task{}, err
			}
			update, err := mapper.TaskPatchToRemote(patch)
			if err != nil {
				return model.Task{}, err
			}
			row, err := o.remote.UpdateTask(ctx, rid, update)
			if err != nil {
				return model.Task{}, err
			}
			return mapper.TaskFromRow(*row), nil
		},
		func(ctx context.Context) (model.Task, error) {
			return o.local.UpdateTask(ctx, id, patch)
		},
		adopter(o, tasks, id),
	)
	if err != nil {
		return model.Task{}, err
	}
	replace(o, tasks, t)
	return t, nil
}

// ToggleTask flips completion, carrying the status along: done when turned
// on, back to todo when a done task is turned off.
func (o *Orchestrator) ToggleTask(ctx context.Context, id string) (TaskChange, error) {
	before, ok := lookup(o, tasks, id)
	if !ok {
		return TaskChange{}, fmt.Errorf("toggle task %s: %w", id, model.ErrNotFound)
	}
	after, err := o.EditTask(ctx, id, model.TogglePatch(before))
	if err != nil {
		return TaskChange{}, err
	}
	return TaskChange{Before: before, After: after}, nil
}

// MoveTask places a task in a board column; completion follows the column.
func (o *Orchestrator) MoveTask(ctx context.Context, id string, status model.TaskStatus) (TaskChange, error) {
	if !status.Valid() {
		return TaskChange{}, model.ValidationErrors{{Field: "status", Message: "must be one of todo, in-progress, done"}}
	}
	before, ok := lookup(o, tasks, id)
	if !ok {
		return TaskChange{}, fmt.Errorf("move task %s: %w", id, model.ErrNotFound)
	}
	after, err := o.EditTask(ctx, id, model.MovePatch(status))
	if err != nil {
		return TaskChange{}, err
	}
	return TaskChange{Before: before, After: after}, nil
}

func (o *Orchestrator) RemoveTask(ctx context.Context, id string) error {
	_, err := mutate(ctx, o, "remove task",
		func(ctx context.Context) (struct{}, error) {
			rid, err := mapper.ParseID(id)
			if err != nil {
				return struct{}{}, err
			}
			return struct{}{}, o.remote.DeleteTask(ctx, rid)
		},
		none(func(ctx context.Context) error { return o.local.DeleteTask(ctx, id) }),
		adopter(o, tasks, id),
	)
	if err != nil {
		return err
	}
	drop(o, tasks, id)
	return nil
}
