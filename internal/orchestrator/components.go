package orchestrator

import (
	"context"

	"github.com/eleven-am/taskdeck/internal/mapper"
	"github.com/eleven-am/taskdeck/internal/model"
)

func (o *Orchestrator) AddCodeComponent(ctx context.Context, in model.CodeComponentInput) (model.CodeComponent, error) {
	if err := in.Validate(); err != nil {
		return model.CodeComponent{}, err
	}
	c, err := mutate(ctx, o, "add code component",
		func(ctx context.Context) (model.CodeComponent, error) {
			create, err := mapper.CodeComponentCreateToRemote(in)
			if err != nil {
				return model.CodeComponent{}, err
			}
			row, err := o.remote.CreateCodeComponent(ctx, create)
			if err != nil {
				return model.CodeComponent{}, err
			}
			return mapper.CodeComponentFromRow(*row), nil
		},
		func(ctx context.Context) (model.CodeComponent, error) {
			return o.local.CreateCodeComponent(ctx, in)
		},
		nil,
	)
	if err != nil {
		return model.CodeComponent{}, err
	}
	insert(o, codeComponents, c)
	return c, nil
}

func (o *Orchestrator) EditCodeComponent(ctx context.Context, id string, patch model.CodeComponentPatch) (model.CodeComponent, error) {
	if err := patch.Validate(); err != nil {
		return model.CodeComponent{}, err
	}
	c, err := mutate(ctx, o, "edit code component",
		func(ctx context.Context) (model.CodeComponent, error) {
			rid, err := mapper.ParseID(id)
			if err != nil {
				return model.CodeComponent{}, err
			}
			update, err := mapper.CodeComponentPatchToRemote(patch)
			if err != nil {
				return model.CodeComponent{}, err
			}
			row, err := o.remote.UpdateCodeComponent(ctx, rid, update)
			if err != nil {
				return model.CodeComponent{}, err
			}
			return mapper.CodeComponentFromRow(*row), nil
		},
		func(ctx context.Context) (model.CodeComponent, error) {
			return o.local.UpdateCodeComponent(ctx, id, patch)
		},
		adopter(o, codeComponents, id),
	)
	if err != nil {
		return model.CodeComponent{}, err
	}
	replace(o, codeComponents, c)
	return c, nil
}

func (o *Orchestrator) RemoveCodeComponent(ctx context.Context, id string) error {
	_, err := mutate(ctx, o, "remove code component",
		func(ctx context.Context) (struct{}, error) {
			rid, err := mapper.ParseID(id)
			if err != nil {
				return struct{}{}, err
			}
			return struct{}{}, o.remote.DeleteCodeComponent(ctx, rid)
		},
		none(func(ctx context.Context) error { return o.local.DeleteCodeComponent(ctx, id) }),
		adopter(o, codeComponents, id),
	)
	if err != nil {
		return err
	}
	drop(o, codeComponents, id)
	return nil
}
