package orchestrator

import (
	"context"

	"github.com/eleven-am/taskdeck/internal/mapper"
	"github.com/eleven-am/taskdeck/internal/model"
)

func (o *Orchestrator) AddAccount(ctx context.Context, in model.AccountInput) (model.Account, error) {
	if err := in.Validate(); err != nil {
		return model.Account{}, err
	}
	a, err := mutate(ctx, o, "add account",
		func(ctx context.Context) (model.Account, error) {
			create, err := mapper.AccountCreateToRemote(in)
			if err != nil {
				return model.Account{}, err
			}
			row, err := o.remote.CreateAccount(ctx, create)
			if err != nil {
				return model.Account{}, err
			}
			return mapper.AccountFromRow(*row), nil
		},
		func(ctx context.Context) (model.Account, error) {
			return o.local.CreateAccount(ctx, in)
		},
		nil,
	)
	if err != nil {
		return model.Account{}, err
	}
	insert(o, accounts, a)
	return a, nil
}

func (o *Orchestrator) EditAccount(ctx context.Context, id string, patch model.AccountPatch) (model.Account, error) {
	if err := patch.Validate(); err != nil {
		return model.Account{}, err
	}
	a, err := mutate(ctx, o, "edit account",
		func(ctx context.Context) (model.Account, error) {
			rid, err := mapper.ParseID(id)
			if err != nil {
				return model.Account{}, err
			}
			row, err := o.remote.UpdateAccount(ctx, rid, mapper.AccountPatchToRemote(patch))
			if err != nil {
				return model.Account{}, err
			}
			return mapper.AccountFromRow(*row), nil
		},
		func(ctx context.Context) (model.Account, error) {
			return o.local.UpdateAccount(ctx, id, patch)
		},
		adopter(o, accounts, id),
	)
	if err != nil {
		return model.Account{}, err
	}
	replace(o, accounts, a)
	return a, nil
}

func (o *Orchestrator) RemoveAccount(ctx context.Context, id string) error {
	_, err := mutate(ctx, o, "remove account",
		func(ctx context.Context) (struct{}, error) {
			rid, err := mapper.ParseID(id)
			if err != nil {
				return struct{}{}, err
			}
			return struct{}{}, o.remote.DeleteAccount(ctx, rid)
		},
		none(func(ctx context.Context) error { return o.local.DeleteAccount(ctx, id) }),
		adopter(o, accounts, id),
	)
	if err != nil {
		return err
	}
	drop(o, accounts, id)
	return nil
}
