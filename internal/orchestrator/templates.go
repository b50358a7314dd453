package orchestrator

import (
	"context"
	"fmt"

	"github.com/eleven-am/taskdeck/internal/mapper"
	"github.com/eleven-am/taskdeck/internal/model"
)

func (o *Orchestrator) AddEmailTemplate(ctx context.Context, in model.EmailTemplateInput) (model.EmailTemplate, error) {
	if err := in.Validate(); err != nil {
		return model.EmailTemplate{}, err
	}
	e, err := mutate(ctx, o, "add email template",
		func(ctx context.Context) (model.EmailTemplate, error) {
			row, err := o.remote.CreateEmailTemplate(ctx, mapper.EmailTemplateCreateToRemote(in))
			if err != nil {
				return model.EmailTemplate{}, err
			}
			return mapper.EmailTemplateFromRow(*row), nil
		},
		func(ctx context.Context) (model.EmailTemplate, error) {
			return o.local.CreateEmailTemplate(ctx, in)
		},
		nil,
	)
	if err != nil {
		return model.EmailTemplate{}, err
	}
	insert(o, emailTemplates, e)
	return e, nil
}

func (o *Orchestrator) EditEmailTemplate(ctx context.Context, id string, patch model.EmailTemplatePatch) (model.EmailTemplate, error) {
	if err := patch.Validate(); err != nil {
		return model.EmailTemplate{}, err
	}
	e, err := mutate(ctx, o, "edit email template",
		func(ctx context.Context) (model.EmailTemplate, error) {
			rid, err := mapper.ParseID(id)
			if err != nil {
				return model.EmailTemplate{}, err
			}
			row, err := o.remote.UpdateEmailTemplate(ctx, rid, mapper.EmailTemplatePatchToRemote(patch))
			if err != nil {
				return model.EmailTemplate{}, err
			}
			return mapper.EmailTemplateFromRow(*row), nil
		},
		func(ctx context.Context) (model.EmailTemplate, error) {
			return o.local.UpdateEmailTemplate(ctx, id, patch)
		},
		adopter(o, emailTemplates, id),
	)
	if err != nil {
		return model.EmailTemplate{}, err
	}
	replace(o, emailTemplates, e)
	return e, nil
}

func (o *Orchestrator) RemoveEmailTemplate(ctx context.Context, id string) error {
	_, err := mutate(ctx, o, "remove email template",
		func(ctx context.Context) (struct{}, error) {
			rid, err := mapper.ParseID(id)
			if err != nil {
				return struct{}{}, err
			}
			return struct{}{}, o.remote.DeleteEmailTemplate(ctx, rid)
		},
		none(func(ctx context.Context) error { return o.local.DeleteEmailTemplate(ctx, id) }),
		adopter(o, emailTemplates, id),
	)
	if err != nil {
		return err
	}
	drop(o, emailTemplates, id)
	return nil
}

func (o *Orchestrator) AddReportTemplate(ctx context.Context, in model.ReportTemplateInput) (model.ReportTemplate, error) {
	if err := in.Validate(); err != nil {
		return model.ReportTemplate{}, err
	}
	r, err := mutate(ctx, o, "add report template",
		func(ctx context.Context) (model.ReportTemplate, error) {
			row, err := o.remote.CreateReportTemplate(ctx, mapper.ReportTemplateCreateToRemote(in))
			if err != nil {
				return model.ReportTemplate{}, err
			}
			return mapper.ReportTemplateFromRow(*row), nil
		},
		func(ctx context.Context) (model.ReportTemplate, error) {
			return o.local.CreateReportTemplate(ctx, in)
		},
		nil,
	)
	if err != nil {
		return model.ReportTemplate{}, err
	}
	insert(o, reportTemplates, r)
	return r, nil
}

func (o *Orchestrator) EditReportTemplate(ctx context.Context, id string, patch model.ReportTemplatePatch) (model.ReportTemplate, error) {
	if err := patch.Validate(); err != nil {
		return model.ReportTemplate{}, err
	}
	r, err := mutate(ctx, o, "edit report template",
		func(ctx context.Context) (model.ReportTemplate, error) {
			rid, err := mapper.ParseID(id)
			if err != nil {
				return model.ReportTemplate{}, err
			}
			row, err := o.remote.UpdateReportTemplate(ctx, rid, mapper.ReportTemplatePatchToRemote(patch))
			if err != nil {
				return model.ReportTemplate{}, err
			}
			return mapper.ReportTemplateFromRow(*row), nil
		},
		func(ctx context.Context) (model.ReportTemplate, error) {
			return o.local.UpdateReportTemplate(ctx, id, patch)
		},
		adopter(o, reportTemplates, id),
	)
	if err != nil {
		return model.ReportTemplate{}, err
	}
	replace(o, reportTemplates, r)
	return r, nil
}

// RemoveReportTemplate refuses default templates before touching either
// store; both stores enforce the same rule.
func (o *Orchestrator) RemoveReportTemplate(ctx context.Context, id string) error {
	if r, ok := lookup(o, reportTemplates, id); ok && r.IsDefault {
		return fmt.Errorf("remove report template %s: %w", id, model.ErrDefaultTemplate)
	}
	_, err := mutate(ctx, o, "remove report template",
		func(ctx context.Context) (struct{}, error) {
			rid, err := mapper.ParseID(id)
			if err != nil {
				return struct{}{}, err
			}
			return struct{}{}, o.remote.DeleteReportTemplate(ctx, rid)
		},
		none(func(ctx context.Context) error { return o.local.DeleteReportTemplate(ctx, id) }),
		adopter(o, reportTemplates, id),
	)
	if err != nil {
		return err
	}
	drop(o, reportTemplates, id)
	return nil
}
