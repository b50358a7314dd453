package notify

import (
	"context"

	"github.com/eleven-am/taskdeck/internal/logger"
	"github.com/eleven-am/taskdeck/internal/model"
	"github.com/eleven-am/taskdeck/internal/orchestrator"
)

// TaskBoard is the part of the orchestrator the notifier drives.
type TaskBoard interface {
	ToggleTask(ctx context.Context, id string) (orchestrator.TaskChange, error)
	MoveTask(ctx context.Context, id string, status model.TaskStatus) (orchestrator.TaskChange, error)
	EmailTemplateByType(typ string) (model.EmailTemplate, bool)
	Settings() model.Settings
}

// Notifier wraps task mutations and mails the recipients when a task
// becomes completed. Mail is best effort.
type Notifier struct {
	board    TaskBoard
	mailer   Mailer
	renderer *Renderer
	to       []string
	log      logger.Logger
}

func NewNotifier(board TaskBoard, mailer Mailer, renderer *Renderer, to []string) *Notifier {
	return &Notifier{
		board:    board,
		mailer:   mailer,
		renderer: renderer,
		to:       to,
		log:      logger.Notify(),
	}
}

func (n *Notifier) ToggleTask(ctx context.Context, id string) (orchestrator.TaskChange, error) {
	change, err := n.board.ToggleTask(ctx, id)
	if err != nil {
		return change, err
	}
	n.notify(ctx, change)
	return change, nil
}

func (n *Notifier) MoveTask(ctx context.Context, id string, status model.TaskStatus) (orchestrator.TaskChange, error) {
	change, err := n.board.MoveTask(ctx, id, status)
	if err != nil {
		return change, err
	}
	n.notify(ctx, change)
	return change, nil
}

func (n *Notifier) notify(ctx context.Context, change orchestrator.TaskChange) {
	if !change.Completed() {
		return
	}
	log := n.log.With("task", change.After.ID)

	if len(n.to) == 0 || n.mailer == nil {
		log.Debug("no email recipients configured")
		return
	}
	if !n.board.Settings().NotificationEnabled("email") {
		log.Debug("email notifications disabled in settings")
		return
	}

	var tmpl *model.EmailTemplate
	if t, ok := n.board.EmailTemplateByType(model.EmailTemplateTaskCompleted); ok {
		tmpl = &t
	}

	msg, err := n.renderer.Render(change.After, tmpl)
	if err != nil {
		log.Warn("failed to render completion email", "error", err)
		return
	}
	msg.To = n.to

	if err := n.mailer.Send(ctx, msg); err != nil {
		log.Warn("failed to send completion email", "error", err)
		return
	}
	log.Info("sent completion email", "recipients", len(n.to))
}
