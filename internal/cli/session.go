package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/eleven-am/taskdeck/internal/config"
	"github.com/eleven-am/taskdeck/internal/local"
	"github.com/eleven-am/taskdeck/internal/logger"
	"github.com/eleven-am/taskdeck/internal/notify"
	"github.com/eleven-am/taskdeck/internal/orchestrator"
	"github.com/eleven-am/taskdeck/internal/remote"
)

// session owns both stores for the life of one command.
type session struct {
	remote   *remote.Store
	local    *local.Store
	data     *orchestrator.Orchestrator
	notifier *notify.Notifier
}

func remoteConfig(cfg *config.Config) *remote.Config {
	rcfg := remote.NewConfig(cfg.Database.URL)
	if cfg.Database.MaxConnections > 0 {
		rcfg.MaxOpenConns = cfg.Database.MaxConnections
		rcfg.MaxIdleConns = cfg.Database.MaxConnections / 2
	}
	rcfg.StatementTimeout = cfg.Database.StatementTimeout
	return rcfg
}

// openSession opens both stores and loads data.
func (o *rootOptions) openSession(ctx context.Context) (*session, error) {
	rs, err := remote.Open(remoteConfig(o.cfg))
	if err != nil {
		return nil, err
	}

	kv, err := local.OpenSQLite(ctx, o.cfg.Local.Path)
	if err != nil {
		rs.Close()
		return nil, err
	}
	ls := local.New(kv)

	var primary orchestrator.RemoteStore
	if rs.Configured() {
		primary = rs
	}
	data := orchestrator.New(primary, ls)
	if err := data.LoadData(ctx); err != nil {
		ls.Close()
		rs.Close()
		return nil, err
	}

	mailer, err := newMailer(o.cfg)
	if err != nil {
		ls.Close()
		rs.Close()
		return nil, err
	}
	renderer, err := notify.NewRenderer(o.cfg.Email.Layout)
	if err != nil {
		ls.Close()
		rs.Close()
		return nil, err
	}

	return &session{
		remote:   rs,
		local:    ls,
		data:     data,
		notifier: notify.NewNotifier(data, mailer, renderer, o.cfg.Email.To),
	}, nil
}

func (s *session) Close() error {
	return errors.Join(s.local.Close(), s.remote.Close())
}

func newMailer(cfg *config.Config) (notify.Mailer, error) {
	switch cfg.Email.Provider {
	case config.ProviderResend:
		return notify.NewResendMailer(cfg.Email.ResendAPIKey, cfg.Email.From), nil
	case config.ProviderSMTP:
		return notify.NewSMTPMailer(notify.SMTPConfig{
			Host:     cfg.Email.SMTPHost,
			Port:     cfg.Email.SMTPPort,
			User:     cfg.Email.SMTPUser,
			Password: cfg.Email.SMTPPassword,
			From:     cfg.Email.From,
		}), nil
	case config.ProviderLog, "":
		return notify.NewLogMailer(logger.Notify()), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Email.Provider)
	}
}

// withSession runs fn against an open session and closes it afterwards.
func (o *rootOptions) withSession(ctx context.Context, fn func(*session) error) error {
	s, err := o.openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}
