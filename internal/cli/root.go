// Package cli implements the taskdeck command-line interface.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eleven-am/taskdeck/internal/config"
	"github.com/eleven-am/taskdeck/internal/logger"
	"github.com/eleven-am/taskdeck/pkg/taskdeck"
)

// rootOptions carries the global flags and the resolved configuration into
// every subcommand.
type rootOptions struct {
	configFile  string
	databaseURL string
	localPath   string
	localOnly   bool
	debug       bool
	verbose     bool
	jsonOut     bool

	cfg *config.Config
}

func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "taskdeck",
		Short: "taskdeck - projects, tasks and templates with offline fallback",
		Long: `taskdeck keeps projects, credentials, tasks, code components and report
templates in Postgres, and keeps working from a local store when the
database is unreachable.

Quick start:
  taskdeck init --url postgres://...   Write taskdeck.yaml
  taskdeck db init                     Create the tables
  taskdeck task add "Draft proposal"       Add a task
  taskdeck task board                  Show the Kanban board`,
		Version:       taskdeck.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default: taskdeck.yaml)")
	flags.StringVar(&opts.databaseURL, "url", "", "database connection URL")
	flags.StringVar(&opts.localPath, "path", "", "local storage file")
	flags.BoolVar(&opts.localOnly, "local", false, "never contact the database")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug output")
	flags.BoolVar(&opts.verbose, "verbose", false, "enable verbose output")
	flags.BoolVar(&opts.jsonOut, "json", false, "output as JSON")

	rootCmd.AddCommand(newInitCmd(opts))
	rootCmd.AddCommand(newDBCmd(opts))
	rootCmd.AddCommand(newProjectCmd(opts))
	rootCmd.AddCommand(newAccountCmd(opts))
	rootCmd.AddCommand(newTaskCmd(opts))
	rootCmd.AddCommand(newComponentCmd(opts))
	rootCmd.AddCommand(newTemplateCmd(opts))
	rootCmd.AddCommand(newSettingsCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// resolve loads the config file, then lets flags and environment override it:
// flag, then TASKDECK_* or the conventional variable, then the file.
func (o *rootOptions) resolve(cmd *cobra.Command) error {
	level := logger.LevelNormal
	switch {
	case o.verbose:
		level = logger.LevelVerbose
	case o.debug:
		level = logger.LevelDebug
	}
	logger.SetOutput(cmd.ErrOrStderr(), level)

	cfg, err := config.Load(o.configFile)
	if err != nil {
		return err
	}

	v := viper.New()
	_ = v.BindEnv("database.url", "TASKDECK_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("local.path", "TASKDECK_LOCAL_PATH")
	_ = v.BindEnv("email.resend_api_key", "TASKDECK_RESEND_API_KEY", "RESEND_API_KEY")
	_ = v.BindEnv("email.smtp_password", "TASKDECK_SMTP_PASSWORD")
	_ = v.BindPFlag("database.url", cmd.Flags().Lookup("url"))
	_ = v.BindPFlag("local.path", cmd.Flags().Lookup("path"))

	if s := v.GetString("database.url"); s != "" {
		cfg.Database.URL = s
	}
	if s := v.GetString("local.path"); s != "" {
		cfg.Local.Path = s
	}
	if s := v.GetString("email.resend_api_key"); s != "" {
		cfg.Email.ResendAPIKey = s
	}
	if s := v.GetString("email.smtp_password"); s != "" {
		cfg.Email.SMTPPassword = s
	}
	if o.localOnly {
		cfg.Database.URL = ""
	}

	o.cfg = cfg
	logger.CLI().Debug("configuration resolved",
		"config", o.configFile, "database", cfg.Database.URL != "", "local", cfg.Local.Path)
	return nil
}
