package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eleven-am/taskdeck/internal/model"
)

func newSettingsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change user settings",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				settings := s.data.Settings()
				out := cmd.OutOrStdout()
				if opts.jsonOut {
					return writeJSON(out, settings)
				}
				fmt.Fprintf(out, "Language:      %s\n", settings.Language)
				fmt.Fprintf(out, "Theme:         %s\n", settings.Theme)
				fmt.Fprintf(out, "Notifications: %s\n", compactJSON(settings.Notifications))
				fmt.Fprintf(out, "Colors:        %s\n", compactJSON(settings.CustomColors))
				return nil
			})
		},
	}

	var language, theme, notifications, colors string
	set := &cobra.Command{
		Use:   "set",
		Short: "Change settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.SettingsPatch
			flags := cmd.Flags()
			if flags.Changed("language") {
				patch.Language = &language
			}
			if flags.Changed("theme") {
				patch.Theme = &theme
			}
			if flags.Changed("notifications") {
				patch.Notifications = json.RawMessage(notifications)
			}
			if flags.Changed("colors") {
				patch.CustomColors = json.RawMessage(colors)
			}
			return opts.withSession(cmd.Context(), func(s *session) error {
				settings, err := s.data.UpdateSettings(cmd.Context(), patch)
				if err != nil {
					return err
				}
				return opts.emit(cmd.OutOrStdout(), settings, "Settings updated")
			})
		},
	}
	set.Flags().StringVar(&language, "language", "", "Language code")
	set.Flags().StringVar(&theme, "theme", "", "Theme (light, dark)")
	set.Flags().StringVar(&notifications, "notifications", "", `Notification switches as JSON, e.g. {"email":false}`)
	set.Flags().StringVar(&colors, "colors", "", "Custom colors as JSON")

	cmd.AddCommand(show, set)
	return cmd
}

func compactJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "{}"
	}
	return string(raw)
}
