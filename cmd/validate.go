package cmd

import (
	"errors"
	"fmt"

	"github.com/smazurov/streamcaps/internal/config"
	"github.com/smazurov/streamcaps/internal/validation"
	"github.com/spf13/cobra"
)

// ErrInvalidSessions is returned when at least one session fails validation.
var ErrInvalidSessions = errors.New("invalid sessions")

// CreateValidateCmd creates the validate command.
func CreateValidateCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "validate <sessions.toml>",
		Short: "Validate session definitions against local devices and the encoder catalog",
		Long: `Checks every session of a sessions file against the encoder catalog and the capture ` +
			`devices present now, printing each violation with the values that would be accepted. ` +
			`Nothing is opened.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := config.LoadSessions(args[0])
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				return fmt.Errorf("%s: %w", args[0], config.ErrNoSessions)
			}

			resolver, catalog, err := loadResolver(catalogPath)
			if err != nil {
				return err
			}
			validator := validation.New(resolver, catalog)

			out := cmd.OutOrStdout()
			invalid := 0
			for _, s := range sessions {
				report, err := validator.Validate(s)
				if err != nil {
					fmt.Fprintf(out, "%s: error: %v\n", s.ID, err)
					invalid++
					continue
				}
				if report.Valid {
					fmt.Fprintf(out, "%s: ok\n", s.ID)
					continue
				}
				invalid++
				fmt.Fprintf(out, "%s: invalid\n", s.ID)
				for _, v := range report.Violations {
					fmt.Fprintf(out, "  %s: %s", v.Field, v.Message)
					if v.Allowed != "" {
						fmt.Fprintf(out, " (allowed: %s)", v.Allowed)
					}
					fmt.Fprintln(out)
				}
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d: %w", invalid, len(sessions), ErrInvalidSessions)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Encoder catalog file (default: built-in)")
	return cmd
}
