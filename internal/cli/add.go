package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pet-care-tasks/internal/ports/remote"
)

func addAdd(topLevel *cobra.Command, v *viper.Viper) {
	var (
		petID    string
		at       string
		due      string
		priority string
		tags     []string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "create a reminder for a pet",
		Example: `
petcare add --pet 8d1e "Evening walk" --at 18:30 --tag walk
petcare add --pet 8d1e "Heartworm pill" --due 2026-10-20T09:00:00Z --priority high --tag medication
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			if strings.TrimSpace(petID) == "" {
				return errors.New("--pet is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			in := remote.CreateReminderInput{
				Title: strings.Join(args, " "),
				Tags:  tags,
			}

			var ok bool
			if in.Priority, ok = remote.ParsePriority(priority); !ok {
				return fmt.Errorf("unknown priority %q", priority)
			}
			var err error
			if in.ScheduledAt, err = normalizeTime(at, now); err != nil {
				return fmt.Errorf("--at: %w", err)
			}
			if in.DueAt, err = normalizeTime(due, now); err != nil {
				return fmt.Errorf("--due: %w", err)
			}

			s, err := newSession(v, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			created, proj, err := s.engine.CreateReminder(ctx, petID, in)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s\n\n", created.ID)
			_, pets := s.petsByID(ctx)
			s.printer.Projection(proj, pets, now)
			return nil
		},
	}

	cmd.Flags().StringVar(&petID, "pet", "", "pet id")
	cmd.Flags().StringVar(&at, "at", "", "scheduled time (HH:MM today or RFC3339)")
	cmd.Flags().StringVar(&due, "due", "", "due time (HH:MM today or RFC3339)")
	cmd.Flags().StringVar(&priority, "priority", "medium", "low|medium|high|urgent")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag (first one picks the icon)")

	topLevel.AddCommand(cmd)
}

// normalizeTime acepta lo mismo que Timestamp.Instant y lo manda como RFC3339.
func normalizeTime(s string, now time.Time) (*remote.Timestamp, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, ok := remote.Timestamp(s).Instant(now)
	if !ok {
		return nil, fmt.Errorf("cannot parse %q", s)
	}
	return remote.TimestampOf(t), nil
}
