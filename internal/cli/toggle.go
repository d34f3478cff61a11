package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pet-care-tasks/internal/tasks"
)

func addToggle(topLevel *cobra.Command, v *viper.Viper) {
	cmd := &cobra.Command{
		Use:     "toggle <reminder id>...",
		Aliases: []string{"done", "complete"},
		Short:   "toggle completion of one or more reminders",
		Example: `
petcare toggle 3f1c9a
petcare done 3f1c9a 77b2e0
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a reminder id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(v, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if _, err := s.engine.Refresh(ctx); err != nil {
				return s.showOffline(ctx, err)
			}

			var failed []error
			for _, id := range args {
				if _, ok := s.engine.Store().Get(id); !ok {
					s.printer.Error(fmt.Sprintf("%s: %v", id, tasks.ErrNotFound))
					continue
				}
				if _, err := s.engine.ToggleCompletion(ctx, id); err != nil {
					s.printer.Error(err.Error())
					failed = append(failed, err)
				}
			}

			_, pets := s.petsByID(ctx)
			s.printer.Projection(s.engine.Projection(), pets, time.Now())
			return errors.Join(failed...)
		},
	}

	topLevel.AddCommand(cmd)
}
