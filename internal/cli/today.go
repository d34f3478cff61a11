package cli

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func addToday(topLevel *cobra.Command, v *viper.Viper) {
	var showID bool

	cmd := &cobra.Command{
		Use:     "today",
		Aliases: []string{"ls", "list"},
		Short:   "show today's tasks, next up and per-pet progress",
		Example: `
petcare today
petcare today --ids
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(v, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			s.printer.ShowID = showID

			ctx := cmd.Context()
			proj, err := s.engine.Refresh(ctx)
			if err != nil {
				return s.showOffline(ctx, err)
			}

			_, pets := s.petsByID(ctx)
			s.printer.Projection(proj, pets, time.Now())
			return nil
		},
	}
	cmd.Flags().BoolVar(&showID, "ids", false, "print reminder ids")

	topLevel.AddCommand(cmd)
}
