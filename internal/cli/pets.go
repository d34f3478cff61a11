package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pet-care-tasks/internal/carousel"
	"pet-care-tasks/internal/tasks"
)

func addPets(topLevel *cobra.Command, v *viper.Viper) {
	var index int

	cmd := &cobra.Command{
		Use:   "pets",
		Short: "show the pet carousel with today's progress per pet",
		Example: `
petcare pets
petcare pets --index 2
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(v, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			list, _ := s.petsByID(ctx)

			stats := map[string]tasks.PetStats{}
			if proj, err := s.engine.Refresh(ctx); err == nil {
				stats = proj.StatsByPet
			} else {
				s.printer.Error("could not refresh: " + err.Error())
			}

			sel := carousel.New(carousel.ItemCountForPets(len(list)), func(i int) {
				s.log.Debug("carousel selection changed", map[string]any{"index": i})
			})
			// el dueño externo arranca en la mascota primaria
			for i, p := range list {
				if p.IsPrimary {
					sel.SetExternal(i)
					break
				}
			}
			if cmd.Flags().Changed("index") {
				sel.GoTo(index)
			}

			s.printer.Carousel(list, sel, stats)
			if sel.IsAddSlot(sel.CurrentIndex()) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "\nuse the API (POST /pets) to register a new pet")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&index, "index", 0, "select a carousel position (clamped)")

	topLevel.AddCommand(cmd)
}
