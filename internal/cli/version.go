package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func addVersion(topLevel *cobra.Command) {
	topLevel.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "print the client version",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "petcare", Version)
		},
	})
}
