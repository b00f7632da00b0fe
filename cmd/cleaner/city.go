package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obahii/data-cleaning/internal/cin"
	"github.com/obahii/data-cleaning/internal/model"
	"github.com/obahii/data-cleaning/internal/rules"
)

// newCityCmd resolves IDs the way a cleaning run would: an invalid ID is
// corrected first, then looked up.
func newCityCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "city <cin>...",
		Short: "Print the city each national ID resolves to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, id := range args {
				v := model.String(id)
				if !rules.Validate(model.ColCIN, v) {
					v = rules.Correct(model.ColCIN, v)
				}
				city, ok := cin.CityFor(v)
				if !ok {
					city = "-"
				}
				fmt.Fprintf(out, "%s\t%s\n", id, city)
			}
			return nil
		},
	}
}
