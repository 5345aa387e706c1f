package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stipple/internal/demo"
)

// demosCommand creates the demos command, listing the built-in diagrams.
func (c *CLI) demosCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demos",
		Short: "List the built-in diagrams",
		RunE: func(cmd *cobra.Command, args []string) error {
			th, err := loadTheme(c.Config.GetString(cfgTheme), "")
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())

			var rows [][]string
			for _, d := range demo.All() {
				s, err := d.Build(th, logger)
				if err != nil {
					return fmt.Errorf("build %s: %w", d.Name, err)
				}
				w, h := s.Size()
				rows = append(rows, []string{
					d.Name,
					fmt.Sprintf("%g×%g", w, h),
					strconv.Itoa(s.GroupCount()),
					strconv.Itoa(s.CrumbCount()),
					d.Description,
				})
			}
			fmt.Println(newTable([]string{"Diagram", "Size", "Groups", "Crumbs", "Description"}, rows))
			printNextStep("Render one", appName+" render automaton --format svg,png")
			return nil
		},
	}
}
