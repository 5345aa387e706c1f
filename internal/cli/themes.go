package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stipple/pkg/theme"
	"github.com/matzehuels/stipple/pkg/theme/themefile"
)

// themesCommand creates the themes command, listing built-in themes.
func (c *CLI) themesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List built-in themes",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(themefile.BuiltinNames()))
			for _, name := range themefile.BuiltinNames() {
				th, err := themefile.Builtin(name)
				if err != nil {
					return err
				}
				rows = append(rows, []string{
					name,
					strconv.Itoa(len(th.Styles()) - 1),
					joinOrDash(th.Variations()),
					joinOrDash(th.GradientNames()),
				})
			}
			fmt.Println(newTable([]string{"Theme", "Styles", "Variations", "Gradients"}, rows))
			printNextStep("Inspect a theme", appName+" themes show classic --variation dark")
			return nil
		},
	}
	cmd.AddCommand(c.themesShowCommand())
	return cmd
}

// themesShowCommand prints every style of a theme as resolved under a variation.
func (c *CLI) themesShowCommand() *cobra.Command {
	var variation string
	cmd := &cobra.Command{
		Use:   "show <theme>",
		Short: "Show the resolved styles of a theme",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return completeThemes(cmd, args, toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			th, err := loadTheme(args[0], variation)
			if err != nil {
				return err
			}
			printKeyValue("Theme", th.Name)
			printKeyValue("Variation", orDash(strings.Join(th.Active(), ".")))
			printNewline()
			fmt.Println(styleTable(th))
			return nil
		},
	}
	cmd.Flags().StringVar(&variation, "variation", "", "dotted variation path")
	return cmd
}

// styleTable renders one row per style with its resolved paint.
func styleTable(th *theme.Theme) string {
	var rows [][]string
	for _, st := range th.Styles() {
		rows = append(rows, []string{
			st.Name,
			strokeCell(st),
			fillCell(st),
			markerCell(st),
			fontCell(st),
		})
	}
	return newTable([]string{"Style", "Stroke", "Fill", "Markers", "Font"}, rows)
}

func strokeCell(st *theme.Style) string {
	if st.Stroke == nil {
		return "-"
	}
	return fmt.Sprintf("%s %gpx", st.Stroke.Paint, st.Stroke.Width)
}

func fillCell(st *theme.Style) string {
	if st.Fill == nil {
		return "-"
	}
	return st.Fill.Paint.String()
}

func markerCell(st *theme.Style) string {
	var parts []string
	if m := st.Markers.Start; m != nil {
		parts = append(parts, "start "+m.Shape.String())
	}
	if m := st.Markers.End; m != nil {
		parts = append(parts, "end "+m.Shape.String())
	}
	return joinOrDash(parts)
}

func fontCell(st *theme.Style) string {
	if st.Font == nil {
		return "-"
	}
	return fmt.Sprintf("%s %g", st.Font.Family, st.Font.Size)
}

// newTable renders rows with the CLI's rounded table style.
func newTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
	firstStyle := cellStyle.Foreground(colorCyan)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return firstStyle
			default:
				return cellStyle
			}
		})
	return t.Render()
}

func joinOrDash(items []string) string {
	return orDash(strings.Join(items, ", "))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// completeThemes completes built-in theme names. File paths stay available
// since a theme may also be loaded from disk.
func completeThemes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, name := range themefile.BuiltinNames() {
		if strings.HasPrefix(name, toComplete) {
			out = append(out, name)
		}
	}
	return out, cobra.ShellCompDirectiveDefault
}
