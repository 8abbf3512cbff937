package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Dhanuzh/dbexplorer/internal/render"
	"github.com/Dhanuzh/dbexplorer/internal/theme"
	"github.com/Dhanuzh/dbexplorer/internal/tui"
)

// ---------------------------------------------------------------------------
// theme command
// ---------------------------------------------------------------------------

func themeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Inspect or change the UI theme",
	}

	show := themeShowCmd()
	cmd.AddCommand(
		themeListCmd(),
		show,
		themeSetCmd(),
		themeModeCmd(),
		themeVarsCmd(),
		&cobra.Command{
			Use:   "pick",
			Short: "Choose a theme interactively",
			RunE:  runPicker,
		},
	)

	// Default to show
	cmd.RunE = show.RunE
	return cmd
}

func themeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available themes",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			defer env.close()

			current, err := env.ctl.ThemeKey()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			color := isTerminal(out)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, def := range env.ctl.Registry().List() {
				marker := " "
				if def.Key == current {
					marker = "*"
				}
				line := fmt.Sprintf("%s %s\t%s\t%s", marker, def.Key, def.DisplayName, def.Colors.Primary)
				if color {
					line += "\t" + tui.PaletteStrip(def.Colors)
				}
				fmt.Fprintln(tw, line)
			}
			return tw.Flush()
		},
	}
}

func themeShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the selected theme and mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			defer env.close()

			sel, err := env.ctl.Selection()
			if err != nil {
				return err
			}
			def := env.ctl.Registry().Resolve(sel.ThemeKey)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Theme: %s (%s)\n", def.DisplayName, def.Key)
			fmt.Fprintf(out, "Mode:  %s\n\n", sel.Mode)

			color := isTerminal(out)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, role := range def.Colors.Roles() {
				line := fmt.Sprintf("  %s\t%s", role.Name, role.Color)
				if color {
					line += "\t" + tui.Swatch(role.Color, "    ")
				}
				fmt.Fprintln(tw, line)
			}
			return tw.Flush()
		},
	}
}

func themeSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [key]",
		Short: "Select a theme by key",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return theme.NewRegistry().Keys(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			defer env.close()

			if !env.ctl.Registry().Has(args[0]) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Unknown theme %q, using %s\n", args[0], env.ctl.Registry().Default().Key)
			}
			if err := env.ctl.SetTheme(cmd.Context(), args[0]); err != nil {
				return err
			}
			key, err := env.ctl.ThemeKey()
			if err != nil {
				return err
			}
			def := env.ctl.Registry().Resolve(key)
			fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s (%s)\n", def.DisplayName, def.Key)
			return nil
		},
	}
}

func themeModeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "mode [light|dark|toggle]",
		Short:     "Set or toggle light/dark mode",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			defer env.close()

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				mode, err := env.ctl.Mode()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, mode)
				return nil
			}

			var mode theme.Mode
			if args[0] == "toggle" {
				mode, err = env.ctl.ToggleMode(cmd.Context())
			} else {
				var ok bool
				mode, ok = theme.ParseMode(args[0])
				if !ok {
					return fmt.Errorf("unknown mode %q (want light, dark or toggle)", args[0])
				}
				err = env.ctl.SetMode(cmd.Context(), mode)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Mode set to %s\n", mode)
			return nil
		},
	}
}

func themeVarsCmd() *cobra.Command {
	var formatName string
	cmd := &cobra.Command{
		Use:   "vars",
		Short: "Print the CSS custom properties of the selected theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := render.ParseFormat(formatName)
			if err != nil {
				return err
			}

			env, err := setup(cmd)
			if err != nil {
				return err
			}
			defer env.close()

			snap, err := env.ctl.Snapshot()
			if err != nil {
				return err
			}
			if format == render.FormatCSS {
				return render.Stylesheet(cmd.OutOrStdout(), snap.Selection.ThemeKey, snap.Root)
			}
			return render.Render(cmd.OutOrStdout(), format, render.Document{
				Theme:     snap.Selection.ThemeKey,
				Mode:      string(snap.Selection.Mode),
				Variables: snap.Variables,
			})
		},
	}
	names := make([]string, len(render.Formats))
	for i, f := range render.Formats {
		names[i] = string(f)
	}
	cmd.Flags().StringVarP(&formatName, "format", "f", "css", "Output format ("+strings.Join(names, ", ")+")")
	return cmd
}

// isTerminal reports whether w is a terminal, so color swatches are only
// printed where they render.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
