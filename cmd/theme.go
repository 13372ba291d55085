package main

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/ev-dashboard/internal/prefs"
	"github.com/sells-group/ev-dashboard/internal/render"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|toggle]",
	Short:     "Show or change the stored color theme",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"light", "dark", "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openPrefs(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		action := ""
		if len(args) == 1 {
			action = args[0]
		}
		dark, err := applyTheme(ctx, st, action)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.ThemeFor(dark).Name)
		return nil
	},
}

// applyTheme performs a theme action and returns the resulting flag. An
// empty action only reads it.
func applyTheme(ctx context.Context, st *prefs.Store, action string) (bool, error) {
	switch action {
	case "":
		return st.DarkMode(ctx)
	case "light":
		return false, st.SetDarkMode(ctx, false)
	case "dark":
		return true, st.SetDarkMode(ctx, true)
	case "toggle":
		return st.ToggleDarkMode(ctx)
	}
	return false, eris.Errorf("unknown theme %q (want light, dark or toggle)", action)
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
