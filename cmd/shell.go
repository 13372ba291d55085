package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/ev-dashboard/internal/dashboard"
	"github.com/sells-group/ev-dashboard/internal/prefs"
	"github.com/sells-group/ev-dashboard/internal/render"
	"github.com/sells-group/ev-dashboard/internal/report"
)

const shellHelp = `commands:
  county [name]        filter by county (no name clears the filter)
  city [name]          filter by city within the county
  make <manufacturer>  point the range chart at a manufacturer
  model <model>        point the range chart at a model
  reset                clear every selection
  options              list the values each selector accepts
  show                 print the dashboard
  theme [light|dark|toggle]
  help
  quit`

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Explore the dashboard interactively",
	Long:  "Starts a line-oriented session over one loaded dataset. Each selection change reprints the dashboard.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		state, err := loadState(cmd)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		st, err := openPrefs(ctx)
		if err != nil {
			zap.L().Warn("shell: preference store unavailable", zap.Error(err))
			st = nil
		} else {
			defer st.Close() //nolint:errcheck
		}

		sh := newShell(cmd.OutOrStdout(), state, st)
		sh.theme = currentThemeFrom(ctx, st)
		return sh.run(ctx, cmd.InOrStdin())
	},
}

// shell is one interactive session. The dashboard is reprinted from the
// state subscription, so every selector path redraws the same way.
type shell struct {
	out   io.Writer
	state *dashboard.State
	prefs *prefs.Store
	theme render.Theme
}

func newShell(out io.Writer, state *dashboard.State, st *prefs.Store) *shell {
	sh := &shell{out: out, state: state, prefs: st, theme: render.Light}
	state.Subscribe(func(v dashboard.View) {
		fmt.Fprint(sh.out, report.Text(v, sh.theme))
	})
	return sh
}

func (sh *shell) run(ctx context.Context, in io.Reader) error {
	zap.L().Info("shell: session started", zap.String("session", sh.state.ID()))
	fmt.Fprint(sh.out, report.Text(sh.state.View(), sh.theme))
	fmt.Fprintln(sh.out, `type "help" for commands`)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(sh.out, "> ")
		if !scanner.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		done, err := sh.exec(ctx, line)
		if err != nil {
			fmt.Fprintln(sh.out, report.ErrorMessage(err))
		}
		if done {
			return nil
		}
	}
	fmt.Fprintln(sh.out)
	if err := scanner.Err(); err != nil {
		return eris.Wrap(err, "shell: read input")
	}
	return nil
}

// exec runs one command line and reports whether the session should end.
func (sh *shell) exec(ctx context.Context, line string) (bool, error) {
	verb, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(verb) {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(sh.out, shellHelp)
	case "county":
		return false, sh.state.SelectCounty(arg)
	case "city":
		return false, sh.state.SelectCity(arg)
	case "make":
		return false, sh.state.SelectRangeMake(arg)
	case "model":
		return false, sh.state.SelectRangeModel(arg)
	case "reset":
		sh.state.Reset()
	case "options":
		fmt.Fprint(sh.out, report.Options(sh.state.View(), sh.theme))
	case "show":
		fmt.Fprint(sh.out, report.Text(sh.state.View(), sh.theme))
	case "theme":
		return false, sh.setTheme(ctx, arg)
	default:
		return false, eris.Errorf("unknown command %q", verb)
	}
	return false, nil
}

func (sh *shell) setTheme(ctx context.Context, action string) error {
	if sh.prefs == nil {
		return eris.New("preference store unavailable")
	}
	dark, err := applyTheme(ctx, sh.prefs, action)
	if err != nil {
		return err
	}
	sh.theme = render.ThemeFor(dark)
	fmt.Fprintln(sh.out, sh.theme.Name)
	if action != "" {
		fmt.Fprint(sh.out, report.Text(sh.state.View(), sh.theme))
	}
	return nil
}

// currentThemeFrom reads the theme from an open store, defaulting to light.
func currentThemeFrom(ctx context.Context, st *prefs.Store) render.Theme {
	if st == nil {
		return render.Light
	}
	dark, err := st.DarkMode(ctx)
	if err != nil {
		zap.L().Warn("theme: read preference", zap.Error(err))
		return render.Light
	}
	return render.ThemeFor(dark)
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
