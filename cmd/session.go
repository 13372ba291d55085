package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/ev-dashboard/internal/dashboard"
	"github.com/sells-group/ev-dashboard/internal/dataset"
	"github.com/sells-group/ev-dashboard/internal/prefs"
	"github.com/sells-group/ev-dashboard/internal/render"
	"github.com/sells-group/ev-dashboard/internal/report"
)

// Output formats for show and options.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// loadState waits for the dataset and starts a dashboard session on it.
// Status lines go to the command's output so a failed load still tells
// the user why.
func loadState(cmd *cobra.Command) (*dashboard.State, error) {
	if cache == nil {
		return nil, eris.New("dataset cache not initialized")
	}
	if cache.Status() != dataset.StatusReady {
		fmt.Fprintln(cmd.ErrOrStderr(), report.MsgLoading)
	}

	rows, err := cache.Get(cmd.Context())
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), report.ForLoadError(err))
		return nil, err
	}
	return dashboard.NewState(rows), nil
}

// selectionFlags are the selector flags shared by the one-shot commands.
type selectionFlags struct {
	county     string
	city       string
	rangeMake  string
	rangeModel string
}

func (f *selectionFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.county, "county", "", "county to filter by")
	cmd.Flags().StringVar(&f.city, "city", "", "city within the county to filter by")
	cmd.Flags().StringVar(&f.rangeMake, "make", "", "manufacturer for the range chart (defaults to the first available)")
	cmd.Flags().StringVar(&f.rangeModel, "model", "", "model for the range chart (defaults to the first available)")
}

// apply replays the flags as selector events in dashboard order so the
// same cascades and checks run as in the interactive shell.
func (f *selectionFlags) apply(s *dashboard.State) error {
	if f.county != "" {
		if err := s.SelectCounty(f.county); err != nil {
			return eris.Wrap(err, "--county")
		}
	}
	if f.city != "" {
		if err := s.SelectCity(f.city); err != nil {
			return eris.Wrap(err, "--city")
		}
	}
	if f.rangeMake != "" {
		if err := s.SelectRangeMake(f.rangeMake); err != nil {
			return eris.Wrap(err, "--make")
		}
	}
	if f.rangeModel != "" {
		if err := s.SelectRangeModel(f.rangeModel); err != nil {
			return eris.Wrap(err, "--model")
		}
	}
	return nil
}

// openPrefs opens and migrates the preference store.
func openPrefs(ctx context.Context) (*prefs.Store, error) {
	st, err := prefs.NewSQLite(cfg.Prefs.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

// currentTheme reads the stored theme. Any store problem falls back to the
// light theme; the preference is cosmetic.
func currentTheme(ctx context.Context) render.Theme {
	st, err := openPrefs(ctx)
	if err != nil {
		zap.L().Warn("theme: preference store unavailable", zap.Error(err))
		return render.Light
	}
	defer st.Close() //nolint:errcheck

	return currentThemeFrom(ctx, st)
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return eris.Wrap(err, "encode json")
		}
		return nil
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return eris.Wrap(err, "encode yaml")
		}
		if err := enc.Close(); err != nil {
			return eris.Wrap(err, "encode yaml")
		}
		return nil
	}
	return eris.Errorf("unsupported format %q (want table, json or yaml)", format)
}
