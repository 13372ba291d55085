package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/ev-dashboard/internal/dashboard"
	"github.com/sells-group/ev-dashboard/internal/render"
)

var (
	renderSel    selectionFlags
	renderOutDir string
	renderFormat string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write the six dashboard charts as image files",
	RunE: func(cmd *cobra.Command, _ []string) error {
		state, err := loadState(cmd)
		if err != nil {
			return err
		}
		if err := renderSel.apply(state); err != nil {
			return err
		}

		outDir := cfg.Render.OutDir
		if renderOutDir != "" {
			outDir = renderOutDir
		}
		opts := render.Options{Width: cfg.Render.Width, Height: cfg.Render.Height, Format: cfg.Render.Format}
		if renderFormat != "" {
			opts.Format = renderFormat
		}

		written, err := writeCharts(cmd, state.View(), outDir, opts)
		if err != nil {
			return err
		}
		for _, p := range written {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

// writeCharts renders every chart kind into outDir concurrently and returns
// the written paths in sorted order. Charts without data are skipped.
func writeCharts(cmd *cobra.Command, v dashboard.View, outDir string, opts render.Options) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "render: create %s", outDir)
	}
	theme := currentTheme(cmd.Context())

	paths := make([]string, len(render.Kinds))
	g, _ := errgroup.WithContext(cmd.Context())
	for i, k := range render.Kinds {
		g.Go(func() error {
			p := filepath.Join(outDir, render.FileName(k, opts.Format))
			ok, err := writeChart(p, k, v, theme, opts)
			if err != nil {
				return err
			}
			if ok {
				paths[i] = p
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var written []string
	for _, p := range paths {
		if p != "" {
			written = append(written, p)
		}
	}
	sort.Strings(written)
	return written, nil
}

// writeChart reports false when the chart had no data and was not written.
func writeChart(path string, k render.Kind, v dashboard.View, theme render.Theme, opts render.Options) (bool, error) {
	f, err := os.Create(path)
	if err != nil {
		return false, eris.Wrapf(err, "render: create %s", path)
	}

	err = render.Chart(f, k, v, theme, opts)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = eris.Wrapf(cerr, "render: close %s", path)
	}
	if errors.Is(err, render.ErrNoData) {
		zap.L().Info("render: skipping empty chart", zap.String("chart", string(k)))
		return false, os.Remove(path)
	}
	if err != nil {
		os.Remove(path) //nolint:errcheck
		return false, err
	}
	return true, nil
}

func init() {
	renderSel.bind(renderCmd)
	renderCmd.Flags().StringVar(&renderOutDir, "out-dir", "", "directory for chart files (default render.out_dir)")
	renderCmd.Flags().StringVar(&renderFormat, "format", "", "png or svg (default render.format)")
	rootCmd.AddCommand(renderCmd)
}
