//go:build !integration

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/ev-dashboard/internal/config"
	"github.com/sells-group/ev-dashboard/internal/dataset"
	"github.com/sells-group/ev-dashboard/internal/model"
)

func testVehicles() []model.Vehicle {
	return []model.Vehicle{
		{County: "King", City: "Seattle", State: "WA", ModelYear: "2020", Make: "TESLA", Model: "MODEL 3",
			EVType: "Battery Electric Vehicle (BEV)", CAFVEligibility: model.CAFVEligible, ElectricRange: "266",
			VehicleLocation: "POINT (-122.30839 47.610365)"},
		{County: "King", City: "Seattle", State: "WA", ModelYear: "2021", Make: "TESLA", Model: "MODEL Y",
			EVType: "Battery Electric Vehicle (BEV)", CAFVEligibility: model.CAFVUnresearched, ElectricRange: "0"},
		{County: "King", City: "Bellevue", State: "WA", ModelYear: "2019", Make: "NISSAN", Model: "LEAF",
			EVType: "Battery Electric Vehicle (BEV)", CAFVEligibility: model.CAFVEligible, ElectricRange: "150"},
		{County: "Pierce", City: "Tacoma", State: "WA", ModelYear: "2018", Make: "CHEVROLET", Model: "VOLT",
			EVType: "Plug-in Hybrid Electric Vehicle (PHEV)", CAFVEligibility: model.CAFVEligible, ElectricRange: "53"},
	}
}

// setup points the package globals at a fixture dataset and a scratch
// preference store.
func setup(t *testing.T, load dataset.LoadFunc) {
	t.Helper()
	dir := t.TempDir()
	cfg = &config.Config{
		Dataset: config.DatasetConfig{Table: "ev_population"},
		Prefs:   config.PrefsConfig{Path: filepath.Join(dir, "prefs.db")},
		Render:  config.RenderConfig{OutDir: filepath.Join(dir, "charts"), Format: "png", Width: 400, Height: 300},
	}
	if load == nil {
		load = func(context.Context) ([]model.Vehicle, error) { return testVehicles(), nil }
	}
	cache = dataset.NewCache(load)
	t.Cleanup(func() {
		cfg = nil
		cache = nil
	})
}

func failingLoad(err error) dataset.LoadFunc {
	return func(context.Context) ([]model.Vehicle, error) { return nil, err }
}

var errBoom = eris.New("boom")

// runCmd executes a command's RunE with captured output.
func runCmd(t *testing.T, c *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&errOut)
	c.SetContext(context.Background())
	t.Cleanup(func() {
		c.SetOut(nil)
		c.SetErr(nil)
	})
	err := c.RunE(c, args)
	return out.String(), errOut.String(), err
}
