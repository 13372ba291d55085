// Package report presents a dashboard view as a styled terminal page or an
// Excel workbook.
package report

import (
	"errors"

	"github.com/sells-group/ev-dashboard/internal/dataset"
)

// Status lines shown instead of the dashboard.
const (
	MsgLoading = "Loading..."
	MsgEmpty   = "Analytics Data is Empty"
)

// ErrorMessage is the line shown when the dataset could not be loaded.
func ErrorMessage(err error) string {
	return "An error occurred: " + err.Error()
}

// ForLoadError picks the status line for a failed dataset load.
func ForLoadError(err error) string {
	if errors.Is(err, dataset.ErrEmptyDataset) {
		return MsgEmpty
	}
	return ErrorMessage(err)
}
