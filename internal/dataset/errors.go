package dataset

import (
	"github.com/rotisserie/eris"
)

var (
	// ErrLoadFailure means the dataset could not be fetched or parsed.
	ErrLoadFailure = eris.New("dataset: load failed")
	// ErrEmptyDataset means the source parsed cleanly but held no rows.
	ErrEmptyDataset = eris.New("dataset: no rows")
)

// loadFailure tags err as a load failure while keeping its message.
func loadFailure(err error, action string) error {
	return eris.Wrapf(ErrLoadFailure, "%s: %v", action, err)
}
