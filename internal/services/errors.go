package services

import "errors"

// Sentinel errors the HTTP layer maps to "empty but valid" responses.
var (
	// ErrNoData means the source workbook produced no canonical rows.
	ErrNoData = errors.New("no rows in the observation window")

	// ErrNoMatchingRows means the dataset is non-empty but the selected
	// filters matched nothing.
	ErrNoMatchingRows = errors.New("no rows match the selected filters")
)
