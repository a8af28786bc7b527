package build

import "errors"

// Record loading errors.
var (
	// ErrRecordNotFound is returned when the build record file does not
	// exist at the given path.
	ErrRecordNotFound = errors.New("build record not found")

	// ErrUnsupportedRecordFormat is returned when the record file
	// extension is neither .yaml, .yml, nor .json.
	ErrUnsupportedRecordFormat = errors.New("unsupported build record format: expected .yaml, .yml, or .json")
)
