package objfmt

import "errors"

// Sentinel errors returned by ScanningImporter.Import. pipeline/errors.go
// aliases these to its own taxonomy, the same pattern rjm uses for
// model.ErrCountExceedsLimit.
var (
	ErrMissingRequiredAttribute = errors.New("objfmt: mesh missing required attribute")
	ErrNonTriangulatedMesh      = errors.New("objfmt: face has other than 3 indices")
)
