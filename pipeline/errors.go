package pipeline

import (
	"errors"

	"github.com/robjenks/rjm-pipeline/model"
	"github.com/robjenks/rjm-pipeline/objfmt"
	"github.com/robjenks/rjm-pipeline/rjm"
)

// Sentinel errors, the full taxonomy. Errors owned by lower packages are
// re-exported here by identity (not wrapped) so pipeline callers can use a
// single import for errors.Is checks, the same aliasing rjm/codec.go uses for
// model.ErrCountExceedsLimit.
var (
	ErrWrongFormat       = rjm.ErrWrongFormat
	ErrTruncated         = rjm.ErrTruncated
	ErrCountExceedsLimit = model.ErrCountExceedsLimit
	ErrInvalidBounds     = rjm.ErrInvalidBounds

	ErrMissingRequiredAttribute = objfmt.ErrMissingRequiredAttribute
	ErrNonTriangulatedMesh      = objfmt.ErrNonTriangulatedMesh

	ErrEmptyMesh      = model.ErrEmptyMesh
	ErrDegenerateSize = errors.New("pipeline: unit-scale stage saw a zero max extent")

	ErrTransformFileMissing   = errors.New("pipeline: transform file missing")
	ErrTransformFileMalformed = errors.New("pipeline: transform file malformed")

	ErrMissingStage = errors.New("pipeline: built without input or output stage")
	ErrNoModels     = errors.New("pipeline: input stage returned no models")
	ErrIoFailure    = errors.New("pipeline: filesystem or collaborator failure")
)
