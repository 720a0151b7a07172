package pipeline

import (
	"bytes"
	"fmt"

	"github.com/robjenks/rjm-pipeline/model"
	"github.com/robjenks/rjm-pipeline/rjm"
)

// BinaryInput reads a byte buffer via rjm.Decode, always producing exactly
// one ModelData on success.
type BinaryInput struct {
	// Identifier, if set, is verified against the buffer's leading bytes
	// via rjm.DecodeWithIdentifier.
	Identifier []byte
}

// StageName implements Name.
func (BinaryInput) StageName() string { return "BinaryInput" }

// Produce implements InputStage.
func (s BinaryInput) Produce(ctx *Context, source Source) ([]*model.ModelData, error) {
	buf := source.Bytes
	if buf == nil {
		data, err := ctx.FS.ReadFile(source.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIoFailure, err)
		}
		buf = data
	}
	m, err := rjm.DecodeWithIdentifier(bytes.NewReader(buf), s.Identifier)
	if err != nil {
		return nil, err
	}
	return []*model.ModelData{m}, nil
}
