package pipeline

import (
	"bytes"
	"fmt"

	"github.com/robjenks/rjm-pipeline/model"
	"github.com/robjenks/rjm-pipeline/rjm"
)

// BinaryOutput writes via rjm.Encode.
type BinaryOutput struct {
	// Identifier, if set, is written as a prefix via rjm.EncodeWithIdentifier.
	Identifier []byte
}

// StageName implements Name.
func (BinaryOutput) StageName() string { return "BinaryOutput" }

// Emit implements OutputStage.
func (s BinaryOutput) Emit(ctx *Context, m *model.ModelData) ([]byte, error) {
	if s.Identifier == nil {
		return rjm.EncodeToBytes(m)
	}
	var buf bytes.Buffer
	if err := rjm.EncodeWithIdentifier(&buf, s.Identifier, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EmitToFile implements OutputStage.
func (s BinaryOutput) EmitToFile(ctx *Context, m *model.ModelData, path string) error {
	data, err := s.Emit(ctx, m)
	if err != nil {
		return err
	}
	if err := ctx.FS.WriteFile(path, data); err != nil {
		return fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	return nil
}
