// Package rjm implements the binary codec for the custom "RJM" runtime mesh
// format: a tightly packed, little-endian header followed by a flat vertex
// array.
//
// The framing style (io.Reader/io.Writer, encoding/binary, a small set of
// sentinel errors) follows gviegas-neo3/gltf/glb.go's GLB chunk codec.
package rjm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/robjenks/rjm-pipeline/linear"
	"github.com/robjenks/rjm-pipeline/model"
)

// FormatVersion identifies the RJM wire format implemented by this package.
// The format carries no indices; a future v2 that adds an index section
// should bump this and branch on it in Decode.
const FormatVersion = 1

// Sentinel errors returned by Decode/DecodeWithIdentifier.
var (
	ErrWrongFormat       = errors.New("rjm: file identifier mismatch")
	ErrTruncated         = errors.New("rjm: buffer truncated")
	ErrCountExceedsLimit = model.ErrCountExceedsLimit
	ErrInvalidBounds     = errors.New("rjm: invalid bounds")
)

// headerSize is the encoded size, in bytes, of the fixed header block:
// material_index(4) + min(12) + max(12) + size(12) + centre(12) + vertex_count(4).
const headerSize = 4 + 12 + 12 + 12 + 12 + 4

// vertexSize is the encoded size, in bytes, of one Vertex: four vec3 fields
// plus one vec2 field, all float32.
const vertexSize = 12*4 + 8

// header is the raw wire layout of the fixed-size RJM header.
type header struct {
	MaterialIndex uint32
	MinBounds     [3]float32
	MaxBounds     [3]float32
	Size          [3]float32
	Centre        [3]float32
	VertexCount   uint32
}

// Encode writes m to w in RJM binary format. It never fails for a
// well-formed ModelData; the only error path is a short write to w.
func Encode(w io.Writer, m *model.ModelData) error {
	h := header{
		MaterialIndex: m.MaterialIndex,
		MinBounds:     [3]float32(m.MinBounds),
		MaxBounds:     [3]float32(m.MaxBounds),
		Size:          [3]float32(m.Size),
		Centre:        [3]float32(m.Centre),
		VertexCount:   uint32(len(m.Vertices)),
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("rjm: write header: %w", err)
	}
	for i := range m.Vertices {
		if err := writeVertex(w, &m.Vertices[i]); err != nil {
			return fmt.Errorf("rjm: write vertex %d: %w", i, err)
		}
	}
	return nil
}

// EncodeToBytes is a convenience wrapper around Encode that returns the
// encoded buffer directly.
func EncodeToBytes(m *model.ModelData) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(headerSize + len(m.Vertices)*vertexSize)
	if err := Encode(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// wireVertex is the raw wire layout of one vertex record.
type wireVertex struct {
	Position [3]float32
	Normal   [3]float32
	Tangent  [3]float32
	Binormal [3]float32
	Tex      [2]float32
}

func writeVertex(w io.Writer, v *model.Vertex) error {
	wv := wireVertex{
		Position: [3]float32(v.Position),
		Normal:   [3]float32(v.Normal),
		Tangent:  [3]float32(v.Tangent),
		Binormal: [3]float32(v.Binormal),
		Tex:      [2]float32(v.Tex),
	}
	return binary.Write(w, binary.LittleEndian, &wv)
}

// Decode reads r, which must contain a header immediately followed by
// vertex_count vertex records, and returns the decoded ModelData. The
// returned mesh's index buffer is synthesized as the sequential buffer
// [0..vertex_count) — the wire format carries no indices.
func Decode(r io.Reader) (*model.ModelData, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("rjm: read header: %w", ErrTruncated)
		}
		return nil, fmt.Errorf("rjm: read header: %w", err)
	}
	if h.VertexCount > model.VertexCountLimit {
		return nil, fmt.Errorf("%w: vertex_count %d", ErrCountExceedsLimit, h.VertexCount)
	}
	if err := validateBounds(h.MinBounds, h.MaxBounds); err != nil {
		return nil, err
	}

	m := &model.ModelData{
		MaterialIndex: h.MaterialIndex,
		MinBounds:     linear.V3(h.MinBounds),
		MaxBounds:     linear.V3(h.MaxBounds),
		Size:          linear.V3(h.Size),
		Centre:        linear.V3(h.Centre),
	}
	if err := m.AllocateVertices(int(h.VertexCount)); err != nil {
		return nil, err
	}
	for i := range m.Vertices {
		var wv wireVertex
		if err := binary.Read(r, binary.LittleEndian, &wv); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("rjm: read vertex %d: %w", i, ErrTruncated)
			}
			return nil, fmt.Errorf("rjm: read vertex %d: %w", i, err)
		}
		m.Vertices[i] = model.Vertex{
			Position: linear.V3(wv.Position),
			Normal:   linear.V3(wv.Normal),
			Tangent:  linear.V3(wv.Tangent),
			Binormal: linear.V3(wv.Binormal),
			Tex:      linear.V2(wv.Tex),
		}
	}
	m.SequentialIndices()
	return m, nil
}

// DecodeBytes decodes buf, reporting ErrTruncated if fewer than
// headerSize+vertex_count*vertexSize bytes are available.
func DecodeBytes(buf []byte) (*model.ModelData, error) {
	return Decode(bytes.NewReader(buf))
}

// DecodeWithIdentifier verifies that r begins with the given identifier
// byte sequence before decoding the header, failing ErrWrongFormat on
// mismatch. This mirrors gltf.IsGLB's magic-number sniff, generalized to an
// arbitrary caller-supplied file-identifier prefix.
func DecodeWithIdentifier(r io.Reader, identifier []byte) (*model.ModelData, error) {
	if len(identifier) > 0 {
		got := make([]byte, len(identifier))
		if _, err := io.ReadFull(r, got); err != nil {
			return nil, fmt.Errorf("rjm: read identifier: %w", ErrTruncated)
		}
		if !bytes.Equal(got, identifier) {
			return nil, ErrWrongFormat
		}
	}
	return Decode(r)
}

// EncodeWithIdentifier writes identifier followed by the RJM-encoded model.
func EncodeWithIdentifier(w io.Writer, identifier []byte, m *model.ModelData) error {
	if len(identifier) > 0 {
		if _, err := w.Write(identifier); err != nil {
			return fmt.Errorf("rjm: write identifier: %w", err)
		}
	}
	return Encode(w, m)
}

func validateBounds(min, max [3]float32) error {
	for i := 0; i < 3; i++ {
		if math.IsNaN(float64(min[i])) || math.IsNaN(float64(max[i])) {
			return fmt.Errorf("%w: NaN component", ErrInvalidBounds)
		}
		if min[i] > max[i] {
			return fmt.Errorf("%w: min > max on axis %d", ErrInvalidBounds, i)
		}
	}
	return nil
}
