// Package model implements the in-memory mesh representation that flows
// through the pipeline: vertices, indices, bounds, and the opaque material
// reference.
package model

import (
	"errors"
	"fmt"

	"github.com/robjenks/rjm-pipeline/linear"
)

// VertexCountLimit and IndexCountLimit cap the size of a single mesh.
// Allocations beyond this bound fail rather than attempting to acquire
// gigabytes of vertex/index storage for a malformed input.
const (
	VertexCountLimit = 10_000_000
	IndexCountLimit  = VertexCountLimit
)

// ErrCountExceedsLimit is returned by the allocation and decode paths when
// a requested vertex or index count exceeds the package limits.
var ErrCountExceedsLimit = errors.New("model: count exceeds limit")

// ErrEmptyMesh is returned by operations that require at least one vertex.
var ErrEmptyMesh = errors.New("model: mesh has no vertices")

// Vertex is a single point of mesh geometry.
type Vertex struct {
	Position linear.V3
	Normal   linear.V3
	Tangent  linear.V3
	Binormal linear.V3
	Tex      linear.V2
}

// AttributeKind identifies a derived, testable vertex attribute.
// Values are a bit-flag enum in the style used throughout this codebase for
// closed sets of named flags (see objfmt.PostProcess).
type AttributeKind uint32

// Attribute kinds recognized by ModelData.AttributePresent.
const (
	AttrNormal AttributeKind = 1 << iota
	AttrTangent
	AttrBinormal
	AttrTexCoord
)

// ModelData is a single mesh: vertex/index buffers, their axis-aligned
// bounds, and an opaque material reference.
//
// The zero value is an empty mesh with zero bounds, ready to use.
type ModelData struct {
	// MaterialIndex is an opaque reference into an external material
	// table. The pipeline never interprets it.
	MaterialIndex uint32

	MinBounds linear.V3
	MaxBounds linear.V3
	Size      linear.V3
	Centre    linear.V3

	Vertices []Vertex
	Indices  []uint32
}

// VertexCount returns the number of vertices in the mesh.
func (m *ModelData) VertexCount() int { return len(m.Vertices) }

// IndexCount returns the number of indices in the mesh.
func (m *ModelData) IndexCount() int { return len(m.Indices) }

// AllocateVertices replaces the vertex buffer with a new, zero-initialized
// buffer of n elements, discarding any prior contents.
func (m *ModelData) AllocateVertices(n int) error {
	if n < 0 || n > VertexCountLimit {
		return fmt.Errorf("%w: %d vertices requested (limit %d)", ErrCountExceedsLimit, n, VertexCountLimit)
	}
	m.Vertices = make([]Vertex, n)
	return nil
}

// AllocateIndices replaces the index buffer with a new, zero-initialized
// buffer of n elements, discarding any prior contents.
func (m *ModelData) AllocateIndices(n int) error {
	if n < 0 || n > IndexCountLimit {
		return fmt.Errorf("%w: %d indices requested (limit %d)", ErrCountExceedsLimit, n, IndexCountLimit)
	}
	m.Indices = make([]uint32, n)
	return nil
}

// SequentialIndices replaces the index buffer with the sequential buffer
// [0, 1, ..., VertexCount-1], the synthesis the pipeline falls back to when
// an input source carries no face data.
func (m *ModelData) SequentialIndices() {
	m.Indices = make([]uint32, len(m.Vertices))
	for i := range m.Indices {
		m.Indices[i] = uint32(i)
	}
}

// RecalculateBounds walks the vertex buffer and sets MinBounds/MaxBounds to
// the componentwise min/max of vertex positions, then derives Size and
// Centre from them. A mesh with no vertices gets all-zero bounds.
func (m *ModelData) RecalculateBounds() {
	if len(m.Vertices) == 0 {
		m.MinBounds, m.MaxBounds, m.Size, m.Centre = linear.V3{}, linear.V3{}, linear.V3{}, linear.V3{}
		return
	}
	min := m.Vertices[0].Position
	max := m.Vertices[0].Position
	for i := 1; i < len(m.Vertices); i++ {
		p := m.Vertices[i].Position
		min.Min(&min, &p)
		max.Max(&max, &p)
	}
	m.MinBounds, m.MaxBounds = min, max
	m.deriveFromBounds()
}

// deriveFromBounds recomputes Size and Centre from MinBounds/MaxBounds.
func (m *ModelData) deriveFromBounds() {
	m.Size.Sub(&m.MaxBounds, &m.MinBounds)
	var half linear.V3
	half.Scale(0.5, &m.Size)
	m.Centre.Add(&m.MinBounds, &half)
}

// AttributePresent reports whether any vertex carries a non-zero value for
// the given attribute kind. Position is always present and is not a valid
// kind for this query.
func (m *ModelData) AttributePresent(kind AttributeKind) bool {
	for _, v := range m.Vertices {
		switch kind {
		case AttrNormal:
			if !v.Normal.IsZero() {
				return true
			}
		case AttrTangent:
			if !v.Tangent.IsZero() {
				return true
			}
		case AttrBinormal:
			if !v.Binormal.IsZero() {
				return true
			}
		case AttrTexCoord:
			if v.Tex[0] != 0 || v.Tex[1] != 0 {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy of m. Stages that must not mutate the model
// they were handed (e.g. ImporterPostprocessStage, which re-encodes the
// model before replacing it) clone first.
func (m *ModelData) Clone() *ModelData {
	c := &ModelData{
		MaterialIndex: m.MaterialIndex,
		MinBounds:     m.MinBounds,
		MaxBounds:     m.MaxBounds,
		Size:          m.Size,
		Centre:        m.Centre,
	}
	c.Vertices = append([]Vertex(nil), m.Vertices...)
	c.Indices = append([]uint32(nil), m.Indices...)
	return c
}
