package objfmt

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/robjenks/rjm-pipeline/linear"
	"github.com/robjenks/rjm-pipeline/model"
)

// faceCorner is one "v/vt/vn" token of a face line, holding 0-based
// indices into the global positions/texcoords/normals tables. A -1
// component means the attribute was absent from the token.
type faceCorner struct {
	pos, tex, norm int
}

// meshBuilder accumulates one "o"- or "g"-scoped group while scanning.
type meshBuilder struct {
	name      string
	materials map[string]uint32
	material  uint32
	faces     [][]faceCorner
	malformed bool
}

// parseOBJ is the entry point shared by ScanningImporter.Import and
// pipeline.ImporterPostprocessStage's round-trip.
func parseOBJ(text []byte, flags PostProcess) ([]*model.ModelData, error) {
	var positions []linear.V3
	var normals []linear.V3
	var texcoords []linear.V2

	materials := map[string]uint32{}
	var builders []*meshBuilder
	cur := &meshBuilder{materials: materials}
	builders = append(builders, cur)

	sc := bufio.NewScanner(bytes.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseV3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("objfmt: parse v: %w", err)
			}
			positions = append(positions, v)
		case "vn":
			v, err := parseV3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("objfmt: parse vn: %w", err)
			}
			normals = append(normals, v)
		case "vt":
			v, err := parseV2(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("objfmt: parse vt: %w", err)
			}
			texcoords = append(texcoords, v)
		case "o", "g":
			if len(cur.faces) > 0 || cur.malformed {
				cur = &meshBuilder{materials: materials}
				builders = append(builders, cur)
			}
			if len(fields) > 1 {
				cur.name = fields[1]
			}
		case "usemtl":
			if len(fields) < 2 {
				continue
			}
			idx, ok := materials[fields[1]]
			if !ok {
				idx = uint32(len(materials))
				materials[fields[1]] = idx
			}
			cur.material = idx
		case "f":
			corners := make([]faceCorner, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				fc, err := parseFaceCorner(tok, len(positions), len(texcoords), len(normals))
				if err != nil {
					return nil, fmt.Errorf("objfmt: parse f: %w", err)
				}
				corners = append(corners, fc)
			}
			switch {
			case len(corners) == 3:
				cur.faces = append(cur.faces, corners)
			case len(corners) > 3 && flags.Has(Triangulate):
				for i := 1; i < len(corners)-1; i++ {
					cur.faces = append(cur.faces, []faceCorner{corners[0], corners[i], corners[i+1]})
				}
			default:
				cur.malformed = true
			}
		default:
			// mtllib, s, and any other directive are accepted and ignored;
			// they carry no information the pipeline's ModelData needs.
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("objfmt: scan: %w", err)
	}

	var meshes []*model.ModelData
	var dropErr error
	for _, b := range builders {
		if b.malformed {
			// The scene's other meshes are still returned; this reason only
			// surfaces if every mesh in the scene ends up dropped.
			dropErr = ErrNonTriangulatedMesh
			continue
		}
		if len(b.faces) == 0 {
			continue
		}
		m, err := buildMesh(b, positions, normals, texcoords, flags)
		if err != nil {
			if errors.Is(err, ErrMissingRequiredAttribute) {
				dropErr = err
				continue
			}
			return nil, err
		}
		meshes = append(meshes, m)
	}
	if len(meshes) == 0 && dropErr != nil {
		return nil, dropErr
	}
	return meshes, nil
}

func buildMesh(b *meshBuilder, positions, normals []linear.V3, texcoords []linear.V2, flags PostProcess) (*model.ModelData, error) {
	m := &model.ModelData{MaterialIndex: b.material}
	haveNormals := false
	haveTex := false
	for _, face := range b.faces {
		for _, c := range face {
			if c.pos < 0 || c.pos >= len(positions) || c.norm >= len(normals) {
				return nil, ErrMissingRequiredAttribute
			}
			v := model.Vertex{Position: positions[c.pos]}
			if c.norm >= 0 {
				v.Normal = normals[c.norm]
				haveNormals = true
			}
			if c.tex >= 0 {
				v.Tex = texcoords[c.tex]
				haveTex = true
			}
			m.Vertices = append(m.Vertices, v)
		}
	}
	m.SequentialIndices()

	if !haveNormals {
		if !flags.Has(GenerateNormals) {
			return nil, ErrMissingRequiredAttribute
		}
		generateFlatNormals(m)
	}
	if flags.Has(CalcTangentSpace) && haveTex {
		generateTangents(m)
	}
	if flags.Has(JoinIdenticalVertices) {
		joinIdenticalVertices(m)
	}
	m.RecalculateBounds()
	return m, nil
}

// generateFlatNormals assigns each triangle's face normal to its three
// (unshared) corner vertices.
func generateFlatNormals(m *model.ModelData) {
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		a, b, c := &m.Vertices[i], &m.Vertices[i+1], &m.Vertices[i+2]
		var e1, e2, n linear.V3
		e1.Sub(&b.Position, &a.Position)
		e2.Sub(&c.Position, &a.Position)
		n.Cross(&e1, &e2)
		if !n.IsZero() {
			n.Norm(&n)
		}
		a.Normal, b.Normal, c.Normal = n, n, n
	}
}

// generateTangents computes a per-triangle tangent/binormal from UV deltas
// and assigns it to the triangle's three corner vertices, the standard
// edge/UV-delta construction used by real tangent-space importers.
func generateTangents(m *model.ModelData) {
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		a, b, c := &m.Vertices[i], &m.Vertices[i+1], &m.Vertices[i+2]
		var e1, e2 linear.V3
		e1.Sub(&b.Position, &a.Position)
		e2.Sub(&c.Position, &a.Position)
		du1, dv1 := b.Tex[0]-a.Tex[0], b.Tex[1]-a.Tex[1]
		du2, dv2 := c.Tex[0]-a.Tex[0], c.Tex[1]-a.Tex[1]
		det := du1*dv2 - du2*dv1
		if det == 0 {
			continue
		}
		r := 1 / det

		var tangent, binormal linear.V3
		for k := 0; k < 3; k++ {
			tangent[k] = (e1[k]*dv2 - e2[k]*dv1) * r
			binormal[k] = (e2[k]*du1 - e1[k]*du2) * r
		}
		if !tangent.IsZero() {
			tangent.Norm(&tangent)
		}
		if !binormal.IsZero() {
			binormal.Norm(&binormal)
		}
		a.Tangent, b.Tangent, c.Tangent = tangent, tangent, tangent
		a.Binormal, b.Binormal, c.Binormal = binormal, binormal, binormal
	}
}

// joinIdenticalVertices collapses the unshared vertex buffer produced by
// parsing into a deduplicated buffer with a matching index array.
func joinIdenticalVertices(m *model.ModelData) {
	seen := make(map[model.Vertex]uint32, len(m.Vertices))
	unique := make([]model.Vertex, 0, len(m.Vertices))
	indices := make([]uint32, len(m.Vertices))
	for i, v := range m.Vertices {
		idx, ok := seen[v]
		if !ok {
			idx = uint32(len(unique))
			unique = append(unique, v)
			seen[v] = idx
		}
		indices[i] = idx
	}
	m.Vertices = unique
	m.Indices = indices
}

func parseFaceCorner(tok string, nPos, nTex, nNorm int) (faceCorner, error) {
	parts := strings.Split(tok, "/")
	fc := faceCorner{pos: -1, tex: -1, norm: -1}

	idx, err := resolveIndex(parts[0], nPos)
	if err != nil {
		return fc, err
	}
	fc.pos = idx

	if len(parts) > 1 && parts[1] != "" {
		idx, err := resolveIndex(parts[1], nTex)
		if err != nil {
			return fc, err
		}
		fc.tex = idx
	}
	if len(parts) > 2 && parts[2] != "" {
		idx, err := resolveIndex(parts[2], nNorm)
		if err != nil {
			return fc, err
		}
		fc.norm = idx
	}
	return fc, nil
}

// resolveIndex converts a 1-based (or negative, relative-to-end) OBJ index
// token to a 0-based index into a table of the given length.
func resolveIndex(tok string, n int) (int, error) {
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("bad index %q: %w", tok, err)
	}
	switch {
	case v > 0:
		return v - 1, nil
	case v < 0:
		return n + v, nil
	default:
		return 0, fmt.Errorf("index 0 is not valid in OBJ (1-based)")
	}
}

func parseV3(fields []string) (linear.V3, error) {
	if len(fields) < 3 {
		return linear.V3{}, fmt.Errorf("want 3 components, got %d", len(fields))
	}
	var v linear.V3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return linear.V3{}, err
		}
		v[i] = float32(f)
	}
	return v, nil
}

func parseV2(fields []string) (linear.V2, error) {
	if len(fields) < 2 {
		return linear.V2{}, fmt.Errorf("want 2 components, got %d", len(fields))
	}
	var v linear.V2
	for i := 0; i < 2; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return linear.V2{}, err
		}
		v[i] = float32(f)
	}
	return v, nil
}
