// Package linear implements the vector and matrix math used by the
// geometric post-processing stages of the model pipeline.
package linear

import "math"

// V2 is a 2-component vector of float32, used for texture coordinates.
type V2 [2]float32

// Add sets v to contain l + r.
func (v *V2) Add(l, r *V2) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Sub sets v to contain l - r.
func (v *V2) Sub(l, r *V2) {
	for i := range v {
		v[i] = l[i] - r[i]
	}
}

// V3 is a 3-component vector of float32.
type V3 [3]float32

// Add sets v to contain l + r.
func (v *V3) Add(l, r *V3) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Sub sets v to contain l - r.
func (v *V3) Sub(l, r *V3) {
	for i := range v {
		v[i] = l[i] - r[i]
	}
}

// Scale sets v to contain s ⋅ w.
func (v *V3) Scale(s float32, w *V3) {
	for i := range v {
		v[i] = s * w[i]
	}
}

// Mulcomp sets v to contain the componentwise product of l and r.
func (v *V3) Mulcomp(l, r *V3) {
	for i := range v {
		v[i] = l[i] * r[i]
	}
}

// Dot returns v ⋅ w.
func (v *V3) Dot(w *V3) (d float32) {
	for i := range v {
		d += v[i] * w[i]
	}
	return
}

// Len returns the length of v.
func (v *V3) Len() float32 { return float32(math.Sqrt(float64(v.Dot(v)))) }

// Norm sets v to contain w normalized.
func (v *V3) Norm(w *V3) { v.Scale(1/w.Len(), w) }

// Cross sets v to contain l × r.
func (v *V3) Cross(l, r *V3) {
	v[0] = l[1]*r[2] - l[2]*r[1]
	v[1] = l[2]*r[0] - l[0]*r[2]
	v[2] = l[0]*r[1] - l[1]*r[0]
}

// IsZero reports whether every component of v is exactly zero.
func (v *V3) IsZero() bool { return v[0] == 0 && v[1] == 0 && v[2] == 0 }

// Min sets v to the componentwise minimum of l and r.
func (v *V3) Min(l, r *V3) {
	for i := range v {
		v[i] = min(l[i], r[i])
	}
}

// Max sets v to the componentwise maximum of l and r.
func (v *V3) Max(l, r *V3) {
	for i := range v {
		v[i] = max(l[i], r[i])
	}
}

// V4 is a 4-component vector of float32.
type V4 [4]float32

// FromV3 sets v to w extended with the given w-component.
func (v *V4) FromV3(w *V3, wComp float32) {
	v[0], v[1], v[2], v[3] = w[0], w[1], w[2], wComp
}

// FromV4 sets v to the first three components of w.
func (v *V3) FromV4(w *V4) { v[0], v[1], v[2] = w[0], w[1], w[2] }

// Mul sets v to contain m ⋅ w.
func (v *V4) Mul(m *M4, w *V4) {
	*v = V4{}
	for i := range v {
		for j := range v {
			v[i] += m[j][i] * w[j]
		}
	}
}
