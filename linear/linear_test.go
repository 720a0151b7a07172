package linear

import (
	"math"
	"testing"
)

func TestV3(t *testing.T) {
	v := V3{1, 2, 4}
	w := V3{0, -1, 2}

	var u V3
	u.Add(&v, &w)
	if u != (V3{1, 1, 6}) {
		t.Fatalf("V3.Add\nhave %v\nwant [1 1 6]", u)
	}
	u.Sub(&v, &w)
	if u != (V3{1, 3, 2}) {
		t.Fatalf("V3.Sub\nhave %v\nwant [1 3 2]", u)
	}
	u.Scale(-1, &v)
	if u != (V3{-1, -2, -4}) {
		t.Fatalf("V3.Scale\nhave %v\nwant [-1 -2 -4]", u)
	}
	if d := v.Dot(&w); d != 6 {
		t.Fatalf("V3.Dot\nhave %v\nwant 6", d)
	}
	if d := v.Dot(&v); d != 21 {
		t.Fatalf("V3.Dot\nhave %v\nwant 21", d)
	}
	if l := v.Len(); l != float32(math.Sqrt(21)) {
		t.Fatalf("V3.Len\nhave %v\nwant %v", l, math.Sqrt(21))
	}

	a := V3{0, 0, -2}
	b := V3{0, 4, 0}
	var na, nb V3
	na.Norm(&a)
	if na != (V3{0, 0, -1}) {
		t.Fatalf("V3.Norm\nhave %v\nwant [0 0 -1]", na)
	}
	nb.Norm(&b)
	if nb != (V3{0, 1, 0}) {
		t.Fatalf("V3.Norm\nhave %v\nwant [0 1 0]", nb)
	}
	u.Cross(&na, &nb)
	if u != (V3{1, 0, 0}) {
		t.Fatalf("V3.Cross\nhave %v\nwant [1 0 0]", u)
	}
	u.Cross(&nb, &na)
	if u != (V3{-1, 0, 0}) {
		t.Fatalf("V3.Cross\nhave %v\nwant [-1 0 0]", u)
	}

	if (&V3{0, 0, 0}).IsZero() != true {
		t.Fatal("V3.IsZero: zero vector should report true")
	}
	if (&V3{0, 0, 1e-7}).IsZero() != false {
		t.Fatal("V3.IsZero: should not treat a tiny nonzero component as zero")
	}

	var mn, mx V3
	mn.Min(&v, &w)
	if mn != (V3{0, -1, 2}) {
		t.Fatalf("V3.Min\nhave %v\nwant [0 -1 2]", mn)
	}
	mx.Max(&v, &w)
	if mx != (V3{1, 2, 4}) {
		t.Fatalf("V3.Max\nhave %v\nwant [1 2 4]", mx)
	}
}

func TestV4(t *testing.T) {
	v3 := V3{1, 2, 3}
	var v4 V4
	v4.FromV3(&v3, 1)
	if v4 != (V4{1, 2, 3, 1}) {
		t.Fatalf("V4.FromV3\nhave %v\nwant [1 2 3 1]", v4)
	}

	var m M4
	m.I()
	var out V4
	out.Mul(&m, &v4)
	if out != v4 {
		t.Fatalf("V4.Mul by identity\nhave %v\nwant %v", out, v4)
	}
}

func TestM4(t *testing.T) {
	var i M4
	i.I()

	// Row-major translation by (1, 2, 3).
	var m M4
	m.FromRowMajor([16]float32{
		1, 0, 0, 1,
		0, 1, 0, 2,
		0, 0, 1, 3,
		0, 0, 0, 1,
	})

	p := V3{0, 0, 0}
	var hp V4
	hp.FromV3(&p, 1)
	var out V4
	out.Mul(&m, &hp)
	if out != (V4{1, 2, 3, 1}) {
		t.Fatalf("M4 translation on point\nhave %v\nwant [1 2 3 1]", out)
	}

	// Direction vectors (w=0) are unaffected by translation.
	d := V3{5, -1, 2}
	var hd V4
	hd.FromV3(&d, 0)
	out.Mul(&m, &hd)
	if out != (V4{5, -1, 2, 0}) {
		t.Fatalf("M4 translation on direction\nhave %v\nwant [5 -1 2 0]", out)
	}

	var tr M4
	tr.Transpose(&m)
	tr.Transpose(&tr)
	if tr != m {
		t.Fatalf("M4.Transpose: double transpose should restore original")
	}
}
