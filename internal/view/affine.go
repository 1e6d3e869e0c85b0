package view

import "math"

// Affine is the 2D affine map (x, y) -> (A*x + B*y + C, D*x + E*y + F).
type Affine struct {
	A, B, C float64
	D, E, F float64
}

func Identity() Affine {
	return Affine{A: 1, E: 1}
}

// Mul returns m∘n: n is applied first.
func (m Affine) Mul(n Affine) Affine {
	return Affine{
		A: m.A*n.A + m.B*n.D,
		B: m.A*n.B + m.B*n.E,
		C: m.A*n.C + m.B*n.F + m.C,
		D: m.D*n.A + m.E*n.D,
		E: m.D*n.B + m.E*n.E,
		F: m.D*n.C + m.E*n.F + m.F,
	}
}

// Translate post-multiplies a translation, like a canvas translate call.
func (m Affine) Translate(tx, ty float64) Affine {
	return m.Mul(Affine{A: 1, C: tx, E: 1, F: ty})
}

func (m Affine) Scale(sx, sy float64) Affine {
	return m.Mul(Affine{A: sx, E: sy})
}

func (m Affine) Rotate(rad float64) Affine {
	sin, cos := math.Sincos(rad)
	return m.Mul(Affine{A: cos, B: -sin, D: sin, E: cos})
}

func (m Affine) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

func (m Affine) Det() float64 {
	return m.A*m.E - m.B*m.D
}

// Mirrored reports whether the map flips orientation, which would draw
// text glyphs mirrored.
func (m Affine) Mirrored() bool {
	return m.Det() < 0
}

// LinearScale is the geometric mean stretch of the map, used to convert
// lengths such as stroke weights and radii into device units.
func (m Affine) LinearScale() float64 {
	return math.Sqrt(math.Abs(m.Det()))
}

func (m Affine) Invert() (Affine, bool) {
	det := m.Det()
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Affine{}, false
	}
	inv := 1 / det
	return Affine{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.E*m.C) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.D*m.C - m.A*m.F) * inv,
	}, true
}
