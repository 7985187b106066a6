package host

import "github.com/Faultbox/meshattr/pkg/math"

// degenerateArea is the cross-product magnitude below which a face is
// treated as degenerate.
const degenerateArea = 1e-5

// ComputeFaceNormals builds a normals channel holding one unit normal per
// face, taken from the first three corners. Every corner of a face indexes
// that face's value. Degenerate faces get the zero vector. Mirrored meshes
// get their normals negated so they keep pointing outward.
func ComputeFaceNormals(m *Mesh) *Channel {
	ch := NewChannel(NormalsName, m.FaceCount(), m.FaceCount())
	for f := 0; f < m.FaceCount(); f++ {
		p0 := m.Points[m.CornerVertex(f, 0)]
		p1 := m.Points[m.CornerVertex(f, 1)]
		p2 := m.Points[m.CornerVertex(f, 2)]

		n := p1.Sub(p0).Cross(p2.Sub(p0))
		if n.Length() >= degenerateArea {
			n = n.Normalize()
			if m.Mirrored {
				n = n.Negate()
			}
			ch.Values[f] = n
		} else {
			ch.Values[f] = math.Vec3{}
		}

		ch.Corners[f] = make([]int, m.FaceDegree(f))
		for c := range ch.Corners[f] {
			ch.Corners[f][c] = f
		}
	}
	return ch
}
