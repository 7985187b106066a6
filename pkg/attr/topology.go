package attr

// Topology is the read-only view of a host mesh the attribute model needs.
// Corners are addressed face by face in the host's corner order.
type Topology interface {
	FaceCount() int
	FaceDegree(face int) int
	CornerVertex(face, corner int) int
	VertexCount() int
}

// CornerCount returns the sum of all face degrees.
func CornerCount(topo Topology) int {
	n := 0
	for f := 0; f < topo.FaceCount(); f++ {
		n += topo.FaceDegree(f)
	}
	return n
}

// CornerVertices flattens the per-corner vertex ids in face-then-corner order.
func CornerVertices(topo Topology) []int {
	out := make([]int, 0, CornerCount(topo))
	for f := 0; f < topo.FaceCount(); f++ {
		for c := 0; c < topo.FaceDegree(f); c++ {
			out = append(out, topo.CornerVertex(f, c))
		}
	}
	return out
}
