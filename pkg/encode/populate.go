package encode

import (
	"github.com/Faultbox/meshattr/pkg/attr"
	"github.com/Faultbox/meshattr/pkg/host"
)

// Populate lays out ch's values for layout, packed into containers of kind's
// dimension. The index slice is nil for unindexed layouts.
//
// Vertex indexed output pads vertices no corner touches with index 0.
// With mirror set, faceVarying data lists each face's corners in reverse,
// matching what the decoder undoes for mirrored meshes.
func Populate(ch *host.Channel, topo attr.Topology, layout Layout, kind attr.Kind, mirror bool) (attr.Values, []int) {
	dim := attr.ComponentDimension(kind)

	switch {
	case layout.Domain == attr.DomainConstant:
		out := attr.NewValues(dim, 1)
		attr.Pack(out, 0, ch.Values[0])
		return out, nil

	case layout.Domain == attr.DomainFaceVarying && !layout.Indexed:
		corners := faceVaryingCorners(ch, mirror)
		out := attr.NewValues(dim, len(corners))
		for i, idx := range corners {
			attr.Pack(out, i, ch.Values[idx])
		}
		return out, nil

	case layout.Domain == attr.DomainVertex:
		vertexData := mapVertices(ch, topo)
		if !layout.Indexed {
			out := attr.NewValues(dim, len(vertexData))
			for v, d := range vertexData {
				if d >= 0 {
					attr.Pack(out, v, ch.Values[d])
				}
			}
			return out, nil
		}
		indices := make([]int, len(vertexData))
		for v, d := range vertexData {
			if d >= 0 {
				indices[v] = d
			}
		}
		return packAll(ch, dim), indices

	default:
		return packAll(ch, dim), faceVaryingCorners(ch, mirror)
	}
}

// faceVaryingCorners flattens ch's corner indices in faceVarying order.
func faceVaryingCorners(ch *host.Channel, mirror bool) []int {
	n := 0
	for _, idx := range ch.Corners {
		n += len(idx)
	}
	out := make([]int, n)
	base := 0
	for _, idx := range ch.Corners {
		for c, d := range idx {
			out[attr.FaceVaryingPosition(base, len(idx), c, mirror)] = d
		}
		base += len(idx)
	}
	return out
}

// mapVertices maps each vertex id to the data index its corners use, -1 for
// vertices no corner references. The scan stops once every vertex is seen.
func mapVertices(ch *host.Channel, topo attr.Topology) []int {
	vertexData := make([]int, topo.VertexCount())
	for i := range vertexData {
		vertexData[i] = -1
	}

	remaining := len(vertexData)
	for f := 0; f < topo.FaceCount() && remaining > 0; f++ {
		for c := 0; c < topo.FaceDegree(f); c++ {
			v := topo.CornerVertex(f, c)
			if vertexData[v] == -1 {
				vertexData[v] = ch.Corners[f][c]
				remaining--
			}
		}
	}
	return vertexData
}

func packAll(ch *host.Channel, dim int) attr.Values {
	out := attr.NewValues(dim, len(ch.Values))
	for i, v := range ch.Values {
		attr.Pack(out, i, v)
	}
	return out
}
