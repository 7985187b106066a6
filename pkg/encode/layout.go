// Package encode translates host channels into interchange attributes.
//
// Encoding happens in two steps. InferLayout picks the cheapest domain that
// reproduces the channel exactly, then Populate lays the values (and index,
// if needed) out for that domain.
package encode

import (
	"go.uber.org/zap"

	"github.com/Faultbox/meshattr/internal/logger"
	"github.com/Faultbox/meshattr/pkg/attr"
	"github.com/Faultbox/meshattr/pkg/host"
)

// Layout is the domain decision for one channel.
type Layout struct {
	Domain  attr.Domain
	Indexed bool
}

// String returns e.g. "vertex/indexed".
func (l Layout) String() string {
	if l.Indexed {
		return l.Domain.String() + "/indexed"
	}
	return l.Domain.String()
}

var faceVaryingIndexed = Layout{Domain: attr.DomainFaceVarying, Indexed: true}

// InferLayout chooses the cheapest domain that represents ch on topo.
//
// Animated channels always get faceVarying indexed so the layout cannot
// change between samples.
func InferLayout(ch *host.Channel, topo attr.Topology, animated bool) Layout {
	if animated {
		return faceVaryingIndexed
	}

	if allEqual(ch) {
		return Layout{Domain: attr.DomainConstant}
	}

	if !sameShape(ch, topo) {
		logger.Warn("channel corners disagree with topology, using faceVarying indexed",
			zap.String("channel", ch.Name),
			zap.Int("faces", len(ch.Corners)),
			zap.Int("topologyFaces", topo.FaceCount()))
		return faceVaryingIndexed
	}
	corners := ch.FlatCorners()
	total := len(corners)

	// Corners that already follow the mesh's vertex order are vertex data,
	// even when there happen to be as many values as corners.
	cornerVertices := attr.CornerVertices(topo)
	if equalInts(corners, cornerVertices) {
		return Layout{Domain: attr.DomainVertex}
	}

	if len(ch.Values) == total {
		return Layout{Domain: attr.DomainFaceVarying}
	}

	vertexData := make([]int, topo.VertexCount())
	for i := range vertexData {
		vertexData[i] = -1
	}
	for i, v := range cornerVertices {
		d := corners[i]
		if vertexData[v] == -1 {
			vertexData[v] = d
		} else if vertexData[v] != d {
			// One vertex feeds two different values.
			return faceVaryingIndexed
		}
	}

	return Layout{
		Domain:  attr.DomainVertex,
		Indexed: len(ch.Values) != topo.VertexCount(),
	}
}

// sameShape reports whether ch has one index list per face of topo with one
// entry per corner.
func sameShape(ch *host.Channel, topo attr.Topology) bool {
	if len(ch.Corners) != topo.FaceCount() {
		return false
	}
	for f, idx := range ch.Corners {
		if len(idx) != topo.FaceDegree(f) {
			return false
		}
	}
	return true
}

func allEqual(ch *host.Channel) bool {
	if len(ch.Values) == 0 {
		return false
	}
	first := ch.Values[0]
	for _, v := range ch.Values[1:] {
		if v != first {
			return false
		}
	}
	return true
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
