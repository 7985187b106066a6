// Package decode translates interchange attributes into host channels.
//
// Build drives a Builder through validation, allocation, value fill and
// per-corner index assignment. Nothing is allocated until validation has
// passed, and a Builder only publishes its channel in Finalize, so a rejected
// attribute never leaves a partially written channel behind.
package decode

import (
	"go.uber.org/zap"

	"github.com/Faultbox/meshattr/internal/logger"
	"github.com/Faultbox/meshattr/pkg/attr"
	"github.com/Faultbox/meshattr/pkg/math"
)

// Builder receives a decoded attribute for one kind of host channel.
type Builder interface {
	AllocateStorage(faceCount, valueCount int)
	SetValue(index int, v math.Vec3)
	StartFace(face, degree int)
	SetCornerIndex(face, corner, dataIndex int)
	FlipFaceWinding(face int)
	Finalize() error
}

// Build decodes a onto topo through b. mirror requests corner-order reversal
// for faceVarying data. On rejection the returned error is an *attr.Error
// and b has not been touched.
func Build(b Builder, a *attr.Attribute, topo attr.Topology, mirror bool) error {
	if err := check(a, topo); err != nil {
		logger.Warn("rejected attribute",
			zap.String("attribute", a.Name),
			zap.Error(err))
		return err
	}

	valueCount := a.Values.Len()
	b.AllocateStorage(topo.FaceCount(), valueCount)

	truncated := false
	for i := 0; i < valueCount; i++ {
		v, cut := attr.Widen(a.Values, i)
		truncated = truncated || cut
		b.SetValue(i, v)
	}
	if truncated {
		logger.Warn("fourth component discarded, host values hold three",
			zap.String("attribute", a.Name),
			zap.Stringer("kind", a.Kind))
	}

	flip := mirror && a.Domain == attr.DomainFaceVarying
	running := 0
	for f := 0; f < topo.FaceCount(); f++ {
		degree := topo.FaceDegree(f)
		b.StartFace(f, degree)
		for c := 0; c < degree; c++ {
			d := attr.Resolve(a.Domain, a.Indices, f, topo.CornerVertex(f, c), running)
			b.SetCornerIndex(f, c, d)
			running++
		}
		if flip {
			b.FlipFaceWinding(f)
		}
	}

	return b.Finalize()
}

// check runs every rejection test before any storage is allocated.
func check(a *attr.Attribute, topo attr.Topology) error {
	if a.Name == "" {
		return attr.Errorf(attr.PhaseDecode, attr.KindInvalidName, "", "empty attribute name")
	}
	dim := a.Dimension()
	if dim < 1 || dim > 4 {
		return attr.UnsupportedDimension(attr.PhaseDecode, a.Name, a.Kind)
	}
	if a.Values == nil || !attr.Castable(a.Values) {
		return attr.Errorf(attr.PhaseDecode, attr.KindUncastableValues, a.Name,
			"value container %T is not a float vector array", a.Values)
	}
	if a.Values.Dimension() != dim {
		return attr.Errorf(attr.PhaseDecode, attr.KindUncastableValues, a.Name,
			"kind %s declares %d components, container holds %d", a.Kind, dim, a.Values.Dimension())
	}
	if err := attr.Check(a.Values.Len(), a.Indices, topo, a.Domain, a.Indexed()); err != nil {
		if e, ok := err.(*attr.Error); ok {
			e.Attribute = a.Name
		}
		return err
	}
	return nil
}
