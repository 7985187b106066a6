package decode

import (
	"github.com/Faultbox/meshattr/pkg/host"
	"github.com/Faultbox/meshattr/pkg/math"
)

// NormalsBuilder builds the mesh's reserved normals channel. Values are
// normalized on Finalize; zero vectors stay zero.
type NormalsBuilder struct {
	mesh    *host.Mesh
	staging *host.Channel
}

// NewNormalsBuilder returns a builder for mesh.Normals.
func NewNormalsBuilder(mesh *host.Mesh) *NormalsBuilder {
	return &NormalsBuilder{mesh: mesh}
}

// AllocateStorage starts a new staging channel with faceCount faces and valueCount values.
func (b *NormalsBuilder) AllocateStorage(faceCount, valueCount int) {
	b.staging = host.NewChannel(host.NormalsName, faceCount, valueCount)
}

// SetValue stores value index.
func (b *NormalsBuilder) SetValue(index int, v math.Vec3) {
	b.staging.Values[index] = v
}

// StartFace sizes the index list of face to degree corners.
func (b *NormalsBuilder) StartFace(face, degree int) {
	b.staging.Corners[face] = make([]int, degree)
}

// SetCornerIndex points corner of face at value dataIndex.
func (b *NormalsBuilder) SetCornerIndex(face, corner, dataIndex int) {
	b.staging.Corners[face][corner] = dataIndex
}

// FlipFaceWinding reverses the corner order of face.
func (b *NormalsBuilder) FlipFaceWinding(face int) {
	b.staging.FlipFace(face)
}

// Finalize normalizes the staged values and installs them as the mesh normals.
func (b *NormalsBuilder) Finalize() error {
	for i, n := range b.staging.Values {
		b.staging.Values[i] = n.Normalize()
	}
	b.mesh.Normals = b.staging
	b.staging = nil
	return nil
}
