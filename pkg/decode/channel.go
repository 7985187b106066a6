package decode

import (
	"github.com/Faultbox/meshattr/pkg/host"
	"github.com/Faultbox/meshattr/pkg/math"
)

// ChannelBuilder builds a named host channel. The mesh only sees the channel
// once Finalize succeeds; an existing channel with the same name is replaced.
type ChannelBuilder struct {
	mesh    *host.Mesh
	name    string
	staging *host.Channel
}

// NewChannelBuilder returns a builder for channel name on mesh.
func NewChannelBuilder(mesh *host.Mesh, name string) *ChannelBuilder {
	return &ChannelBuilder{mesh: mesh, name: name}
}

// AllocateStorage starts a new staging channel with faceCount faces and valueCount values.
func (b *ChannelBuilder) AllocateStorage(faceCount, valueCount int) {
	b.staging = host.NewChannel(b.name, faceCount, valueCount)
}

// SetValue stores value index.
func (b *ChannelBuilder) SetValue(index int, v math.Vec3) {
	b.staging.Values[index] = v
}

// StartFace sizes the index list of face to degree corners.
func (b *ChannelBuilder) StartFace(face, degree int) {
	b.staging.Corners[face] = make([]int, degree)
}

// SetCornerIndex points corner of face at value dataIndex.
func (b *ChannelBuilder) SetCornerIndex(face, corner, dataIndex int) {
	b.staging.Corners[face][corner] = dataIndex
}

// FlipFaceWinding reverses the corner order of face.
func (b *ChannelBuilder) FlipFaceWinding(face int) {
	b.staging.FlipFace(face)
}

// Finalize installs the staged channel on the mesh.
func (b *ChannelBuilder) Finalize() error {
	if err := b.mesh.SetChannel(b.staging); err != nil {
		return err
	}
	b.staging = nil
	return nil
}
