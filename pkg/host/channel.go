package host

import (
	"fmt"

	"github.com/Faultbox/meshattr/pkg/math"
)

// Channel is a dense value array plus a per-corner index array into it.
// Corners[f] has one entry per corner of face f.
type Channel struct {
	Name    string
	Values  []math.Vec3
	Corners [][]int
}

// NewChannel allocates a channel of valueCount zero values and faceCount
// empty faces.
func NewChannel(name string, faceCount, valueCount int) *Channel {
	return &Channel{
		Name:    name,
		Values:  make([]math.Vec3, valueCount),
		Corners: make([][]int, faceCount),
	}
}

// FlatCorners returns the per-corner indices in face-then-corner order.
func (c *Channel) FlatCorners() []int {
	n := 0
	for _, f := range c.Corners {
		n += len(f)
	}
	out := make([]int, 0, n)
	for _, f := range c.Corners {
		out = append(out, f...)
	}
	return out
}

// FlipFace reverses the corner order of face.
func (c *Channel) FlipFace(face int) {
	idx := c.Corners[face]
	for i, j := 0, len(idx)-1; i < j; i, j = i+1, j-1 {
		idx[i], idx[j] = idx[j], idx[i]
	}
}

// Check verifies the channel against a mesh: one index list per face, one
// entry per corner and every entry inside Values.
func (c *Channel) Check(m *Mesh) error {
	if len(c.Corners) != m.FaceCount() {
		return fmt.Errorf("channel %s: %d faces, mesh has %d", c.Name, len(c.Corners), m.FaceCount())
	}
	for f, idx := range c.Corners {
		if len(idx) != m.FaceDegree(f) {
			return fmt.Errorf("channel %s: face %d has %d corners, want %d", c.Name, f, len(idx), m.FaceDegree(f))
		}
		for _, i := range idx {
			if i < 0 || i >= len(c.Values) {
				return fmt.Errorf("channel %s: face %d index %d out of range (values %d)", c.Name, f, i, len(c.Values))
			}
		}
	}
	return nil
}

// PerVertexChannel builds a channel whose corners index values by the
// corner's vertex id.
func PerVertexChannel(name string, m *Mesh, values []math.Vec3) *Channel {
	ch := &Channel{Name: name, Values: values, Corners: make([][]int, m.FaceCount())}
	for f := range ch.Corners {
		ch.Corners[f] = make([]int, m.FaceDegree(f))
		for c := range ch.Corners[f] {
			ch.Corners[f][c] = m.CornerVertex(f, c)
		}
	}
	return ch
}
