// Package host implements the host mesh model: a polygon mesh of
// variable-degree faces where each named channel owns a dense value array and
// a per-corner index array into it.
package host

import (
	"errors"
	"fmt"

	"github.com/Faultbox/meshattr/pkg/math"
)

// NormalsName is the reserved name of the single normals channel.
const NormalsName = "normals"

// Mesh errors.
var (
	ErrFaceDegree   = errors.New("face degree below 3")
	ErrCornerCount  = errors.New("face degrees do not match corner list")
	ErrVertexIndex  = errors.New("corner vertex index out of range")
	ErrReservedName = errors.New("channel name is reserved")
)

// Mesh is a polygon mesh with attribute channels.
type Mesh struct {
	Name   string
	Points []math.Vec3

	// Mirrored marks meshes whose stored corner order is reversed relative
	// to interchange data, e.g. nodes with a negative scale determinant.
	Mirrored bool

	// Normals is the reserved normals channel, nil when absent.
	Normals *Channel

	degrees  []int
	offsets  []int
	corners  []int
	channels map[string]*Channel
	order    []string
}

// NewMesh builds a mesh from per-face degrees and the flat list of corner
// vertex ids in face-then-corner order.
func NewMesh(name string, points []math.Vec3, degrees, corners []int) (*Mesh, error) {
	offsets := make([]int, len(degrees))
	total := 0
	for f, d := range degrees {
		if d < 3 {
			return nil, fmt.Errorf("face %d: %w (%d)", f, ErrFaceDegree, d)
		}
		offsets[f] = total
		total += d
	}
	if total != len(corners) {
		return nil, fmt.Errorf("%w: degrees sum to %d, have %d corners", ErrCornerCount, total, len(corners))
	}
	for i, v := range corners {
		if v < 0 || v >= len(points) {
			return nil, fmt.Errorf("corner %d: %w (%d, points %d)", i, ErrVertexIndex, v, len(points))
		}
	}
	return &Mesh{
		Name:     name,
		Points:   points,
		degrees:  degrees,
		offsets:  offsets,
		corners:  corners,
		channels: make(map[string]*Channel),
	}, nil
}

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int {
	return len(m.degrees)
}

// FaceDegree returns the corner count of face.
func (m *Mesh) FaceDegree(face int) int {
	return m.degrees[face]
}

// CornerVertex returns the vertex id at a face corner.
func (m *Mesh) CornerVertex(face, corner int) int {
	return m.corners[m.offsets[face]+corner]
}

// VertexCount returns the number of points, including ones no face uses.
func (m *Mesh) VertexCount() int {
	return len(m.Points)
}

// CornerCount returns the total number of face corners.
func (m *Mesh) CornerCount() int {
	return len(m.corners)
}

// FaceDegrees returns a copy of the per-face corner counts.
func (m *Mesh) FaceDegrees() []int {
	return append([]int(nil), m.degrees...)
}

// Channel returns a named channel, or nil.
func (m *Mesh) Channel(name string) *Channel {
	return m.channels[name]
}

// ChannelNames returns channel names in insertion order.
func (m *Mesh) ChannelNames() []string {
	return append([]string(nil), m.order...)
}

// SetChannel installs ch, replacing any channel with the same name.
func (m *Mesh) SetChannel(ch *Channel) error {
	if ch.Name == NormalsName {
		return fmt.Errorf("%w: %s", ErrReservedName, ch.Name)
	}
	if _, ok := m.channels[ch.Name]; !ok {
		m.order = append(m.order, ch.Name)
	}
	m.channels[ch.Name] = ch
	return nil
}

// RemoveChannel deletes a named channel. Missing names are ignored.
func (m *Mesh) RemoveChannel(name string) {
	if _, ok := m.channels[name]; !ok {
		return
	}
	delete(m.channels, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}
