package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// RSM format errors.
var (
	ErrInvalidRSMMagic       = errors.New("invalid RSM magic: expected 'GRSM'")
	ErrUnsupportedRSMVersion = errors.New("unsupported RSM version")
	ErrTruncatedRSMData      = errors.New("truncated RSM data")
	ErrInvalidRSMCount       = errors.New("invalid RSM element count")
)

// Upper bounds for element counts; anything larger is a corrupt file.
const (
	maxRSMNodes     = 10000
	maxRSMTextures  = 1000
	maxRSMElements  = 100000
	maxRSMKeyframes = 10000
	rsmNameLength   = 40
)

// RSMVersion represents the RSM file version.
type RSMVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v RSMVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// AtLeast returns true if version is >= major.minor.
func (v RSMVersion) AtLeast(major, minor uint8) bool {
	return v.Major > major || (v.Major == major && v.Minor >= minor)
}

// RSMShadingType represents the shading mode for rendering.
type RSMShadingType int32

const (
	RSMShadingNone   RSMShadingType = 0
	RSMShadingFlat   RSMShadingType = 1
	RSMShadingSmooth RSMShadingType = 2
)

// String returns a human-readable shading type name.
func (s RSMShadingType) String() string {
	switch s {
	case RSMShadingNone:
		return "None"
	case RSMShadingFlat:
		return "Flat"
	case RSMShadingSmooth:
		return "Smooth"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// RSMTexCoord is one entry of a node's texture coordinate table. Faces
// address it per corner, so it is a face-varying channel with its own index.
type RSMTexCoord struct {
	Color [4]uint8 // RGBA vertex color (v1.2+, white before)
	U, V  float32
}

// RSMFace is a triangle. VertexIDs and TexCoordIDs are parallel per corner.
type RSMFace struct {
	VertexIDs   [3]uint16
	TexCoordIDs [3]uint16
	TextureID   uint16
	Padding     uint16
	TwoSide     int32
	SmoothGroup int32 // v1.2+
}

// RSMPosKeyframe represents a position animation keyframe.
type RSMPosKeyframe struct {
	Frame    int32
	Position [3]float32
}

// RSMRotKeyframe represents a rotation animation keyframe.
type RSMRotKeyframe struct {
	Frame      int32
	Quaternion [4]float32
}

// RSMScaleKeyframe represents a scale animation keyframe.
type RSMScaleKeyframe struct {
	Frame int32
	Scale [3]float32
}

// RSMNode is one mesh node of the model hierarchy.
type RSMNode struct {
	Name       string
	Parent     string
	TextureIDs []int32

	Matrix   [9]float32
	Offset   [3]float32
	Position [3]float32
	RotAngle float32
	RotAxis  [3]float32
	Scale    [3]float32

	Vertices  [][3]float32
	TexCoords []RSMTexCoord
	Faces     []RSMFace

	PosKeys   []RSMPosKeyframe   // v < 1.5
	RotKeys   []RSMRotKeyframe
	ScaleKeys []RSMScaleKeyframe // v >= 1.5
}

// HasAnimation reports whether the node carries any keyframes.
func (n *RSMNode) HasAnimation() bool {
	return len(n.PosKeys) > 0 || len(n.RotKeys) > 0 || len(n.ScaleKeys) > 0
}

// RSM represents a parsed RSM (Resource Model) file.
type RSM struct {
	Version    RSMVersion
	AnimLength int32 // milliseconds
	Shading    RSMShadingType
	Alpha      float32
	Textures   []string
	RootNode   string
	Nodes      []RSMNode
}

// HasAnimation reports whether any node carries keyframes.
func (m *RSM) HasAnimation() bool {
	for i := range m.Nodes {
		if m.Nodes[i].HasAnimation() {
			return true
		}
	}
	return false
}

// NodeByName returns a node by its name, or nil if not found.
func (m *RSM) NodeByName(name string) *RSMNode {
	for i := range m.Nodes {
		if m.Nodes[i].Name == name {
			return &m.Nodes[i]
		}
	}
	return nil
}

// rsmReader reads little-endian fields and remembers the first failure, so
// parse code can read a run of fields and check once.
type rsmReader struct {
	r   *bytes.Reader
	err error
}

func (rr *rsmReader) read(v any) {
	if rr.err != nil {
		return
	}
	if err := binary.Read(rr.r, binary.LittleEndian, v); err != nil {
		rr.err = ErrTruncatedRSMData
	}
}

// count reads an int32 element count and checks it against limit.
func (rr *rsmReader) count(what string, limit int32) int {
	var n int32
	rr.read(&n)
	if rr.err != nil {
		return 0
	}
	if n < 0 || n > limit {
		rr.err = fmt.Errorf("%w: %d %s", ErrInvalidRSMCount, n, what)
		return 0
	}
	return int(n)
}

// name reads a fixed-size, NUL-terminated EUC-KR string.
func (rr *rsmReader) name() string {
	buf := make([]byte, rsmNameLength)
	rr.read(buf)
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	out, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), buf)
	if err != nil {
		return string(buf)
	}
	return string(out)
}

func (rr *rsmReader) skip(n int64) {
	if rr.err != nil {
		return
	}
	if int64(rr.r.Len()) < n {
		rr.err = ErrTruncatedRSMData
		return
	}
	rr.r.Seek(n, io.SeekCurrent)
}

// ParseRSM parses RSM data from a byte slice. Versions 1.1 to 1.5 are
// supported.
func ParseRSM(data []byte) (*RSM, error) {
	if len(data) < 6 {
		return nil, ErrTruncatedRSMData
	}
	if string(data[:4]) != "GRSM" {
		return nil, ErrInvalidRSMMagic
	}

	rr := &rsmReader{r: bytes.NewReader(data[4:])}
	m := &RSM{Alpha: 1}

	rr.read(&m.Version.Major)
	rr.read(&m.Version.Minor)
	if m.Version.Major != 1 || m.Version.Minor < 1 || m.Version.Minor > 5 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRSMVersion, m.Version)
	}

	rr.read(&m.AnimLength)
	rr.read(&m.Shading)
	if m.Version.AtLeast(1, 4) {
		var alpha uint8
		rr.read(&alpha)
		m.Alpha = float32(alpha) / 255
	}
	rr.skip(16)

	m.Textures = make([]string, rr.count("textures", maxRSMTextures))
	for i := range m.Textures {
		m.Textures[i] = rr.name()
	}
	m.RootNode = rr.name()

	m.Nodes = make([]RSMNode, rr.count("nodes", maxRSMNodes))
	if rr.err != nil {
		return nil, rr.err
	}
	for i := range m.Nodes {
		parseRSMNode(rr, m.Version, &m.Nodes[i])
		if rr.err != nil {
			return nil, fmt.Errorf("parsing node %d: %w", i, rr.err)
		}
	}

	return m, nil
}

func parseRSMNode(rr *rsmReader, version RSMVersion, node *RSMNode) {
	node.Name = rr.name()
	node.Parent = rr.name()

	node.TextureIDs = make([]int32, rr.count("texture ids", maxRSMTextures))
	rr.read(node.TextureIDs)

	rr.read(&node.Matrix)
	rr.read(&node.Offset)
	rr.read(&node.Position)
	rr.read(&node.RotAngle)
	rr.read(&node.RotAxis)
	rr.read(&node.Scale)

	node.Vertices = make([][3]float32, rr.count("vertices", maxRSMElements))
	rr.read(node.Vertices)

	node.TexCoords = make([]RSMTexCoord, rr.count("texcoords", maxRSMElements))
	for i := range node.TexCoords {
		tc := &node.TexCoords[i]
		if version.AtLeast(1, 2) {
			rr.read(&tc.Color)
		} else {
			tc.Color = [4]uint8{255, 255, 255, 255}
		}
		rr.read(&tc.U)
		rr.read(&tc.V)
	}

	node.Faces = make([]RSMFace, rr.count("faces", maxRSMElements))
	for i := range node.Faces {
		face := &node.Faces[i]
		rr.read(&face.VertexIDs)
		rr.read(&face.TexCoordIDs)
		rr.read(&face.TextureID)
		rr.read(&face.Padding)
		rr.read(&face.TwoSide)
		if version.AtLeast(1, 2) {
			rr.read(&face.SmoothGroup)
		}
	}

	if !version.AtLeast(1, 5) {
		node.PosKeys = make([]RSMPosKeyframe, rr.count("position keys", maxRSMKeyframes))
		rr.read(node.PosKeys)
	}

	node.RotKeys = make([]RSMRotKeyframe, rr.count("rotation keys", maxRSMKeyframes))
	rr.read(node.RotKeys)

	if version.AtLeast(1, 5) {
		node.ScaleKeys = make([]RSMScaleKeyframe, rr.count("scale keys", maxRSMKeyframes))
		rr.read(node.ScaleKeys)
	}
}

// ParseRSMFile parses an RSM file from disk.
func ParseRSMFile(path string) (*RSM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading RSM file: %w", err)
	}
	return ParseRSM(data)
}
