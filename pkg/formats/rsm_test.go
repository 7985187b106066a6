package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/korean"

	"github.com/Faultbox/meshattr/pkg/host"
)

// rsmBuilder writes RSM files field by field for tests.
type rsmBuilder struct {
	buf     bytes.Buffer
	version RSMVersion
}

func newRSM(major, minor uint8, textures []string, nodes int32) *rsmBuilder {
	b := &rsmBuilder{version: RSMVersion{major, minor}}
	b.buf.WriteString("GRSM")
	b.put(major, minor)
	b.put(int32(0))              // anim length
	b.put(int32(RSMShadingFlat)) // shading
	if b.version.AtLeast(1, 4) {
		b.put(uint8(255))
	}
	b.put(make([]byte, 16))
	b.put(int32(len(textures)))
	for _, tex := range textures {
		b.name(tex)
	}
	b.name("root")
	b.put(nodes)
	return b
}

func (b *rsmBuilder) put(vs ...any) {
	for _, v := range vs {
		binary.Write(&b.buf, binary.LittleEndian, v)
	}
}

func (b *rsmBuilder) name(s string) {
	field := make([]byte, rsmNameLength)
	copy(field, s)
	b.buf.Write(field)
}

type testNode struct {
	name      string
	scale     [3]float32
	vertices  [][3]float32
	texCoords []RSMTexCoord
	faces     []RSMFace
	rotKeys   int
}

func (b *rsmBuilder) node(n testNode) *rsmBuilder {
	b.name(n.name)
	b.name("")
	b.put(int32(1), int32(0)) // one texture id
	b.put([9]float32{1, 0, 0, 0, 1, 0, 0, 0, 1})
	b.put([3]float32{}, [3]float32{}) // offset, position
	b.put(float32(0), [3]float32{})   // rotation
	b.put(n.scale)

	b.put(int32(len(n.vertices)))
	for _, v := range n.vertices {
		b.put(v)
	}
	b.put(int32(len(n.texCoords)))
	for _, tc := range n.texCoords {
		if b.version.AtLeast(1, 2) {
			b.put(tc.Color)
		}
		b.put(tc.U, tc.V)
	}
	b.put(int32(len(n.faces)))
	for _, f := range n.faces {
		b.put(f.VertexIDs, f.TexCoordIDs, f.TextureID, f.Padding, f.TwoSide)
		if b.version.AtLeast(1, 2) {
			b.put(f.SmoothGroup)
		}
	}

	if !b.version.AtLeast(1, 5) {
		b.put(int32(0))
	}
	b.put(int32(n.rotKeys))
	for i := 0; i < n.rotKeys; i++ {
		b.put(int32(i*100), [4]float32{0, 0, 0, 1})
	}
	if b.version.AtLeast(1, 5) {
		b.put(int32(0))
	}
	return b
}

func (b *rsmBuilder) bytes() []byte { return b.buf.Bytes() }

// quadNode is a unit quad split into two triangles sharing an edge.
func quadNode(scale [3]float32) testNode {
	white := [4]uint8{255, 255, 255, 255}
	return testNode{
		name:     "quad",
		scale:    scale,
		vertices: [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		texCoords: []RSMTexCoord{
			{Color: white, U: 0, V: 0},
			{Color: white, U: 1, V: 0},
			{Color: [4]uint8{255, 0, 0, 255}, U: 1, V: 1},
			{Color: white, U: 0, V: 1},
		},
		faces: []RSMFace{
			{VertexIDs: [3]uint16{0, 1, 2}, TexCoordIDs: [3]uint16{0, 1, 2}},
			{VertexIDs: [3]uint16{0, 2, 3}, TexCoordIDs: [3]uint16{0, 2, 3}},
		},
	}
}

func TestParseRSM_MagicValidation(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"valid magic", newRSM(1, 5, nil, 0).bytes(), nil},
		{"invalid magic", append([]byte("XXXX"), newRSM(1, 5, nil, 0).bytes()[4:]...), ErrInvalidRSMMagic},
		{"empty data", []byte{}, ErrTruncatedRSMData},
		{"truncated data", []byte{'G', 'R', 'S'}, ErrTruncatedRSMData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRSM(tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseRSM() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseRSM_VersionSupport(t *testing.T) {
	tests := []struct {
		name    string
		major   uint8
		minor   uint8
		wantErr bool
	}{
		{"v1.0", 1, 0, true},
		{"v1.1", 1, 1, false},
		{"v1.2", 1, 2, false},
		{"v1.3", 1, 3, false},
		{"v1.4", 1, 4, false},
		{"v1.5", 1, 5, false},
		{"v1.6", 1, 6, true},
		{"v2.2", 2, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRSM(newRSM(tt.major, tt.minor, nil, 0).bytes())
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseRSM() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnsupportedRSMVersion) {
				t.Errorf("error = %v, want ErrUnsupportedRSMVersion", err)
			}
		})
	}
}

func TestRSMVersion_String(t *testing.T) {
	tests := []struct {
		version RSMVersion
		want    string
	}{
		{RSMVersion{1, 4}, "1.4"},
		{RSMVersion{1, 5}, "1.5"},
	}

	for _, tt := range tests {
		if got := tt.version.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestRSMVersion_AtLeast(t *testing.T) {
	v := RSMVersion{1, 4}
	tests := []struct {
		major, minor uint8
		want         bool
	}{
		{1, 3, true},
		{1, 4, true},
		{1, 5, false},
		{0, 9, true},
		{2, 0, false},
	}

	for _, tt := range tests {
		if got := v.AtLeast(tt.major, tt.minor); got != tt.want {
			t.Errorf("AtLeast(%d, %d) = %v, want %v", tt.major, tt.minor, got, tt.want)
		}
	}
}

func TestRSMShadingType_String(t *testing.T) {
	tests := []struct {
		s    RSMShadingType
		want string
	}{
		{RSMShadingNone, "None"},
		{RSMShadingFlat, "Flat"},
		{RSMShadingSmooth, "Smooth"},
		{RSMShadingType(9), "Unknown(9)"},
	}

	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseRSM_Header(t *testing.T) {
	m, err := ParseRSM(newRSM(1, 4, []string{"wall.bmp"}, 0).bytes())
	if err != nil {
		t.Fatalf("ParseRSM() error = %v", err)
	}
	if m.Shading != RSMShadingFlat {
		t.Errorf("Shading = %v, want Flat", m.Shading)
	}
	if m.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", m.Alpha)
	}
	if len(m.Textures) != 1 || m.Textures[0] != "wall.bmp" {
		t.Errorf("Textures = %v, want [wall.bmp]", m.Textures)
	}
	if m.RootNode != "root" {
		t.Errorf("RootNode = %q, want root", m.RootNode)
	}
}

func TestParseRSM_KoreanNames(t *testing.T) {
	encoded, err := korean.EUCKR.NewEncoder().String("바닥.bmp")
	if err != nil {
		t.Fatalf("encoding name: %v", err)
	}
	m, err := ParseRSM(newRSM(1, 5, []string{encoded}, 0).bytes())
	if err != nil {
		t.Fatalf("ParseRSM() error = %v", err)
	}
	if m.Textures[0] != "바닥.bmp" {
		t.Errorf("Textures[0] = %q, want 바닥.bmp", m.Textures[0])
	}
}

func TestParseRSM_Node(t *testing.T) {
	for _, v := range []RSMVersion{{1, 1}, {1, 3}, {1, 5}} {
		t.Run(v.String(), func(t *testing.T) {
			n := quadNode([3]float32{1, 1, 1})
			n.rotKeys = 2
			data := newRSM(v.Major, v.Minor, []string{"t.bmp"}, 1).node(n).bytes()

			m, err := ParseRSM(data)
			if err != nil {
				t.Fatalf("ParseRSM() error = %v", err)
			}
			if len(m.Nodes) != 1 {
				t.Fatalf("len(Nodes) = %d, want 1", len(m.Nodes))
			}
			node := m.NodeByName("quad")
			if node == nil {
				t.Fatal("NodeByName(quad) = nil")
			}
			if len(node.Vertices) != 4 || len(node.TexCoords) != 4 || len(node.Faces) != 2 {
				t.Errorf("counts = %d/%d/%d, want 4/4/2", len(node.Vertices), len(node.TexCoords), len(node.Faces))
			}
			if node.Faces[1].VertexIDs != [3]uint16{0, 2, 3} {
				t.Errorf("Faces[1].VertexIDs = %v", node.Faces[1].VertexIDs)
			}
			if len(node.RotKeys) != 2 || !m.HasAnimation() {
				t.Errorf("RotKeys = %d, HasAnimation = %v", len(node.RotKeys), m.HasAnimation())
			}
			wantColor := [4]uint8{255, 0, 0, 255}
			if !v.AtLeast(1, 2) {
				wantColor = [4]uint8{255, 255, 255, 255}
			}
			if node.TexCoords[2].Color != wantColor {
				t.Errorf("TexCoords[2].Color = %v, want %v", node.TexCoords[2].Color, wantColor)
			}
		})
	}
}

func TestParseRSM_Truncated(t *testing.T) {
	data := newRSM(1, 5, nil, 1).node(quadNode([3]float32{1, 1, 1})).bytes()
	_, err := ParseRSM(data[:len(data)-10])
	if !errors.Is(err, ErrTruncatedRSMData) {
		t.Errorf("error = %v, want ErrTruncatedRSMData", err)
	}
}

func TestParseRSM_InvalidCount(t *testing.T) {
	_, err := ParseRSM(newRSM(1, 5, nil, -1).bytes())
	if !errors.Is(err, ErrInvalidRSMCount) {
		t.Errorf("error = %v, want ErrInvalidRSMCount", err)
	}
}

func TestParseRSMFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.rsm")
	data := newRSM(1, 5, nil, 1).node(quadNode([3]float32{1, 1, 1})).bytes()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := ParseRSMFile(path)
	if err != nil {
		t.Fatalf("ParseRSMFile() error = %v", err)
	}
	if len(m.Nodes) != 1 {
		t.Errorf("len(Nodes) = %d, want 1", len(m.Nodes))
	}
	if _, err := ParseRSMFile(filepath.Join(t.TempDir(), "missing.rsm")); err == nil {
		t.Error("expected error for missing file")
	}
}

func parseQuad(t *testing.T, scale [3]float32) *host.Mesh {
	t.Helper()
	m, err := ParseRSM(newRSM(1, 5, nil, 1).node(quadNode(scale)).bytes())
	if err != nil {
		t.Fatalf("ParseRSM() error = %v", err)
	}
	mesh, err := m.Nodes[0].HostMesh()
	if err != nil {
		t.Fatalf("HostMesh() error = %v", err)
	}
	return mesh
}

func TestRSMNode_HostMesh(t *testing.T) {
	mesh := parseQuad(t, [3]float32{1, 1, 1})

	if mesh.FaceCount() != 2 || mesh.VertexCount() != 4 || mesh.CornerCount() != 6 {
		t.Fatalf("faces/vertices/corners = %d/%d/%d, want 2/4/6",
			mesh.FaceCount(), mesh.VertexCount(), mesh.CornerCount())
	}
	if mesh.Mirrored {
		t.Error("Mirrored = true, want false")
	}

	uv := mesh.Channel(UVChannel)
	if uv == nil {
		t.Fatal("missing uv channel")
	}
	if err := uv.Check(mesh); err != nil {
		t.Errorf("uv.Check() = %v", err)
	}
	if got := uv.Values[2]; got.X != 1 || got.Y != 1 || got.Z != 0 {
		t.Errorf("uv[2] = %v, want (1, 1, 0)", got)
	}

	color := mesh.Channel(ColorChannel)
	if color == nil {
		t.Fatal("missing color channel")
	}
	if got := color.Values[2]; got.X != 1 || got.Y != 0 || got.Z != 0 {
		t.Errorf("color[2] = %v, want (1, 0, 0)", got)
	}
	if got := color.FlatCorners(); !equalIndices(got, []int{0, 1, 2, 0, 2, 3}) {
		t.Errorf("color corners = %v", got)
	}

	if mesh.Normals == nil {
		t.Fatal("Normals = nil")
	}
	if n := mesh.Normals.Values[0]; n.Z != 1 {
		t.Errorf("normal[0] = %v, want +Z", n)
	}
}

func TestRSMNode_HostMeshMirrored(t *testing.T) {
	mesh := parseQuad(t, [3]float32{-1, 1, 1})
	if !mesh.Mirrored {
		t.Error("Mirrored = false, want true")
	}
	if n := mesh.Normals.Values[0]; n.Z != -1 {
		t.Errorf("normal[0] = %v, want -Z", n)
	}
}

func TestRSMNode_HostMeshBadTexCoord(t *testing.T) {
	n := quadNode([3]float32{1, 1, 1})
	n.faces[0].TexCoordIDs[2] = 9
	m, err := ParseRSM(newRSM(1, 5, nil, 1).node(n).bytes())
	if err != nil {
		t.Fatalf("ParseRSM() error = %v", err)
	}
	if _, err := m.Nodes[0].HostMesh(); err == nil {
		t.Error("expected error for out-of-range texcoord id")
	}
}

func TestRSMNode_HostMeshBadVertex(t *testing.T) {
	n := quadNode([3]float32{1, 1, 1})
	n.faces[1].VertexIDs[2] = 7
	m, err := ParseRSM(newRSM(1, 5, nil, 1).node(n).bytes())
	if err != nil {
		t.Fatalf("ParseRSM() error = %v", err)
	}
	if _, err := m.Nodes[0].HostMesh(); !errors.Is(err, host.ErrVertexIndex) {
		t.Errorf("error = %v, want ErrVertexIndex", err)
	}
}

func TestRSM_HostMeshesSkipsEmptyNodes(t *testing.T) {
	data := newRSM(1, 5, nil, 2).
		node(testNode{name: "empty", scale: [3]float32{1, 1, 1}}).
		node(quadNode([3]float32{1, 1, 1})).
		bytes()
	m, err := ParseRSM(data)
	if err != nil {
		t.Fatalf("ParseRSM() error = %v", err)
	}
	meshes, err := m.HostMeshes()
	if err != nil {
		t.Fatalf("HostMeshes() error = %v", err)
	}
	if len(meshes) != 1 || meshes[0].Name != "quad" {
		t.Errorf("HostMeshes() = %d meshes, want just quad", len(meshes))
	}
}

func equalIndices(a, b []int) bool {
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
