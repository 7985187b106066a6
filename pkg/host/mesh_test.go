package host

import (
	"errors"
	"testing"

	"github.com/Faultbox/meshattr/pkg/math"
)

func makeQuad(t *testing.T) *Mesh {
	t.Helper()
	points := []math.Vec3{{X: 0}, {X: 1}, {X: 1, Y: 1}, {Y: 1}}
	m, err := NewMesh("quad", points, []int{4}, []int{0, 1, 2, 3})
	if err != nil {
		t.Fatalf("NewMesh: %v", err)
	}
	return m
}

func TestNewMesh_Errors(t *testing.T) {
	points := make([]math.Vec3, 4)
	tests := []struct {
		name    string
		degrees []int
		corners []int
		wantErr error
	}{
		{"degenerate face", []int{2}, []int{0, 1}, ErrFaceDegree},
		{"corner count", []int{3}, []int{0, 1, 2, 3}, ErrCornerCount},
		{"vertex index", []int{3}, []int{0, 1, 4}, ErrVertexIndex},
		{"negative vertex", []int{3}, []int{0, -1, 2}, ErrVertexIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMesh("bad", points, tt.degrees, tt.corners)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMesh_Topology(t *testing.T) {
	points := make([]math.Vec3, 6)
	m, err := NewMesh("strip", points, []int{3, 4}, []int{0, 1, 2, 1, 3, 4, 2})
	if err != nil {
		t.Fatalf("NewMesh: %v", err)
	}
	if m.FaceCount() != 2 {
		t.Errorf("FaceCount = %d, want 2", m.FaceCount())
	}
	if m.CornerCount() != 7 {
		t.Errorf("CornerCount = %d, want 7", m.CornerCount())
	}
	if m.VertexCount() != 6 {
		t.Errorf("VertexCount = %d, want 6 (vertex 5 is isolated)", m.VertexCount())
	}
	if got := m.CornerVertex(1, 2); got != 4 {
		t.Errorf("CornerVertex(1, 2) = %d, want 4", got)
	}
	if got := m.FaceDegree(1); got != 4 {
		t.Errorf("FaceDegree(1) = %d, want 4", got)
	}
}

func TestMesh_Channels(t *testing.T) {
	m := makeQuad(t)
	uv := PerVertexChannel("uv", m, make([]math.Vec3, 4))
	if err := m.SetChannel(uv); err != nil {
		t.Fatalf("SetChannel: %v", err)
	}
	if err := m.SetChannel(&Channel{Name: "color"}); err != nil {
		t.Fatalf("SetChannel: %v", err)
	}
	if err := m.SetChannel(&Channel{Name: "uv"}); err != nil {
		t.Fatalf("SetChannel replace: %v", err)
	}
	names := m.ChannelNames()
	if len(names) != 2 || names[0] != "uv" || names[1] != "color" {
		t.Errorf("ChannelNames = %v, want [uv color]", names)
	}
	if err := m.SetChannel(&Channel{Name: NormalsName}); !errors.Is(err, ErrReservedName) {
		t.Errorf("expected reserved name error, got %v", err)
	}
	m.RemoveChannel("uv")
	m.RemoveChannel("missing")
	if m.Channel("uv") != nil || len(m.ChannelNames()) != 1 {
		t.Errorf("RemoveChannel left %v", m.ChannelNames())
	}
}

func TestChannel_CheckAndFlip(t *testing.T) {
	m := makeQuad(t)
	ch := PerVertexChannel("uv", m, make([]math.Vec3, 4))
	if err := ch.Check(m); err != nil {
		t.Fatalf("Check: %v", err)
	}
	ch.FlipFace(0)
	want := []int{3, 2, 1, 0}
	for i, v := range ch.FlatCorners() {
		if v != want[i] {
			t.Fatalf("FlipFace corners = %v, want %v", ch.FlatCorners(), want)
		}
	}

	ch.Corners[0][0] = 9
	if err := ch.Check(m); err == nil {
		t.Error("expected out-of-range index to fail Check")
	}
	ch.Corners[0] = ch.Corners[0][:3]
	if err := ch.Check(m); err == nil {
		t.Error("expected short face to fail Check")
	}
}

func TestComputeFaceNormals(t *testing.T) {
	m := makeQuad(t)
	n := ComputeFaceNormals(m)
	if n.Name != NormalsName {
		t.Errorf("name = %s", n.Name)
	}
	if len(n.Values) != 1 || n.Values[0] != (math.Vec3{Z: 1}) {
		t.Errorf("normal = %v, want +Z", n.Values)
	}
	for _, i := range n.FlatCorners() {
		if i != 0 {
			t.Errorf("corner index %d, want 0", i)
		}
	}

	m.Mirrored = true
	if got := ComputeFaceNormals(m).Values[0]; got != (math.Vec3{Z: -1}) {
		t.Errorf("mirrored normal = %v, want -Z", got)
	}
}

func TestComputeFaceNormals_Degenerate(t *testing.T) {
	points := []math.Vec3{{}, {X: 1}, {X: 2}}
	m, err := NewMesh("line", points, []int{3}, []int{0, 1, 2})
	if err != nil {
		t.Fatalf("NewMesh: %v", err)
	}
	if got := ComputeFaceNormals(m).Values[0]; got != (math.Vec3{}) {
		t.Errorf("degenerate normal = %v, want zero", got)
	}
}
