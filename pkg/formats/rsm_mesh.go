package formats

import (
	"fmt"

	"github.com/Faultbox/meshattr/pkg/host"
	"github.com/Faultbox/meshattr/pkg/math"
)

// Channel names produced for RSM nodes.
const (
	UVChannel    = "uv"
	ColorChannel = "color"
)

// HostMesh converts the node into a triangle host mesh. Texture
// coordinates and vertex colors become face-varying channels indexed by
// the faces' TexCoordIDs; normals are the flat face normals.
func (n *RSMNode) HostMesh() (*host.Mesh, error) {
	points := make([]math.Vec3, len(n.Vertices))
	for i, v := range n.Vertices {
		points[i] = math.FromArray(v)
	}

	degrees := make([]int, len(n.Faces))
	corners := make([]int, 0, 3*len(n.Faces))
	for f, face := range n.Faces {
		degrees[f] = 3
		for _, v := range face.VertexIDs {
			corners = append(corners, int(v))
		}
	}

	mesh, err := host.NewMesh(n.Name, points, degrees, corners)
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", n.Name, err)
	}
	mesh.Mirrored = n.Scale[0]*n.Scale[1]*n.Scale[2] < 0

	if len(n.TexCoords) > 0 {
		uv := host.NewChannel(UVChannel, len(n.Faces), len(n.TexCoords))
		color := host.NewChannel(ColorChannel, len(n.Faces), len(n.TexCoords))
		for i, tc := range n.TexCoords {
			uv.Values[i] = math.V3(tc.U, tc.V, 0)
			color.Values[i] = math.V3(
				float32(tc.Color[0])/255,
				float32(tc.Color[1])/255,
				float32(tc.Color[2])/255,
			)
		}
		for f, face := range n.Faces {
			idx := make([]int, 3)
			for c, t := range face.TexCoordIDs {
				if int(t) >= len(n.TexCoords) {
					return nil, fmt.Errorf("node %s: face %d texcoord %d out of range (%d texcoords)",
						n.Name, f, t, len(n.TexCoords))
				}
				idx[c] = int(t)
			}
			uv.Corners[f] = idx
			color.Corners[f] = append([]int(nil), idx...)
		}
		if err := mesh.SetChannel(uv); err != nil {
			return nil, err
		}
		if err := mesh.SetChannel(color); err != nil {
			return nil, err
		}
	}

	mesh.Normals = host.ComputeFaceNormals(mesh)
	return mesh, nil
}

// HostMeshes converts every node that has faces.
func (m *RSM) HostMeshes() ([]*host.Mesh, error) {
	var meshes []*host.Mesh
	for i := range m.Nodes {
		if len(m.Nodes[i].Faces) == 0 {
			continue
		}
		mesh, err := m.Nodes[i].HostMesh()
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}
