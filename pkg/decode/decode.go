package decode

import (
	"github.com/Faultbox/meshattr/pkg/attr"
	"github.com/Faultbox/meshattr/pkg/host"
)

// Decode installs a into mesh. The reserved normals name goes to
// mesh.Normals, every other name to a named channel. Corner order is reversed
// for faceVarying data when the mesh is mirrored.
func Decode(mesh *host.Mesh, a *attr.Attribute) error {
	return Build(builderFor(mesh, a.Name), a, mesh, mesh.Mirrored)
}

func builderFor(mesh *host.Mesh, name string) Builder {
	if name == host.NormalsName {
		return NewNormalsBuilder(mesh)
	}
	return NewChannelBuilder(mesh, name)
}
