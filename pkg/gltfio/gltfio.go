// Package gltfio moves host meshes and their interchange attributes in and
// out of glTF documents.
//
// glTF stores one value per vertex, so export unwelds the mesh into one glTF
// vertex per host corner and import yields vertex-domain attributes.
package gltfio

import (
	"strconv"
	"strings"

	"github.com/qmuntal/gltf"

	"github.com/Faultbox/meshattr/pkg/attr"
	"github.com/Faultbox/meshattr/pkg/host"
)

// extrasKey names the mesh extras entry mapping glTF semantics back to
// attribute names and kinds.
const extrasKey = "meshattr"

type attrInfo struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// semanticFor picks the glTF attribute name for a. texN and colN count the
// TEXCOORD_n and COLOR_n slots already taken by the primitive.
func semanticFor(a *attr.Attribute, texN, colN *int) string {
	dim := a.Dimension()
	switch {
	case a.Name == host.NormalsName:
		return gltf.NORMAL
	case a.Kind.Family() == attr.FamilyTexCoord && dim == 2:
		s := "TEXCOORD_" + strconv.Itoa(*texN)
		*texN++
		return s
	case a.Kind.Family() == attr.FamilyColor && dim >= 3:
		s := "COLOR_" + strconv.Itoa(*colN)
		*colN++
		return s
	default:
		return "_" + strings.ToUpper(a.Name)
	}
}

// defaultName is the attribute name for a semantic that carries no extras.
func defaultName(semantic string) string {
	switch {
	case semantic == gltf.NORMAL:
		return host.NormalsName
	case strings.HasPrefix(semantic, "TEXCOORD_"):
		return numbered("uv", strings.TrimPrefix(semantic, "TEXCOORD_"))
	case strings.HasPrefix(semantic, "COLOR_"):
		return numbered("color", strings.TrimPrefix(semantic, "COLOR_"))
	default:
		return strings.ToLower(strings.TrimPrefix(semantic, "_"))
	}
}

func numbered(base, n string) string {
	if n == "0" {
		return base
	}
	return base + n
}
