package gltfio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/meshattr/internal/logger"
	"github.com/Faultbox/meshattr/pkg/attr"
	"github.com/Faultbox/meshattr/pkg/host"
)

// Exporter accumulates meshes into a single glTF document.
type Exporter struct {
	doc *gltf.Document
}

// NewExporter creates an exporter whose document names generator as its
// producer.
func NewExporter(generator string) *Exporter {
	doc := gltf.NewDocument()
	doc.Asset.Generator = generator
	return &Exporter{doc: doc}
}

// Document returns the document built so far.
func (e *Exporter) Document() *gltf.Document {
	return e.doc
}

// AddMesh appends mesh as a node with one triangle primitive. Every attribute
// is validated against the mesh first; nothing is written when one fails.
func (e *Exporter) AddMesh(mesh *host.Mesh, attrs []*attr.Attribute) error {
	for _, a := range attrs {
		if err := checkAttribute(a, mesh); err != nil {
			return fmt.Errorf("mesh %s: %w", mesh.Name, err)
		}
	}

	positions := make([][3]float32, 0, mesh.CornerCount())
	for f := 0; f < mesh.FaceCount(); f++ {
		for c := 0; c < mesh.FaceDegree(f); c++ {
			positions = append(positions, mesh.Points[mesh.CornerVertex(f, c)].Array())
		}
	}

	prim := &gltf.Primitive{
		Attributes: map[string]int{
			gltf.POSITION: modeler.WritePosition(e.doc, positions),
		},
		Indices: gltf.Index(modeler.WriteIndices(e.doc, triangulate(mesh))),
	}

	infos := make(map[string]attrInfo, len(attrs))
	var texN, colN int
	for _, a := range attrs {
		semantic := semanticFor(a, &texN, &colN)
		if _, dup := prim.Attributes[semantic]; dup {
			logger.Warn("skipping attribute with duplicate glTF semantic",
				zap.String("attribute", a.Name),
				zap.String("semantic", semantic))
			continue
		}
		prim.Attributes[semantic] = e.writeAttribute(semantic, perCorner(a, mesh))
		infos[semantic] = attrInfo{Name: a.Name, Kind: a.Kind.String()}
	}

	gm := &gltf.Mesh{
		Name:       mesh.Name,
		Primitives: []*gltf.Primitive{prim},
		Extras:     map[string]any{extrasKey: infos},
	}
	e.doc.Meshes = append(e.doc.Meshes, gm)
	e.doc.Nodes = append(e.doc.Nodes, &gltf.Node{Name: mesh.Name, Mesh: gltf.Index(len(e.doc.Meshes) - 1)})
	e.doc.Scenes[0].Nodes = append(e.doc.Scenes[0].Nodes, len(e.doc.Nodes)-1)

	logger.Debug("exported mesh",
		zap.String("mesh", mesh.Name),
		zap.Int("vertices", len(positions)),
		zap.Int("attributes", len(infos)))
	return nil
}

func checkAttribute(a *attr.Attribute, mesh *host.Mesh) error {
	if a.Values == nil || !attr.Castable(a.Values) {
		return attr.Errorf(attr.PhaseValidate, attr.KindUncastableValues, a.Name, "unsupported value container")
	}
	if a.Values.Dimension() != a.Dimension() {
		return attr.Errorf(attr.PhaseValidate, attr.KindUncastableValues, a.Name,
			"kind %s declares %d components, container holds %d", a.Kind, a.Dimension(), a.Values.Dimension())
	}
	if err := attr.Check(a.Values.Len(), a.Indices, mesh, a.Domain, a.Indexed()); err != nil {
		if e, ok := err.(*attr.Error); ok {
			e.Attribute = a.Name
		}
		return err
	}
	return nil
}

func (e *Exporter) writeAttribute(semantic string, vals attr.Values) int {
	switch {
	case semantic == gltf.NORMAL:
		return modeler.WriteNormal(e.doc, asFloat3(vals))
	case strings.HasPrefix(semantic, "TEXCOORD_"):
		return modeler.WriteTextureCoord(e.doc, [][2]float32(vals.(attr.Float2)))
	case strings.HasPrefix(semantic, "COLOR_"):
		if v, ok := vals.(attr.Float4); ok {
			return modeler.WriteColor(e.doc, [][4]float32(v))
		}
		return modeler.WriteColor(e.doc, [][3]float32(vals.(attr.Float3)))
	}
	var data any
	switch v := vals.(type) {
	case attr.Float1:
		data = []float32(v)
	case attr.Float2:
		data = [][2]float32(v)
	case attr.Float3:
		data = [][3]float32(v)
	case attr.Float4:
		data = [][4]float32(v)
	}
	return modeler.WriteAccessor(e.doc, gltf.TargetArrayBuffer, data)
}

// Save writes the document. A ".glb" extension selects the binary container;
// anything else is written as JSON with buffers embedded as data URIs.
func (e *Exporter) Save(path string) error {
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		return gltf.SaveBinary(e.doc, path)
	}
	for _, b := range e.doc.Buffers {
		if b.URI == "" {
			b.EmbeddedResource()
		}
	}
	return gltf.Save(e.doc, path)
}

// triangulate fans every face around its first corner. Corner k of face f
// is glTF vertex offset(f)+k. Mirrored meshes get the reverse winding.
func triangulate(mesh *host.Mesh) []uint32 {
	indices := make([]uint32, 0, 3*(mesh.CornerCount()-2*mesh.FaceCount()))
	base := uint32(0)
	for f := 0; f < mesh.FaceCount(); f++ {
		deg := uint32(mesh.FaceDegree(f))
		for k := uint32(1); k+1 < deg; k++ {
			if mesh.Mirrored {
				indices = append(indices, base, base+k+1, base+k)
			} else {
				indices = append(indices, base, base+k, base+k+1)
			}
		}
		base += deg
	}
	return indices
}

// perCorner resolves a into one value per host corner, keeping its
// container dimension.
func perCorner(a *attr.Attribute, mesh *host.Mesh) attr.Values {
	out := attr.NewValues(a.Values.Dimension(), mesh.CornerCount())
	running := 0
	for f := 0; f < mesh.FaceCount(); f++ {
		base, deg := running, mesh.FaceDegree(f)
		for c := 0; c < deg; c++ {
			pos := attr.FaceVaryingPosition(base, deg, c, mesh.Mirrored)
			src := attr.Resolve(a.Domain, a.Indices, f, mesh.CornerVertex(f, c), pos)
			copyValue(out, running, a.Values, src)
			running++
		}
	}
	return out
}

func copyValue(dst attr.Values, i int, src attr.Values, j int) {
	switch d := dst.(type) {
	case attr.Float1:
		d[i] = src.(attr.Float1)[j]
	case attr.Float2:
		d[i] = src.(attr.Float2)[j]
	case attr.Float3:
		d[i] = src.(attr.Float3)[j]
	case attr.Float4:
		d[i] = src.(attr.Float4)[j]
	}
}

func asFloat3(vals attr.Values) [][3]float32 {
	if v, ok := vals.(attr.Float3); ok {
		return v
	}
	out := make([][3]float32, vals.Len())
	for i := range out {
		v, _ := attr.Widen(vals, i)
		out[i] = v.Array()
	}
	return out
}
