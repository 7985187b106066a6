package gltfio

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/meshattr/internal/logger"
	"github.com/Faultbox/meshattr/pkg/attr"
	"github.com/Faultbox/meshattr/pkg/host"
	"github.com/Faultbox/meshattr/pkg/math"
)

// ErrNoPositions is returned for primitives without a POSITION attribute.
var ErrNoPositions = errors.New("primitive has no POSITION attribute")

// Imported is one glTF primitive converted to a host mesh. Attributes are
// vertex-domain and unindexed, ready for decoding into Mesh.
type Imported struct {
	Mesh       *host.Mesh
	Attributes []*attr.Attribute
}

// Import opens a .gltf or .glb file and converts every triangle primitive.
func Import(path string) ([]Imported, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening glTF: %w", err)
	}
	return ImportDocument(doc)
}

// ImportDocument converts every triangle primitive of doc. Primitives with
// other modes are skipped.
func ImportDocument(doc *gltf.Document) ([]Imported, error) {
	var out []Imported
	for mi, gm := range doc.Meshes {
		infos := readInfos(gm.Extras)
		for pi, prim := range gm.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				logger.Warn("skipping non-triangle primitive",
					zap.String("mesh", gm.Name),
					zap.Int("primitive", pi))
				continue
			}
			name := gm.Name
			if name == "" {
				name = "mesh" + strconv.Itoa(mi)
			}
			if len(gm.Primitives) > 1 {
				name += "_" + strconv.Itoa(pi)
			}
			imp, err := importPrimitive(doc, prim, name, infos)
			if err != nil {
				return nil, fmt.Errorf("mesh %s: %w", name, err)
			}
			out = append(out, imp)
		}
	}
	return out, nil
}

func importPrimitive(doc *gltf.Document, prim *gltf.Primitive, name string, infos map[string]attrInfo) (Imported, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return Imported{}, ErrNoPositions
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return Imported{}, fmt.Errorf("reading positions: %w", err)
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return Imported{}, fmt.Errorf("reading indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	if len(indices)%3 != 0 {
		return Imported{}, fmt.Errorf("%d indices is not a whole number of triangles", len(indices))
	}

	points := make([]math.Vec3, len(positions))
	for i, p := range positions {
		points[i] = math.FromArray(p)
	}
	degrees := make([]int, len(indices)/3)
	for f := range degrees {
		degrees[f] = 3
	}
	corners := make([]int, len(indices))
	for i, v := range indices {
		corners[i] = int(v)
	}
	mesh, err := host.NewMesh(name, points, degrees, corners)
	if err != nil {
		return Imported{}, err
	}

	semantics := make([]string, 0, len(prim.Attributes))
	for s := range prim.Attributes {
		if s != gltf.POSITION {
			semantics = append(semantics, s)
		}
	}
	sort.Strings(semantics)

	imp := Imported{Mesh: mesh}
	for _, s := range semantics {
		a, err := readAttribute(doc, doc.Accessors[prim.Attributes[s]], s)
		if err != nil {
			return Imported{}, fmt.Errorf("reading %s: %w", s, err)
		}
		if a == nil {
			logger.Debug("skipping glTF attribute", zap.String("semantic", s))
			continue
		}
		if info, ok := infos[s]; ok {
			a.Name = info.Name
			if k, ok := attr.ParseKind(info.Kind); ok && attr.ComponentDimension(k) == a.Values.Dimension() {
				a.Kind = k
			}
		}
		imp.Attributes = append(imp.Attributes, a)
	}
	return imp, nil
}

// readAttribute converts one accessor into a vertex-domain attribute. It
// returns nil for semantics that carry no channel data.
func readAttribute(doc *gltf.Document, acr *gltf.Accessor, semantic string) (*attr.Attribute, error) {
	a := &attr.Attribute{Name: defaultName(semantic), Domain: attr.DomainVertex}
	switch {
	case semantic == gltf.NORMAL:
		v, err := modeler.ReadNormal(doc, acr, nil)
		if err != nil {
			return nil, err
		}
		a.Kind, a.Values = attr.KindNormal3, attr.Float3(v)
	case strings.HasPrefix(semantic, "TEXCOORD_"):
		v, err := modeler.ReadTextureCoord(doc, acr, nil)
		if err != nil {
			return nil, err
		}
		a.Kind, a.Values = attr.KindTexCoord2, attr.Float2(v)
	case strings.HasPrefix(semantic, "COLOR_"):
		vals, err := readColor(doc, acr)
		if err != nil {
			return nil, err
		}
		a.Kind, a.Values = attr.KindColor3, vals
		if vals.Dimension() == 4 {
			a.Kind = attr.KindColor4
		}
	case strings.HasPrefix(semantic, "_"):
		data, err := modeler.ReadAccessor(doc, acr, nil)
		if err != nil {
			return nil, err
		}
		vals, ok := floatValues(data)
		if !ok {
			return nil, fmt.Errorf("unsupported accessor data %T", data)
		}
		a.Values = vals
		a.Kind = attr.ResolveEquivalentKind(attr.KindFloat, vals.Dimension())
		if vals.Dimension() == 4 {
			a.Kind = attr.KindFloat4
		}
	default:
		return nil, nil
	}
	return a, nil
}

// readColor keeps float colors as stored and normalizes integer ones.
func readColor(doc *gltf.Document, acr *gltf.Accessor) (attr.Values, error) {
	if acr.ComponentType == gltf.ComponentFloat {
		data, err := modeler.ReadAccessor(doc, acr, nil)
		if err != nil {
			return nil, err
		}
		if vals, ok := floatValues(data); ok && vals.Dimension() >= 3 {
			return vals, nil
		}
	}
	rgba, err := modeler.ReadColor(doc, acr, nil)
	if err != nil {
		return nil, err
	}
	out := make(attr.Float4, len(rgba))
	for i, c := range rgba {
		out[i] = [4]float32{float32(c[0]) / 255, float32(c[1]) / 255, float32(c[2]) / 255, float32(c[3]) / 255}
	}
	return out, nil
}

func floatValues(data any) (attr.Values, bool) {
	switch v := data.(type) {
	case []float32:
		return attr.Float1(v), true
	case [][2]float32:
		return attr.Float2(v), true
	case [][3]float32:
		return attr.Float3(v), true
	case [][4]float32:
		return attr.Float4(v), true
	default:
		return nil, false
	}
}

// readInfos recovers the semantic table written by AddMesh, either as built
// in memory or as decoded from JSON.
func readInfos(extras any) map[string]attrInfo {
	out := make(map[string]attrInfo)
	m, ok := extras.(map[string]any)
	if !ok {
		return out
	}
	if typed, ok := m[extrasKey].(map[string]attrInfo); ok {
		return typed
	}
	entries, ok := m[extrasKey].(map[string]any)
	if !ok {
		return out
	}
	for semantic, raw := range entries {
		e, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		name, _ := e["name"].(string)
		kind, _ := e["kind"].(string)
		if name != "" {
			out[semantic] = attrInfo{Name: name, Kind: kind}
		}
	}
	return out
}
