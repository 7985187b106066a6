package encode

import (
	"regexp"

	"go.uber.org/zap"

	"github.com/Faultbox/meshattr/internal/logger"
	"github.com/Faultbox/meshattr/pkg/attr"
	"github.com/Faultbox/meshattr/pkg/host"
)

// DefaultEpsilon is the auto-expand threshold used when Options leaves it 0.
const DefaultEpsilon = 1e-6

// Options control a single encode call.
type Options struct {
	// Kind is the requested attribute kind.
	Kind attr.Kind
	// Animated skips inference and always emits faceVarying indexed data.
	Animated bool
	// AutoExpand widens Kind when the values need more components.
	AutoExpand bool
	Epsilon    float32
	// Mirror stores faceVarying corners in reverse, for meshes whose winding
	// is mirrored relative to the interchange data.
	Mirror bool
}

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_:]*$`)

// reservedNames belong to the mesh schema itself.
var reservedNames = map[string]bool{
	"points":            true,
	"faceVertexCounts":  true,
	"faceVertexIndices": true,
	host.NormalsName:    true,
}

// CheckName reports whether name can be used for an interchange attribute.
func CheckName(name string) error {
	if name == "" {
		return attr.Errorf(attr.PhaseEncode, attr.KindInvalidName, name, "empty attribute name")
	}
	if !namePattern.MatchString(name) {
		return attr.Errorf(attr.PhaseEncode, attr.KindInvalidName, name, "not an identifier")
	}
	if reservedNames[name] {
		return attr.Errorf(attr.PhaseEncode, attr.KindInvalidName, name, "reserved name")
	}
	return nil
}

// Encode builds an interchange attribute from a named host channel.
func Encode(ch *host.Channel, topo attr.Topology, opts Options) (*attr.Attribute, error) {
	if err := CheckName(ch.Name); err != nil {
		return nil, err
	}
	return encode(ch.Name, ch, topo, opts)
}

// EncodeNormals builds the reserved normals attribute. The kind is always
// normal3f.
func EncodeNormals(ch *host.Channel, topo attr.Topology, animated, mirror bool) (*attr.Attribute, error) {
	return encode(host.NormalsName, ch, topo, Options{Kind: attr.KindNormal3, Animated: animated, Mirror: mirror})
}

func encode(name string, ch *host.Channel, topo attr.Topology, opts Options) (*attr.Attribute, error) {
	if len(ch.Values) == 0 {
		return nil, attr.Errorf(attr.PhaseEncode, attr.KindEmptyValues, name, "channel has no values")
	}
	if err := checkCorners(name, ch); err != nil {
		return nil, err
	}

	kind := opts.Kind
	if opts.AutoExpand {
		eps := opts.Epsilon
		if eps == 0 {
			eps = DefaultEpsilon
		}
		if widened := ExpandKind(kind, ch.Values, eps); widened != kind {
			logger.Debug("widened attribute kind",
				zap.String("attribute", name),
				zap.Stringer("from", kind),
				zap.Stringer("to", widened))
			kind = widened
		}
	}
	if dim := attr.ComponentDimension(kind); dim < 1 || dim > 4 {
		return nil, attr.UnsupportedDimension(attr.PhaseEncode, name, kind)
	}

	layout := InferLayout(ch, topo, opts.Animated)
	values, indices := Populate(ch, topo, layout, kind, opts.Mirror)

	logger.Debug("encoded attribute",
		zap.String("attribute", name),
		zap.Stringer("kind", kind),
		zap.Stringer("layout", layout),
		zap.Int("values", values.Len()))

	return &attr.Attribute{
		Name:    name,
		Kind:    kind,
		Domain:  layout.Domain,
		Values:  values,
		Indices: indices,
	}, nil
}

// checkCorners rejects corner entries outside ch.Values.
func checkCorners(name string, ch *host.Channel) error {
	running := 0
	for _, idx := range ch.Corners {
		for _, d := range idx {
			if d < 0 || d >= len(ch.Values) {
				return attr.OutOfRange(attr.PhaseEncode, name, running, d, len(ch.Values))
			}
			running++
		}
	}
	return nil
}
