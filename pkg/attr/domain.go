package attr

import "fmt"

// Domain is the interpolation domain of an interchange attribute.
type Domain int

const (
	DomainInvalid Domain = iota
	DomainConstant
	DomainUniform
	DomainVertex
	DomainVarying
	DomainFaceVarying
)

// String returns the domain token.
func (d Domain) String() string {
	switch d {
	case DomainConstant:
		return "constant"
	case DomainUniform:
		return "uniform"
	case DomainVertex:
		return "vertex"
	case DomainVarying:
		return "varying"
	case DomainFaceVarying:
		return "faceVarying"
	default:
		return fmt.Sprintf("Invalid(%d)", int(d))
	}
}

// Valid reports whether d is one of the known domains.
func (d Domain) Valid() bool {
	return d >= DomainConstant && d <= DomainFaceVarying
}

// ParseDomain converts a domain token into a Domain.
// Unrecognized tokens return DomainInvalid.
func ParseDomain(token string) Domain {
	switch token {
	case "constant":
		return DomainConstant
	case "uniform":
		return DomainUniform
	case "vertex":
		return DomainVertex
	case "varying":
		return DomainVarying
	case "faceVarying":
		return DomainFaceVarying
	default:
		return DomainInvalid
	}
}

// Cardinality returns the natural number of values for d on topo, or -1 for
// an invalid domain.
func (d Domain) Cardinality(topo Topology) int {
	switch d {
	case DomainConstant:
		return 1
	case DomainUniform:
		return topo.FaceCount()
	case DomainVertex, DomainVarying:
		return topo.VertexCount()
	case DomainFaceVarying:
		return CornerCount(topo)
	default:
		return -1
	}
}
