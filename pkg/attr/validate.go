package attr

// MinimumValues returns how many values (or index entries, for indexed data)
// domain requires on topo. Invalid domains return -1.
func MinimumValues(topo Topology, domain Domain) int {
	return domain.Cardinality(topo)
}

// Check decides whether valueCount values, optionally addressed through
// indices, can be mapped onto topo with the given domain. The returned error
// is an *Error in PhaseValidate; nil means the data is usable.
func Check(valueCount int, indices []int, topo Topology, domain Domain, indexed bool) error {
	if !domain.Valid() {
		return Errorf(PhaseValidate, KindInvalidDomain, "", "unknown domain %s", domain)
	}
	required := MinimumValues(topo, domain)

	if !indexed {
		if valueCount < required {
			return Errorf(PhaseValidate, KindTopologyMismatch, "",
				"%s needs %d values, have %d", domain, required, valueCount)
		}
		return nil
	}

	if len(indices) < required {
		return Errorf(PhaseValidate, KindTopologyMismatch, "",
			"%s needs %d index entries, have %d", domain, required, len(indices))
	}
	if valueCount < 1 {
		return Errorf(PhaseValidate, KindTopologyMismatch, "", "indexed attribute has no values")
	}
	for i, idx := range indices {
		if idx < 0 || idx >= valueCount {
			return OutOfRange(PhaseValidate, "", i, idx, valueCount)
		}
	}
	return nil
}

// Validate is Check reduced to a boolean. A false result means the attribute
// should be skipped, not that translation failed.
func Validate(valueCount int, indices []int, topo Topology, domain Domain, indexed bool) bool {
	return Check(valueCount, indices, topo, domain, indexed) == nil
}

// Resolve returns the data index feeding one corner.
//
// face is the face being visited, vertex the host vertex id of the corner and
// running the corner's position in face-then-corner order across the mesh.
// indices is nil for unindexed data.
func Resolve(domain Domain, indices []int, face, vertex, running int) int {
	var i int
	switch domain {
	case DomainVertex, DomainVarying:
		i = vertex
	case DomainFaceVarying:
		i = running
	case DomainUniform:
		i = face
	default:
		return 0
	}
	if indices != nil {
		return indices[i]
	}
	return i
}

// FaceVaryingPosition returns the faceVarying position of corner c of a face
// whose first corner sits at base. Mirrored faces store their corners in
// reverse order.
func FaceVaryingPosition(base, degree, corner int, mirror bool) int {
	if mirror {
		return base + degree - 1 - corner
	}
	return base + corner
}
