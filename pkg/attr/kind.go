// Package attr implements the interchange attribute model: typed value
// containers, interpolation domains and the topology validator that decides
// whether an attribute can be mapped onto a host mesh.
package attr

import "fmt"

// Kind is the declared value type of an interchange attribute.
type Kind int

const (
	KindUnknown Kind = iota
	KindFloat
	KindFloat2
	KindFloat3
	KindFloat4
	KindTexCoord2
	KindTexCoord3
	KindNormal3
	KindPoint3
	KindVector3
	KindColor3
	KindColor4
)

// Family groups kinds that carry the same meaning at different widths.
type Family int

const (
	FamilyGeneric Family = iota
	FamilyTexCoord
	FamilyNormal
	FamilyPoint
	FamilyVector
	FamilyColor
)

type kindInfo struct {
	name      string
	dimension int
	family    Family
}

var kindTable = map[Kind]kindInfo{
	KindFloat:     {"float", 1, FamilyGeneric},
	KindFloat2:    {"float2", 2, FamilyGeneric},
	KindFloat3:    {"float3", 3, FamilyGeneric},
	KindFloat4:    {"float4", 4, FamilyGeneric},
	KindTexCoord2: {"texCoord2f", 2, FamilyTexCoord},
	KindTexCoord3: {"texCoord3f", 3, FamilyTexCoord},
	KindNormal3:   {"normal3f", 3, FamilyNormal},
	KindPoint3:    {"point3f", 3, FamilyPoint},
	KindVector3:   {"vector3f", 3, FamilyVector},
	KindColor3:    {"color3f", 3, FamilyColor},
	KindColor4:    {"color4f", 4, FamilyColor},
}

// equivalents lists, per family, the smallest kind for dimensions 1..3.
// Families without a flavored kind at some width fall back to the generic one.
var equivalents = map[Family][3]Kind{
	FamilyGeneric:  {KindFloat, KindFloat2, KindFloat3},
	FamilyTexCoord: {KindFloat, KindTexCoord2, KindTexCoord3},
	FamilyNormal:   {KindFloat, KindFloat2, KindNormal3},
	FamilyPoint:    {KindFloat, KindFloat2, KindPoint3},
	FamilyVector:   {KindFloat, KindFloat2, KindVector3},
	FamilyColor:    {KindFloat, KindFloat2, KindColor3},
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindTable))
	for k, info := range kindTable {
		m[info.name] = k
	}
	return m
}()

// String returns the kind's type name.
func (k Kind) String() string {
	if info, ok := kindTable[k]; ok {
		return info.name
	}
	return fmt.Sprintf("Unknown(%d)", int(k))
}

// Family returns the kind's family. Unknown kinds report FamilyGeneric.
func (k Kind) Family() Family {
	return kindTable[k].family
}

// ParseKind looks a kind up by its type name.
func ParseKind(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// ComponentDimension returns the number of float components of kind, or 0
// for an unknown kind.
func ComponentDimension(kind Kind) int {
	return kindTable[kind].dimension
}

// ResolveEquivalentKind returns the smallest kind of requiredDimension in the
// same family as kind. requiredDimension is clamped into [1, 3]. Unknown kinds
// resolve to KindFloat3.
func ResolveEquivalentKind(kind Kind, requiredDimension int) Kind {
	info, ok := kindTable[kind]
	if !ok {
		return KindFloat3
	}
	if requiredDimension < 1 {
		requiredDimension = 1
	}
	if requiredDimension > 3 {
		requiredDimension = 3
	}
	return equivalents[info.family][requiredDimension-1]
}
