package attr

// Attribute is a mesh attribute in the interchange model.
//
// When Indices is nil, Values is laid out 1:1 with the domain's natural
// cardinality. Otherwise every entry of Indices addresses Values.
type Attribute struct {
	Name    string
	Kind    Kind
	Domain  Domain
	Values  Values
	Indices []int
}

// Indexed reports whether values are addressed through Indices.
func (a *Attribute) Indexed() bool {
	return a.Indices != nil
}

// Dimension returns the component count declared by the attribute's kind.
func (a *Attribute) Dimension() int {
	return ComponentDimension(a.Kind)
}

// ValueCount returns the number of stored values.
func (a *Attribute) ValueCount() int {
	if a.Values == nil {
		return 0
	}
	return a.Values.Len()
}
