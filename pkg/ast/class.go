package ast

// ModifierKind enumerates declaration modifiers.
type ModifierKind int

const (
	ModifierPublic ModifierKind = iota
	ModifierProtected
	ModifierPrivate
	ModifierPublicSet
	ModifierProtectedSet
	ModifierPrivateSet
	ModifierStatic
	ModifierReadonly
	ModifierAbstract
	ModifierFinal
)

var modifierKeywords = [...]string{
	ModifierPublic:       "public",
	ModifierProtected:    "protected",
	ModifierPrivate:      "private",
	ModifierPublicSet:    "public(set)",
	ModifierProtectedSet: "protected(set)",
	ModifierPrivateSet:   "private(set)",
	ModifierStatic:       "static",
	ModifierReadonly:     "readonly",
	ModifierAbstract:     "abstract",
	ModifierFinal:        "final",
}

// Modifier is a single modifier keyword.
type Modifier struct {
	Base
	Kind ModifierKind
}

// Keyword returns the modifier as written in canonical form.
func (m *Modifier) Keyword() string { return modifierKeywords[m.Kind] }

// IsReadVisibility reports public, protected and private.
func (m *Modifier) IsReadVisibility() bool {
	return m.Kind == ModifierPublic || m.Kind == ModifierProtected || m.Kind == ModifierPrivate
}

// IsWriteVisibility reports the asymmetric `(set)` forms.
func (m *Modifier) IsWriteVisibility() bool {
	return m.Kind == ModifierPublicSet || m.Kind == ModifierProtectedSet || m.Kind == ModifierPrivateSet
}

// Attribute is one `Name(arguments)` entry of an attribute list; Arguments
// may be nil.
type Attribute struct {
	Base
	Name      *Identifier
	Arguments *ArgumentList
}

// AttributeList is `#[A, B(1)]`.
type AttributeList struct {
	Base
	Attributes []*Attribute
}

// --- Class members ---

// PropertyItem is one `$name = default` entry; Default may be nil.
type PropertyItem struct {
	Base
	Variable *Variable
	Default  Expression
}

// Property declares one or more properties sharing modifiers and type.
type Property struct {
	Base
	Attributes []*AttributeList
	Modifiers  []*Modifier
	Type       *TypeHint
	Items      []*PropertyItem
}

// ClassConstantItem is one `NAME = value` entry.
type ClassConstantItem struct {
	Base
	Name  *Identifier
	Value Expression
}

// ClassConstant is `const A = 1, B = 2;` inside a class.
type ClassConstant struct {
	Base
	Attributes []*AttributeList
	Modifiers  []*Modifier
	Type       *TypeHint
	Items      []*ClassConstantItem
}

// Method is a method declaration. Body is nil for abstract and interface
// methods.
type Method struct {
	Base
	Attributes []*AttributeList
	Modifiers  []*Modifier
	ByRef      bool
	Name       *Identifier
	Parameters *ParameterList
	ReturnType *TypeHint
	Body       *Block
}

// TraitUse is `use A, B;` inside a class.
type TraitUse struct {
	Base
	Traits []*Identifier
}

func (*Property) classMemberNode()      {}
func (*ClassConstant) classMemberNode() {}
func (*Method) classMemberNode()        {}
func (*TraitUse) classMemberNode()      {}
