// Package schema defines the versioned-schema model consumed by the sqlstep
// code generator. A caller builds an ordered list of Version values, each one
// a complete snapshot of the data definition at a migration-relevant point.
//
// The model is a plain value model: it carries no behavior beyond naming and
// validation helpers, so that both the generator and the generated code can
// depend on it without pulling in generation machinery.
package schema

import "fmt"

// Type is a SQLite storage class tag for a column.
type Type int

// Built-in SQLite column types.
const (
	TypeInvalid Type = iota
	TypeInteger
	TypeReal
	TypeText
	TypeBlob
	endTypes
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	TypeInteger: "integer",
	TypeReal:    "real",
	TypeText:    "text",
	TypeBlob:    "blob",
}

var typeConstNames = [...]string{
	TypeInvalid: "TypeInvalid",
	TypeInteger: "TypeInteger",
	TypeReal:    "TypeReal",
	TypeText:    "TypeText",
	TypeBlob:    "TypeBlob",
}

// String returns the lowercase name of the type.
func (t Type) String() string {
	if t < TypeInvalid || t >= endTypes {
		return fmt.Sprintf("invalid(%d)", int(t))
	}
	return typeNames[t]
}

// ConstName returns the Go constant name of the type, as referenced by
// generated code.
func (t Type) ConstName() string {
	if t <= TypeInvalid || t >= endTypes {
		return typeConstNames[TypeInvalid]
	}
	return typeConstNames[t]
}

// Valid reports whether t is a usable column type.
func (t Type) Valid() bool { return t > TypeInvalid && t < endTypes }

// ParseType maps a textual type name to its tag. It accepts the lowercase
// names produced by String plus the common aliases used in descriptors.
func ParseType(s string) (Type, error) {
	switch s {
	case "integer", "int":
		return TypeInteger, nil
	case "real", "float":
		return TypeReal, nil
	case "text", "string":
		return TypeText, nil
	case "blob", "bytes":
		return TypeBlob, nil
	}
	return TypeInvalid, fmt.Errorf("schema: unknown column type %q", s)
}

// Column describes a single table or view column.
type Column struct {
	// Accessor is the host-language identifier used for the generated typed
	// accessor. Defaults to a camel-cased form of Name when loaded from a
	// descriptor.
	Accessor string
	// Name is the SQL column name.
	Name string
	// Type is the built-in SQL type tag.
	Type Type
	// NotNull marks the column NOT NULL.
	NotNull bool
	// Default is the rendered default literal, verbatim. Empty means none.
	Default string
	// Extra is trailing raw definition text (collations, checks), verbatim.
	Extra string
}

// RefAction is a foreign-key ON UPDATE / ON DELETE action.
type RefAction string

// Reference actions, in SQLite syntax.
const (
	NoAction   RefAction = "NO ACTION"
	Restrict   RefAction = "RESTRICT"
	SetNull    RefAction = "SET NULL"
	SetDefault RefAction = "SET DEFAULT"
	Cascade    RefAction = "CASCADE"
)

// ForeignKey is a structured foreign-key constraint.
type ForeignKey struct {
	Columns    []string
	RefTable   string
	RefColumns []string
	OnUpdate   RefAction
	OnDelete   RefAction
}

// Constraints holds the structured table constraints.
type Constraints struct {
	// PrimaryKey lists the primary-key columns, in key order.
	PrimaryKey []string
	// Unique lists unique column sets, one entry per constraint.
	Unique [][]string
	// ForeignKeys lists foreign-key references.
	ForeignKeys []ForeignKey
}

// VirtualTable carries the module binding of a virtual table.
type VirtualTable struct {
	Module string
	Args   []string
}

// Table is a schema table, plain or virtual.
type Table struct {
	Name        string
	Columns     []*Column
	Constraints Constraints
	// Virtual is non-nil for virtual tables.
	Virtual *VirtualTable
	// WithoutRowid and Strict are CREATE TABLE trailing flags.
	WithoutRowid bool
	Strict       bool
	// WriteDefaultConstraints enables synthesis of constraint text from the
	// structured Constraints. When false the synthesized text is empty.
	WriteDefaultConstraints bool
	// RawConstraints are caller-overridden constraint strings, appended
	// verbatim after any synthesized ones.
	RawConstraints []string
}

// View is a schema view with its raw create statement.
type View struct {
	Name      string
	Columns   []*Column
	Statement string
}

// Index is an opaque structured index description.
type Index struct {
	Name    string
	Table   string
	Columns []string
	Unique  bool
	// Where is an optional partial-index predicate, verbatim.
	Where string
}

// Trigger is an opaque trigger description carrying its create statement.
type Trigger struct {
	Name      string
	Statement string
}

// Element is one entry of a version's schema. The union is closed over
// Table, View, Index and Trigger; type switches over Element are expected
// to be exhaustive.
type Element interface {
	// ElementName returns the logical name of the element.
	ElementName() string
	element()
}

func (*Table) element()   {}
func (*View) element()    {}
func (*Index) element()   {}
func (*Trigger) element() {}

// ElementName returns the table name.
func (t *Table) ElementName() string { return t.Name }

// ElementName returns the view name.
func (v *View) ElementName() string { return v.Name }

// ElementName returns the index name.
func (i *Index) ElementName() string { return i.Name }

// ElementName returns the trigger name.
func (t *Trigger) ElementName() string { return t.Name }

// Version is one snapshot of the full data definition, tagged with an
// integer ordinal. The full input list handed to the generator must be
// strictly sorted ascending by Version with unique values.
type Version struct {
	Version int64
	Schema  []Element
	// Options carries per-version key/value options. They belong to the
	// upstream analysis layer and are not consumed by generation.
	Options map[string]string
}
