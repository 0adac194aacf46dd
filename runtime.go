// Package sqlstep is the runtime support library for code generated by the
// sqlstep compiler. Generated snapshot types embed the aliased base types
// defined here, and generated dispatchers drive the Migrator and step runner
// from migrate.go.
package sqlstep

import (
	"fmt"
	"strings"

	"github.com/sqlstep/sqlstep/schema"
)

// QuoteIdent quotes a SQLite identifier, doubling embedded quotes.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// ColumnDef is a fully rendered column definition. Generated column factories
// produce one ColumnDef per call; the SQL field holds the exact definition
// text shared by every table that interned the same column.
type ColumnDef struct {
	// Name is the SQL column name.
	Name string
	// Type is the column's storage class tag.
	Type schema.Type
	// SQL is the full rendered definition text, e.g. `"id" INTEGER NOT NULL`.
	SQL string
	// Alias optionally qualifies references to this column with a table alias.
	Alias string
}

// Ref returns the quoted, alias-qualified reference to the column.
func (c ColumnDef) Ref() string {
	if c.Alias != "" {
		return QuoteIdent(c.Alias) + "." + QuoteIdent(c.Name)
	}
	return QuoteIdent(c.Name)
}

// TableDef is the source definition of a plain table.
type TableDef struct {
	Name         string
	Columns      []ColumnDef
	Constraints  []string
	Strict       bool
	WithoutRowid bool
}

// VirtualTableDef is the source definition of a virtual table.
type VirtualTableDef struct {
	Name    string
	Module  string
	Args    []string
	Columns []ColumnDef
}

// ViewDef is the source definition of a view, carrying its raw create
// statement.
type ViewDef struct {
	Name      string
	Statement string
	Columns   []ColumnDef
}

// Entity is a single schema element held by a snapshot.
type Entity interface {
	// EntityName returns the effective SQL name, honoring any alias.
	EntityName() string
	// CreateSQL returns the statement that creates the entity.
	CreateSQL() string
}

// Snapshot is the interface implemented by every generated version snapshot.
type Snapshot interface {
	// Version returns the schema version the snapshot describes.
	Version() int64
	// Entities returns every schema element, in declaration order.
	Entities() []Entity
}

// ColumnSource resolves columns by SQL name. The aliased base types maintain
// the registry; generated shape accessors consult it.
type ColumnSource interface {
	Column(name string) (ColumnDef, bool)
}

// TypedColumn carries a column definition together with the Go type its
// values scan into.
type TypedColumn[T any] struct {
	ColumnDef
}

// ColumnAs looks up a column by SQL name and returns it typed. It panics when
// the name is unknown: generated accessors only reference names emitted into
// the same registry.
func ColumnAs[T any](src ColumnSource, name string) TypedColumn[T] {
	c, ok := src.Column(name)
	if !ok {
		panic(fmt.Sprintf("sqlstep: unknown column %q", name))
	}
	return TypedColumn[T]{ColumnDef: c}
}

// registry is the shared column table behind the aliased base types.
type registry struct {
	columns map[string]ColumnDef
}

func newRegistry(cols []ColumnDef, alias string) registry {
	r := registry{columns: make(map[string]ColumnDef, len(cols))}
	for _, c := range cols {
		if alias != "" {
			c.Alias = alias
		}
		r.columns[c.Name] = c
	}
	return r
}

// Column returns the column registered under the given SQL name.
func (r registry) Column(name string) (ColumnDef, bool) {
	c, ok := r.columns[name]
	return c, ok
}

// AliasedTable is the base type of generated table shapes.
type AliasedTable struct {
	registry
	def   TableDef
	alias string
}

// NewAliasedTable returns a table bound to an optional alias. The empty alias
// means the table is referenced by its own name.
func NewAliasedTable(def TableDef, alias string) AliasedTable {
	return AliasedTable{registry: newRegistry(def.Columns, alias), def: def, alias: alias}
}

// Def returns the underlying table definition.
func (t AliasedTable) Def() TableDef { return t.def }

// EntityName returns the alias when set, the table name otherwise.
func (t AliasedTable) EntityName() string {
	if t.alias != "" {
		return t.alias
	}
	return t.def.Name
}

// CreateSQL returns the CREATE TABLE statement for the definition.
func (t AliasedTable) CreateSQL() string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(QuoteIdent(t.def.Name))
	b.WriteString(" (\n")
	for i, c := range t.def.Columns {
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteString("  ")
		b.WriteString(c.SQL)
	}
	for _, c := range t.def.Constraints {
		b.WriteString(",\n  ")
		b.WriteString(c)
	}
	b.WriteString("\n)")
	var opts []string
	if t.def.WithoutRowid {
		opts = append(opts, "WITHOUT ROWID")
	}
	if t.def.Strict {
		opts = append(opts, "STRICT")
	}
	if len(opts) > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Join(opts, ", "))
	}
	return b.String()
}

// AliasedVirtualTable is the base type of generated virtual-table shapes.
type AliasedVirtualTable struct {
	registry
	def   VirtualTableDef
	alias string
}

// NewAliasedVirtualTable returns a virtual table bound to an optional alias.
func NewAliasedVirtualTable(def VirtualTableDef, alias string) AliasedVirtualTable {
	return AliasedVirtualTable{registry: newRegistry(def.Columns, alias), def: def, alias: alias}
}

// Def returns the underlying virtual-table definition.
func (t AliasedVirtualTable) Def() VirtualTableDef { return t.def }

// EntityName returns the alias when set, the table name otherwise.
func (t AliasedVirtualTable) EntityName() string {
	if t.alias != "" {
		return t.alias
	}
	return t.def.Name
}

// CreateSQL returns the CREATE VIRTUAL TABLE statement for the definition.
func (t AliasedVirtualTable) CreateSQL() string {
	var b strings.Builder
	b.WriteString("CREATE VIRTUAL TABLE ")
	b.WriteString(QuoteIdent(t.def.Name))
	b.WriteString(" USING ")
	b.WriteString(t.def.Module)
	if len(t.def.Args) > 0 {
		b.WriteString("(")
		b.WriteString(strings.Join(t.def.Args, ", "))
		b.WriteString(")")
	}
	return b.String()
}

// AliasedView is the base type of generated view shapes.
type AliasedView struct {
	registry
	def   ViewDef
	alias string
}

// NewAliasedView returns a view bound to an optional alias.
func NewAliasedView(def ViewDef, alias string) AliasedView {
	return AliasedView{registry: newRegistry(def.Columns, alias), def: def, alias: alias}
}

// Def returns the underlying view definition.
func (v AliasedView) Def() ViewDef { return v.def }

// EntityName returns the alias when set, the view name otherwise.
func (v AliasedView) EntityName() string {
	if v.alias != "" {
		return v.alias
	}
	return v.def.Name
}

// CreateSQL returns the raw create statement carried by the definition.
func (v AliasedView) CreateSQL() string { return v.def.Statement }

// IndexDef is the structured description of an index.
type IndexDef struct {
	Name    string
	Table   string
	Columns []string
	Unique  bool
	Where   string
}

// Index is an index bound to its owning snapshot.
type Index struct {
	owner Snapshot
	def   IndexDef
}

// NewIndex binds an index definition to the snapshot that declares it.
func NewIndex(owner Snapshot, def IndexDef) Index {
	return Index{owner: owner, def: def}
}

// Owner returns the snapshot the index was declared on.
func (i Index) Owner() Snapshot { return i.owner }

// Def returns the underlying index definition.
func (i Index) Def() IndexDef { return i.def }

// EntityName returns the index name.
func (i Index) EntityName() string { return i.def.Name }

// CreateSQL returns the CREATE INDEX statement for the definition.
func (i Index) CreateSQL() string {
	var b strings.Builder
	b.WriteString("CREATE ")
	if i.def.Unique {
		b.WriteString("UNIQUE ")
	}
	b.WriteString("INDEX ")
	b.WriteString(QuoteIdent(i.def.Name))
	b.WriteString(" ON ")
	b.WriteString(QuoteIdent(i.def.Table))
	b.WriteString(" (")
	for j, c := range i.def.Columns {
		if j > 0 {
			b.WriteString(", ")
		}
		b.WriteString(QuoteIdent(c))
	}
	b.WriteString(")")
	if i.def.Where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(i.def.Where)
	}
	return b.String()
}

// TriggerDef is the opaque description of a trigger.
type TriggerDef struct {
	Name      string
	Statement string
}

// Trigger is a trigger bound to its owning snapshot.
type Trigger struct {
	owner Snapshot
	def   TriggerDef
}

// NewTrigger binds a trigger definition to the snapshot that declares it.
func NewTrigger(owner Snapshot, def TriggerDef) Trigger {
	return Trigger{owner: owner, def: def}
}

// Owner returns the snapshot the trigger was declared on.
func (t Trigger) Owner() Snapshot { return t.owner }

// Def returns the underlying trigger definition.
func (t Trigger) Def() TriggerDef { return t.def }

// EntityName returns the trigger name.
func (t Trigger) EntityName() string { return t.def.Name }

// CreateSQL returns the raw create statement carried by the definition.
func (t Trigger) CreateSQL() string { return t.def.Statement }
