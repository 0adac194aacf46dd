// Package load reads schema-version descriptors and turns them into the
// model consumed by the generator. Descriptors are YAML documents listing
// every version of the schema in ascending order; each schema entry carries
// exactly one element kind.
package load

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-openapi/inflect"
	"gopkg.in/yaml.v3"

	"github.com/sqlstep/sqlstep/schema"
)

// Descriptor is the root of a schema-version document.
type Descriptor struct {
	// Package names the generated library's package. Defaults to "migrations".
	Package  string         `yaml:"package"`
	Versions []*VersionSpec `yaml:"versions"`
}

// VersionSpec describes one schema version.
type VersionSpec struct {
	Version int64             `yaml:"version"`
	Options map[string]string `yaml:"options"`
	Schema  []*ElementSpec    `yaml:"schema"`
}

// ElementSpec carries exactly one element kind per entry.
type ElementSpec struct {
	Table   *TableSpec   `yaml:"table"`
	View    *ViewSpec    `yaml:"view"`
	Index   *IndexSpec   `yaml:"index"`
	Trigger *TriggerSpec `yaml:"trigger"`
}

// TableSpec describes a table element.
type TableSpec struct {
	Name               string              `yaml:"name"`
	Columns            []*ColumnSpec       `yaml:"columns"`
	PrimaryKey         []string            `yaml:"primary_key"`
	Unique             [][]string          `yaml:"unique"`
	ForeignKeys        []*ForeignKeySpec   `yaml:"foreign_keys"`
	Virtual            *VirtualSpec        `yaml:"virtual"`
	WithoutRowid       bool                `yaml:"without_rowid"`
	Strict             bool                `yaml:"strict"`
	DefaultConstraints bool                `yaml:"default_constraints"`
	Constraints        []string            `yaml:"constraints"`
}

// ColumnSpec describes a column.
type ColumnSpec struct {
	Name     string `yaml:"name"`
	Accessor string `yaml:"accessor"`
	Type     string `yaml:"type"`
	NotNull  bool   `yaml:"not_null"`
	Default  string `yaml:"default"`
	Extra    string `yaml:"extra"`
}

// ForeignKeySpec describes a structured foreign-key constraint.
type ForeignKeySpec struct {
	Columns    []string `yaml:"columns"`
	RefTable   string   `yaml:"ref_table"`
	RefColumns []string `yaml:"ref_columns"`
	OnUpdate   string   `yaml:"on_update"`
	OnDelete   string   `yaml:"on_delete"`
}

// VirtualSpec carries the module binding of a virtual table.
type VirtualSpec struct {
	Module string   `yaml:"module"`
	Args   []string `yaml:"args"`
}

// ViewSpec describes a view element.
type ViewSpec struct {
	Name      string        `yaml:"name"`
	Columns   []*ColumnSpec `yaml:"columns"`
	Statement string        `yaml:"statement"`
}

// IndexSpec describes an index element.
type IndexSpec struct {
	Name    string   `yaml:"name"`
	Table   string   `yaml:"table"`
	Columns []string `yaml:"columns"`
	Unique  bool     `yaml:"unique"`
	Where   string   `yaml:"where"`
}

// TriggerSpec describes a trigger element.
type TriggerSpec struct {
	Name      string `yaml:"name"`
	Statement string `yaml:"statement"`
}

// Parse decodes a descriptor document. Unknown fields are rejected.
func Parse(r io.Reader) (*Descriptor, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	d := &Descriptor{}
	if err := dec.Decode(d); err != nil {
		return nil, fmt.Errorf("load: decode descriptor: %w", err)
	}
	if d.Package == "" {
		d.Package = "migrations"
	}
	return d, nil
}

// ParseFile decodes a descriptor document from disk.
func ParseFile(path string) (*Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Model converts the descriptor into the generator's input model, validating
// each entry as it goes.
func (d *Descriptor) Model() ([]*schema.Version, error) {
	versions := make([]*schema.Version, 0, len(d.Versions))
	for _, vs := range d.Versions {
		v, err := newVersion(vs)
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, nil
}

func newVersion(vs *VersionSpec) (*schema.Version, error) {
	v := &schema.Version{Version: vs.Version, Options: vs.Options}
	for i, es := range vs.Schema {
		el, err := newElement(es)
		if err != nil {
			return nil, fmt.Errorf("load: version %d, element %d: %w", vs.Version, i, err)
		}
		v.Schema = append(v.Schema, el)
	}
	return v, nil
}

func newElement(es *ElementSpec) (schema.Element, error) {
	set := 0
	for _, present := range []bool{es.Table != nil, es.View != nil, es.Index != nil, es.Trigger != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("exactly one of table, view, index or trigger must be set (got %d)", set)
	}
	switch {
	case es.Table != nil:
		return newTable(es.Table)
	case es.View != nil:
		return newView(es.View)
	case es.Index != nil:
		return &schema.Index{
			Name:    es.Index.Name,
			Table:   es.Index.Table,
			Columns: es.Index.Columns,
			Unique:  es.Index.Unique,
			Where:   es.Index.Where,
		}, nil
	default:
		return &schema.Trigger{Name: es.Trigger.Name, Statement: es.Trigger.Statement}, nil
	}
}

func newTable(ts *TableSpec) (*schema.Table, error) {
	t := &schema.Table{
		Name:                    ts.Name,
		WithoutRowid:            ts.WithoutRowid,
		Strict:                  ts.Strict,
		WriteDefaultConstraints: ts.DefaultConstraints,
		RawConstraints:          ts.Constraints,
		Constraints: schema.Constraints{
			PrimaryKey: ts.PrimaryKey,
			Unique:     ts.Unique,
		},
	}
	if ts.Virtual != nil {
		t.Virtual = &schema.VirtualTable{Module: ts.Virtual.Module, Args: ts.Virtual.Args}
	}
	for _, cs := range ts.Columns {
		c, err := newColumn(cs)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", ts.Name, err)
		}
		t.Columns = append(t.Columns, c)
	}
	for _, fs := range ts.ForeignKeys {
		fk, err := newForeignKey(fs)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", ts.Name, err)
		}
		t.Constraints.ForeignKeys = append(t.Constraints.ForeignKeys, fk)
	}
	return t, nil
}

func newView(vs *ViewSpec) (*schema.View, error) {
	v := &schema.View{Name: vs.Name, Statement: vs.Statement}
	for _, cs := range vs.Columns {
		c, err := newColumn(cs)
		if err != nil {
			return nil, fmt.Errorf("view %q: %w", vs.Name, err)
		}
		v.Columns = append(v.Columns, c)
	}
	return v, nil
}

func newColumn(cs *ColumnSpec) (*schema.Column, error) {
	if cs.Name == "" {
		return nil, fmt.Errorf("column without a name")
	}
	typ, err := schema.ParseType(cs.Type)
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", cs.Name, err)
	}
	accessor := cs.Accessor
	if accessor == "" {
		accessor = inflect.CamelizeDownFirst(strings.ReplaceAll(cs.Name, "-", "_"))
	}
	return &schema.Column{
		Accessor: accessor,
		Name:     cs.Name,
		Type:     typ,
		NotNull:  cs.NotNull,
		Default:  cs.Default,
		Extra:    cs.Extra,
	}, nil
}

func newForeignKey(fs *ForeignKeySpec) (schema.ForeignKey, error) {
	fk := schema.ForeignKey{
		Columns:    fs.Columns,
		RefTable:   fs.RefTable,
		RefColumns: fs.RefColumns,
	}
	var err error
	if fk.OnUpdate, err = parseAction(fs.OnUpdate); err != nil {
		return fk, fmt.Errorf("foreign key on %v: %w", fs.Columns, err)
	}
	if fk.OnDelete, err = parseAction(fs.OnDelete); err != nil {
		return fk, fmt.Errorf("foreign key on %v: %w", fs.Columns, err)
	}
	return fk, nil
}

func parseAction(s string) (schema.RefAction, error) {
	switch strings.ToLower(s) {
	case "":
		return "", nil
	case "no action":
		return schema.NoAction, nil
	case "restrict":
		return schema.Restrict, nil
	case "set null":
		return schema.SetNull, nil
	case "set default":
		return schema.SetDefault, nil
	case "cascade":
		return schema.Cascade, nil
	}
	return "", fmt.Errorf("unknown reference action %q", s)
}
