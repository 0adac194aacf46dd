package gen

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/sqlstep/sqlstep/dialect/sqlite"
	"github.com/sqlstep/sqlstep/schema"
)

// snapshotField is one emitted field of a snapshot type.
type snapshotField struct {
	name  string
	typ   jen.Code
	value jen.Code
}

// emitSnapshot generates the snapshot type for one non-initial version: a
// struct with one field per schema element, a constructor building every
// entity through the interners and the dialect builders, and the Version and
// Entities accessors. Shared factories and shapes introduced while building
// the fields are emitted into the root scope before the class itself.
func (g *Generator) emitSnapshot(v *schema.Version) error {
	typeName := g.root.Unique(fmt.Sprintf("V%dSchema", v.Version))
	g.root.Reserve("New" + typeName)
	g.snapshots[v.Version] = typeName

	class := g.root.Child()
	class.Reserve("Version")
	class.Reserve("Entities")

	fields := make([]snapshotField, 0, len(v.Schema))
	for _, el := range v.Schema {
		switch e := el.(type) {
		case *schema.Table:
			shapeName, err := g.shapes.shapeFor(e)
			if err != nil {
				return err
			}
			fields = append(fields, snapshotField{
				name:  class.Unique(fieldName(e.Name, "Table")),
				typ:   jen.Id(shapeName),
				value: jen.Id("New" + shapeName).Call(g.tableDef(e), jen.Lit("")),
			})
		case *schema.View:
			shapeName, err := g.shapes.shapeFor(e)
			if err != nil {
				return err
			}
			fields = append(fields, snapshotField{
				name:  class.Unique(fieldName(e.Name, "View")),
				typ:   jen.Id(shapeName),
				value: jen.Id("New" + shapeName).Call(g.viewDef(e), jen.Lit("")),
			})
		case *schema.Index:
			fields = append(fields, snapshotField{
				name:  class.Unique(fieldName(e.Name, "Index")),
				typ:   jen.Qual(runtimePkg(), "Index"),
				value: sqlite.IndexExpr("s", e),
			})
		case *schema.Trigger:
			fields = append(fields, snapshotField{
				name:  class.Unique(fieldName(e.Name, "Trigger")),
				typ:   jen.Qual(runtimePkg(), "Trigger"),
				value: sqlite.TriggerExpr("s", e),
			})
		}
	}

	class.Append(
		jen.Commentf("%s is the complete schema at version %d.", typeName, v.Version).Line().
			Type().Id(typeName).StructFunc(func(grp *jen.Group) {
			for _, f := range fields {
				grp.Id(f.name).Add(f.typ)
			}
		}),
		jen.Commentf("New%s builds every schema element of version %d.", typeName, v.Version).Line().
			Func().Id("New"+typeName).Params().Op("*").Id(typeName).BlockFunc(func(grp *jen.Group) {
			grp.Id("s").Op(":=").Op("&").Id(typeName).Values()
			for _, f := range fields {
				grp.Id("s").Dot(f.name).Op("=").Add(f.value)
			}
			grp.Return(jen.Id("s"))
		}),
		jen.Commentf("Version returns the schema version the snapshot describes.").Line().
			Func().Params(jen.Id("s").Op("*").Id(typeName)).Id("Version").Params().Int64().
			Block(jen.Return(versionLit(v.Version))),
		jen.Commentf("Entities returns every schema element of version %d, in declaration order.", v.Version).Line().
			Func().Params(jen.Id("s").Op("*").Id(typeName)).Id("Entities").Params().
			Index().Qual(runtimePkg(), "Entity").
			Block(jen.Return(jen.Index().Qual(runtimePkg(), "Entity").ValuesFunc(func(grp *jen.Group) {
				for _, f := range fields {
					grp.Id("s").Dot(f.name)
				}
			}))),
	)
	g.root.Attach(class)
	return nil
}

// columnList renders the columns of an entity as interned factory calls, in
// declared column order. Snapshot-level entities are never aliased.
func (g *Generator) columnList(cols []*schema.Column) jen.Code {
	return jen.Index().Qual(runtimePkg(), "ColumnDef").ValuesFunc(func(grp *jen.Group) {
		for _, c := range cols {
			grp.Id(g.columns.intern(c)).Call(jen.Lit(""))
		}
	})
}

// tableDef renders the source-definition literal for a table: virtual tables
// carry their module binding, plain tables their constraint text and flags.
func (g *Generator) tableDef(t *schema.Table) jen.Code {
	if t.Virtual != nil {
		dict := jen.Dict{
			jen.Id("Name"):    jen.Lit(t.Name),
			jen.Id("Module"):  jen.Lit(t.Virtual.Module),
			jen.Id("Columns"): g.columnList(t.Columns),
		}
		if len(t.Virtual.Args) > 0 {
			dict[jen.Id("Args")] = jen.Index().String().ValuesFunc(func(grp *jen.Group) {
				for _, a := range t.Virtual.Args {
					grp.Lit(a)
				}
			})
		}
		return jen.Qual(runtimePkg(), "VirtualTableDef").Values(dict)
	}
	dict := jen.Dict{
		jen.Id("Name"):    jen.Lit(t.Name),
		jen.Id("Columns"): g.columnList(t.Columns),
	}
	if constraints := sqlite.TableConstraints(t); len(constraints) > 0 {
		dict[jen.Id("Constraints")] = jen.Index().String().ValuesFunc(func(grp *jen.Group) {
			for _, c := range constraints {
				grp.Lit(c)
			}
		})
	}
	if t.Strict {
		dict[jen.Id("Strict")] = jen.True()
	}
	if t.WithoutRowid {
		dict[jen.Id("WithoutRowid")] = jen.True()
	}
	return jen.Qual(runtimePkg(), "TableDef").Values(dict)
}

// viewDef renders the source-definition literal for a view.
func (g *Generator) viewDef(v *schema.View) jen.Code {
	return jen.Qual(runtimePkg(), "ViewDef").Values(jen.Dict{
		jen.Id("Name"):      jen.Lit(v.Name),
		jen.Id("Statement"): jen.Lit(v.Statement),
		jen.Id("Columns"):   g.columnList(v.Columns),
	})
}
