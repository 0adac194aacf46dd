// Package sqlite renders schema values into SQLite definition text and into
// the Jennifer expressions embedded in generated migration code. It is the
// statement-rendering collaborator of the compiler: the generator decides
// what to emit, this package decides how a column, constraint, index or
// trigger reads as source text.
package sqlite

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/sqlstep/sqlstep"
	"github.com/sqlstep/sqlstep/schema"
)

// runtimePkg is the import path of the runtime package generated code uses.
const runtimePkg = "github.com/sqlstep/sqlstep"

// schemaPkg is the import path of the schema model package.
const schemaPkg = "github.com/sqlstep/sqlstep/schema"

// TypeSQL returns the SQLite type keyword for a column type tag.
func TypeSQL(t schema.Type) string {
	switch t {
	case schema.TypeInteger:
		return "INTEGER"
	case schema.TypeReal:
		return "REAL"
	case schema.TypeText:
		return "TEXT"
	case schema.TypeBlob:
		return "BLOB"
	}
	return "INVALID"
}

// ColumnSQL renders the full definition text of a column: quoted name, type,
// nullability, default and any trailing raw text, in canonical order.
func ColumnSQL(c *schema.Column) string {
	var b strings.Builder
	b.WriteString(sqlstep.QuoteIdent(c.Name))
	b.WriteString(" ")
	b.WriteString(TypeSQL(c.Type))
	if c.NotNull {
		b.WriteString(" NOT NULL")
	}
	if c.Default != "" {
		b.WriteString(" DEFAULT ")
		b.WriteString(c.Default)
	}
	if c.Extra != "" {
		b.WriteString(" ")
		b.WriteString(c.Extra)
	}
	return b.String()
}

// ColumnDefValues returns the sqlstep.ColumnDef composite literal a generated
// column factory evaluates to. The free identifier "alias" is bound by the
// factory's parameter.
func ColumnDefValues(c *schema.Column) *jen.Statement {
	return jen.Qual(runtimePkg, "ColumnDef").Values(jen.Dict{
		jen.Id("Name"):  jen.Lit(c.Name),
		jen.Id("Type"):  jen.Qual(schemaPkg, c.Type.ConstName()),
		jen.Id("SQL"):   jen.Lit(ColumnSQL(c)),
		jen.Id("Alias"): jen.Id("alias"),
	})
}
