package sqlite

import (
	"github.com/dave/jennifer/jen"

	"github.com/sqlstep/sqlstep/schema"
)

// IndexExpr returns the constructor expression for an index, bound to the
// enclosing snapshot through the given receiver identifier.
func IndexExpr(receiver string, idx *schema.Index) *jen.Statement {
	dict := jen.Dict{
		jen.Id("Name"):  jen.Lit(idx.Name),
		jen.Id("Table"): jen.Lit(idx.Table),
		jen.Id("Columns"): jen.Index().String().ValuesFunc(func(g *jen.Group) {
			for _, c := range idx.Columns {
				g.Lit(c)
			}
		}),
	}
	if idx.Unique {
		dict[jen.Id("Unique")] = jen.True()
	}
	if idx.Where != "" {
		dict[jen.Id("Where")] = jen.Lit(idx.Where)
	}
	return jen.Qual(runtimePkg, "NewIndex").Call(
		jen.Id(receiver),
		jen.Qual(runtimePkg, "IndexDef").Values(dict),
	)
}

// TriggerExpr returns the constructor expression for a trigger, bound to the
// enclosing snapshot through the given receiver identifier.
func TriggerExpr(receiver string, tr *schema.Trigger) *jen.Statement {
	return jen.Qual(runtimePkg, "NewTrigger").Call(
		jen.Id(receiver),
		jen.Qual(runtimePkg, "TriggerDef").Values(jen.Dict{
			jen.Id("Name"):      jen.Lit(tr.Name),
			jen.Id("Statement"): jen.Lit(tr.Statement),
		}),
	)
}
