package gen

import (
	"fmt"

	"github.com/dave/jennifer/jen"
)

// dispatchStep is one adjacent version pair of the dispatcher.
type dispatchStep struct {
	from     int64
	to       int64
	param    string
	snapType string
}

// emitDispatcher generates MigrationSteps and its StepByStep adapter. The
// factory takes exactly one named callback per adjacent version pair; wrong
// arity or names fail at the generated code's own compile time, never here.
func (g *Generator) emitDispatcher() {
	var steps []dispatchStep
	for prev, next := range adjacent(g.versions) {
		steps = append(steps, dispatchStep{
			from:     prev.Version,
			to:       next.Version,
			param:    fmt.Sprintf("from%dTo%d", prev.Version, next.Version),
			snapType: g.snapshots[next.Version],
		})
	}

	g.root.Append(
		jen.Comment("MigrationSteps returns a step function that advances the schema by one").Line().
			Comment("version: each callback migrates between one adjacent version pair. Any").Line().
			Comment("unmatched current version yields an UnknownVersionError.").Line().
			Func().Id("MigrationSteps").Params(g.stepParams(steps)...).Qual(runtimePkg(), "StepFunc").
			Block(jen.Return(jen.Func().
				Params(
					jen.Id("ctx").Qual("context", "Context"),
					jen.Id("current").Int64(),
					jen.Id("db").Qual(runtimePkg(), "Execer"),
				).
				Params(jen.Int64(), jen.Error()).
				Block(jen.Switch(jen.Id("current")).BlockFunc(func(grp *jen.Group) {
					for _, s := range steps {
						grp.Case(versionLit(s.from)).Block(
							jen.Id("next").Op(":=").Id("New"+s.snapType).Call(),
							jen.Id("m").Op(":=").Qual(runtimePkg(), "NewMigrator").Call(jen.Id("db"), jen.Id("next")),
							jen.If(
								jen.Err().Op(":=").Id(s.param).Call(jen.Id("ctx"), jen.Id("m"), jen.Id("next")),
								jen.Err().Op("!=").Nil(),
							).Block(jen.Return(jen.Lit(0), jen.Err())),
							jen.Return(versionLit(s.to), jen.Nil()),
						)
					}
					grp.Default().Block(jen.Return(
						jen.Lit(0),
						jen.Qual(runtimePkg(), "NewUnknownVersionError").Call(jen.Id("current")),
					))
				})))),
		jen.Comment("StepByStep adapts MigrationSteps to the calling shape expected by").Line().
			Comment("sqlstep.RunMigrationSteps, forwarding every callback unchanged by name.").Line().
			Func().Id("StepByStep").Params(g.stepParams(steps)...).Qual(runtimePkg(), "Steps").
			Block(jen.Return(jen.Qual(runtimePkg(), "Steps").Values(jen.Dict{
				jen.Id("From"): versionLit(g.versions[0].Version),
				jen.Id("To"):   versionLit(g.versions[len(g.versions)-1].Version),
				jen.Id("Step"): jen.Id("MigrationSteps").CallFunc(func(grp *jen.Group) {
					for _, s := range steps {
						grp.Id(s.param)
					}
				}),
			}))),
	)
}

// stepParams renders the shared callback parameter list of both factories.
func (g *Generator) stepParams(steps []dispatchStep) []jen.Code {
	params := make([]jen.Code, len(steps))
	for i, s := range steps {
		params[i] = jen.Id(s.param).Func().
			Params(
				jen.Qual("context", "Context"),
				jen.Op("*").Qual(runtimePkg(), "Migrator"),
				jen.Op("*").Id(s.snapType),
			).
			Error()
	}
	return params
}
