package gen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/sqlstep/sqlstep/schema"
)

// shapeKind classifies the entity interface a shape describes.
type shapeKind int

const (
	kindTable shapeKind = iota
	kindVirtualTable
	kindView
)

// baseType returns the runtime base type a shape of this kind embeds.
func (k shapeKind) baseType() string {
	switch k {
	case kindVirtualTable:
		return "AliasedVirtualTable"
	case kindView:
		return "AliasedView"
	}
	return "AliasedTable"
}

// defType returns the runtime definition type the shape constructor accepts.
func (k shapeKind) defType() string {
	switch k {
	case kindVirtualTable:
		return "VirtualTableDef"
	case kindView:
		return "ViewDef"
	}
	return "TableDef"
}

// constructor returns the runtime constructor the shape forwards to.
func (k shapeKind) constructor() string {
	return "New" + k.baseType()
}

// shapeInterner deduplicates entity interfaces into shared shape types.
// Identity depends only on kind plus the accessor-name to (SQL name, type)
// map; constraints, flags and the entity's own name never participate,
// because downstream migration code depends on the interface contract, not
// the concrete definition.
type shapeInterner struct {
	scope *Scope
	byKey map[string]string
	next  int
}

func newShapeInterner(scope *Scope) *shapeInterner {
	return &shapeInterner{scope: scope, byKey: make(map[string]string)}
}

// shapeFor returns the shape type name for a table or view, emitting the
// type on first encounter. Any other element kind is a precondition
// violation.
func (si *shapeInterner) shapeFor(el schema.Element) (string, error) {
	var (
		kind shapeKind
		cols []*schema.Column
	)
	switch e := el.(type) {
	case *schema.Table:
		kind = kindTable
		if e.Virtual != nil {
			kind = kindVirtualTable
		}
		cols = e.Columns
	case *schema.View:
		kind = kindView
		cols = e.Columns
	default:
		return "", NewInvalidInputError(el.ElementName(), fmt.Sprintf("element of type %T has no shape", el))
	}

	key := shapeKey(kind, cols)
	if name, ok := si.byKey[key]; ok {
		return name, nil
	}
	name := "Shape" + strconv.Itoa(si.next)
	si.next++
	si.scope.Reserve(name)
	si.scope.Reserve("New" + name)
	si.emit(name, kind, cols)
	si.byKey[key] = name
	return name, nil
}

// shapeKey builds the order-independent interning key: kind plus the sorted
// accessor/(SQL name, type) entries.
func shapeKey(kind shapeKind, cols []*schema.Column) string {
	entries := make([]string, len(cols))
	for i, c := range cols {
		entries[i] = c.Accessor + "\x00" + c.Name + "\x00" + strconv.Itoa(int(c.Type))
	}
	sort.Strings(entries)
	return strconv.Itoa(int(kind)) + "\x01" + strings.Join(entries, "\x01")
}

// emit appends the shape type, its constructor and its typed accessors.
// Accessors are emitted in the declared column order of the first entity
// that produced the shape, keeping output byte-stable across runs.
func (si *shapeInterner) emit(name string, kind shapeKind, cols []*schema.Column) {
	si.scope.Append(
		jen.Commentf("%s is a shared %s shape with %d typed columns.", name, kindNoun(kind), len(cols)).Line().
			Type().Id(name).Struct(jen.Qual(runtimePkg(), kind.baseType())),
		jen.Commentf("New%s binds the shape to a source definition and an optional alias.", name).Line().
			Func().Id("New"+name).
			Params(jen.Id("def").Qual(runtimePkg(), kind.defType()), jen.Id("alias").String()).
			Id(name).
			Block(jen.Return(jen.Id(name).Values(
				jen.Qual(runtimePkg(), kind.constructor()).Call(jen.Id("def"), jen.Id("alias")),
			))),
	)
	for _, c := range cols {
		si.scope.Append(
			jen.Func().Params(jen.Id("s").Id(name)).Id(pascal(c.Accessor)).Params().
				Qual(runtimePkg(), "TypedColumn").Index(goType(c.Type)).
				Block(jen.Return(
					jen.Qual(runtimePkg(), "ColumnAs").Index(goType(c.Type)).
						Call(jen.Id("s").Dot(kind.baseType()), jen.Lit(c.Name)),
				)),
		)
	}
}

func kindNoun(kind shapeKind) string {
	switch kind {
	case kindVirtualTable:
		return "virtual table"
	case kindView:
		return "view"
	}
	return "table"
}
