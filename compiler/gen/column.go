package gen

import (
	"fmt"
	"strconv"

	"github.com/dave/jennifer/jen"

	"github.com/sqlstep/sqlstep/dialect/sqlite"
	"github.com/sqlstep/sqlstep/schema"
)

// columnInterner deduplicates rendered column definitions into shared
// factory functions. The cache key is the rendered factory body text: two
// columns collapse to one factory exactly when their definitions render to
// identical source, regardless of which version or table they came from.
// This is a conservative textual approximation of "identical column", not a
// semantic one.
type columnInterner struct {
	scope  *Scope
	byText map[string]string
	next   int
}

func newColumnInterner(scope *Scope) *columnInterner {
	return &columnInterner{scope: scope, byText: make(map[string]string)}
}

// intern returns the factory name for a column, emitting the factory into
// the scope on first encounter. Factories are numbered sequentially in
// first-encounter order.
func (ci *columnInterner) intern(c *schema.Column) string {
	body := jen.Return(sqlite.ColumnDefValues(c))
	text := fmt.Sprintf("%#v", body)
	if name, ok := ci.byText[text]; ok {
		return name
	}
	name := "_column_" + strconv.Itoa(ci.next)
	ci.next++
	ci.scope.Reserve(name)
	ci.scope.Append(
		jen.Func().Id(name).
			Params(jen.Id("alias").String()).
			Qual(runtimePkg(), "ColumnDef").
			Block(body),
	)
	ci.byText[text] = name
	return name
}
