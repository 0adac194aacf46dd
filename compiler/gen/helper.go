package gen

import (
	"strconv"

	"github.com/dave/jennifer/jen"

	"github.com/sqlstep/sqlstep/schema"
)

// runtimePkg returns the import path for the runtime package.
func runtimePkg() string {
	return "github.com/sqlstep/sqlstep"
}

// versionLit renders a version ordinal as an untyped integer literal. The
// ordinal is int64 end to end; going through the token text keeps the full
// range on any generator host without a typed int64 conversion in the output.
func versionLit(v int64) *jen.Statement {
	return jen.Id(strconv.FormatInt(v, 10))
}

// goType returns the Go type generated accessors scan the column type into.
func goType(t schema.Type) *jen.Statement {
	switch t {
	case schema.TypeInteger:
		return jen.Int64()
	case schema.TypeReal:
		return jen.Float64()
	case schema.TypeText:
		return jen.String()
	case schema.TypeBlob:
		return jen.Index().Byte()
	}
	return jen.Any()
}
