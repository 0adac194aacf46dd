package gen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sqlstep/sqlstep/schema"
)

func TestColumnInterner_SharesIdenticalText(t *testing.T) {
	ci := newColumnInterner(NewScope())

	// Same rendered definition, regardless of which table carries it.
	first := ci.intern(col("colX", "col_x", schema.TypeInteger))
	second := ci.intern(col("colX", "col_x", schema.TypeInteger))
	assert.Equal(t, "_column_0", first)
	assert.Equal(t, first, second)
}

func TestColumnInterner_OneTokenApartNeverCollapses(t *testing.T) {
	ci := newColumnInterner(NewScope())

	base := col("colX", "col_x", schema.TypeInteger)
	nullable := col("colX", "col_x", schema.TypeInteger)
	nullable.NotNull = false
	defaulted := col("colX", "col_x", schema.TypeInteger)
	defaulted.Default = "0"
	retyped := col("colX", "col_x", schema.TypeText)

	names := make(map[string]bool)
	for _, c := range []*schema.Column{base, nullable, defaulted, retyped} {
		names[ci.intern(c)] = true
	}
	assert.Len(t, names, 4)
}

func TestColumnInterner_SequentialFirstEncounterOrder(t *testing.T) {
	ci := newColumnInterner(NewScope())

	assert.Equal(t, "_column_0", ci.intern(col("a", "a", schema.TypeInteger)))
	assert.Equal(t, "_column_1", ci.intern(col("b", "b", schema.TypeText)))
	assert.Equal(t, "_column_0", ci.intern(col("a", "a", schema.TypeInteger)))
	assert.Equal(t, "_column_2", ci.intern(col("c", "c", schema.TypeBlob)))
}

func TestColumnInterner_EmitsOneFactoryPerUniqueText(t *testing.T) {
	scope := NewScope()
	ci := newColumnInterner(scope)

	ci.intern(col("colX", "col_x", schema.TypeInteger))
	ci.intern(col("colX", "col_x", schema.TypeInteger))
	ci.intern(col("colY", "col_y", schema.TypeText))

	code := renderScope(scope)
	assert.Equal(t, 2, strings.Count(code, "func _column_"))
	assert.Contains(t, code, "func _column_0(alias string) sqlstep.ColumnDef")
	assert.Contains(t, code, `SQL:   "\"col_x\" INTEGER NOT NULL"`)
	assert.Contains(t, code, "schema.TypeInteger")
	assert.Contains(t, code, "Alias: alias")
}
