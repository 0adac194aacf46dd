package load

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlstep/sqlstep/schema"
)

const sampleDescriptor = `
package: appdb
versions:
  - version: 1
    schema:
      - table:
          name: users
          primary_key: [id]
          default_constraints: true
          columns:
            - {name: id, type: integer, not_null: true}
            - {name: display-name, type: text}
  - version: 2
    options:
      journal_mode: wal
    schema:
      - table:
          name: users
          columns:
            - {name: id, type: integer, not_null: true}
      - view:
          name: totals
          statement: CREATE VIEW totals AS SELECT COUNT(*) AS n FROM users
          columns:
            - {name: n, type: integer}
      - index:
          name: idx_users_id
          table: users
          columns: [id]
          unique: true
      - trigger:
          name: trg_audit
          statement: CREATE TRIGGER trg_audit AFTER INSERT ON users BEGIN SELECT 1; END
`

func TestParse_Descriptor(t *testing.T) {
	d, err := Parse(strings.NewReader(sampleDescriptor))
	require.NoError(t, err)

	assert.Equal(t, "appdb", d.Package)
	require.Len(t, d.Versions, 2)
	assert.Equal(t, int64(1), d.Versions[0].Version)
	assert.Equal(t, map[string]string{"journal_mode": "wal"}, d.Versions[1].Options)
}

func TestParse_DefaultPackage(t *testing.T) {
	d, err := Parse(strings.NewReader("versions: []"))
	require.NoError(t, err)
	assert.Equal(t, "migrations", d.Package)
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse(strings.NewReader("pakage: oops"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode descriptor")
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDescriptor), 0o644))

	d, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "appdb", d.Package)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestModel(t *testing.T) {
	d, err := Parse(strings.NewReader(sampleDescriptor))
	require.NoError(t, err)

	versions, err := d.Model()
	require.NoError(t, err)
	require.Len(t, versions, 2)

	v1 := versions[0]
	require.Len(t, v1.Schema, 1)
	tb, ok := v1.Schema[0].(*schema.Table)
	require.True(t, ok)
	assert.Equal(t, "users", tb.Name)
	assert.True(t, tb.WriteDefaultConstraints)
	assert.Equal(t, []string{"id"}, tb.Constraints.PrimaryKey)
	require.Len(t, tb.Columns, 2)
	assert.Equal(t, "id", tb.Columns[0].Accessor)
	assert.True(t, tb.Columns[0].NotNull)
	// Dashed names camelize for the accessor, the SQL name stays verbatim.
	assert.Equal(t, "displayName", tb.Columns[1].Accessor)
	assert.Equal(t, "display-name", tb.Columns[1].Name)

	v2 := versions[1]
	require.Len(t, v2.Schema, 4)
	view, ok := v2.Schema[1].(*schema.View)
	require.True(t, ok)
	assert.Equal(t, "totals", view.Name)
	idx, ok := v2.Schema[2].(*schema.Index)
	require.True(t, ok)
	assert.True(t, idx.Unique)
	trg, ok := v2.Schema[3].(*schema.Trigger)
	require.True(t, ok)
	assert.Equal(t, "trg_audit", trg.Name)
}

func TestModel_ExplicitAccessorWins(t *testing.T) {
	doc := `
versions:
  - version: 1
    schema:
      - table:
          name: t
          columns:
            - {name: col_x, type: integer, accessor: customName}
`
	versions := mustModel(t, doc)
	tb := versions[0].Schema[0].(*schema.Table)
	assert.Equal(t, "customName", tb.Columns[0].Accessor)
}

func TestModel_BadColumnType(t *testing.T) {
	doc := `
versions:
  - version: 1
    schema:
      - table:
          name: t
          columns:
            - {name: c, type: varchar}
`
	_, err := parseModel(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown column type "varchar"`)
	assert.Contains(t, err.Error(), "version 1, element 0")
}

func TestModel_ExactlyOneKind(t *testing.T) {
	doc := `
versions:
  - version: 1
    schema:
      - table:
          name: t
        view:
          name: v
`
	_, err := parseModel(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of table, view, index or trigger")

	_, err = parseModel("versions:\n  - version: 1\n    schema:\n      - {}\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(got 0)")
}

func TestModel_ForeignKeyActions(t *testing.T) {
	doc := `
versions:
  - version: 1
    schema:
      - table:
          name: t
          columns:
            - {name: org, type: integer}
          foreign_keys:
            - {columns: [org], ref_table: orgs, ref_columns: [id], on_delete: cascade, on_update: set null}
`
	versions := mustModel(t, doc)
	tb := versions[0].Schema[0].(*schema.Table)
	require.Len(t, tb.Constraints.ForeignKeys, 1)
	fk := tb.Constraints.ForeignKeys[0]
	assert.Equal(t, schema.Cascade, fk.OnDelete)
	assert.Equal(t, schema.SetNull, fk.OnUpdate)
}

func TestModel_UnknownRefAction(t *testing.T) {
	doc := `
versions:
  - version: 1
    schema:
      - table:
          name: t
          foreign_keys:
            - {columns: [org], ref_table: orgs, ref_columns: [id], on_delete: nope}
`
	_, err := parseModel(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown reference action "nope"`)
}

func mustModel(t *testing.T, doc string) []*schema.Version {
	t.Helper()
	versions, err := parseModel(doc)
	require.NoError(t, err)
	return versions
}

func parseModel(doc string) ([]*schema.Version, error) {
	d, err := Parse(strings.NewReader(doc))
	if err != nil {
		return nil, err
	}
	return d.Model()
}
