package sqlite

import (
	"strings"

	"github.com/sqlstep/sqlstep"
	"github.com/sqlstep/sqlstep/schema"
)

// Clause is an abstract table-constraint node. Serializing through Clause
// guarantees the canonical syntax the live schema builder produces,
// independent of how a user originally spelled the constraint.
type Clause interface {
	SQL() string
}

// PrimaryKeyClause is a table-level PRIMARY KEY constraint.
type PrimaryKeyClause struct {
	Columns []string
}

// SQL returns the canonical PRIMARY KEY clause text.
func (c PrimaryKeyClause) SQL() string {
	return "PRIMARY KEY (" + quoteJoin(c.Columns) + ")"
}

// UniqueClause is a table-level UNIQUE constraint over one column set.
type UniqueClause struct {
	Columns []string
}

// SQL returns the canonical UNIQUE clause text.
func (c UniqueClause) SQL() string {
	return "UNIQUE (" + quoteJoin(c.Columns) + ")"
}

// ForeignKeyClause is a table-level FOREIGN KEY constraint with its update
// and delete actions.
type ForeignKeyClause struct {
	schema.ForeignKey
}

// SQL returns the canonical FOREIGN KEY clause text.
func (c ForeignKeyClause) SQL() string {
	var b strings.Builder
	b.WriteString("FOREIGN KEY (")
	b.WriteString(quoteJoin(c.Columns))
	b.WriteString(") REFERENCES ")
	b.WriteString(sqlstep.QuoteIdent(c.RefTable))
	b.WriteString(" (")
	b.WriteString(quoteJoin(c.RefColumns))
	b.WriteString(")")
	if c.OnUpdate != "" {
		b.WriteString(" ON UPDATE ")
		b.WriteString(string(c.OnUpdate))
	}
	if c.OnDelete != "" {
		b.WriteString(" ON DELETE ")
		b.WriteString(string(c.OnDelete))
	}
	return b.String()
}

// DefaultClauses builds the abstract constraint nodes for a table's
// structured constraints, in primary-key, unique, foreign-key order.
func DefaultClauses(t *schema.Table) []Clause {
	var clauses []Clause
	if len(t.Constraints.PrimaryKey) > 0 {
		clauses = append(clauses, PrimaryKeyClause{Columns: t.Constraints.PrimaryKey})
	}
	for _, u := range t.Constraints.Unique {
		clauses = append(clauses, UniqueClause{Columns: u})
	}
	for _, fk := range t.Constraints.ForeignKeys {
		clauses = append(clauses, ForeignKeyClause{ForeignKey: fk})
	}
	return clauses
}

// TableConstraints returns the constraint text list for a table: clauses
// synthesized from the structured constraints when the table opts into
// default constraints, followed by any caller-overridden raw strings,
// verbatim and in caller order.
func TableConstraints(t *schema.Table) []string {
	var out []string
	if t.WriteDefaultConstraints {
		for _, c := range DefaultClauses(t) {
			out = append(out, c.SQL())
		}
	}
	out = append(out, t.RawConstraints...)
	return out
}

func quoteJoin(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = sqlstep.QuoteIdent(c)
	}
	return strings.Join(quoted, ", ")
}
