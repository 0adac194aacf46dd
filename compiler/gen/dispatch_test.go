package gen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sqlstep/sqlstep/schema"
)

func TestDispatch_OneCallbackPerAdjacentPair(t *testing.T) {
	code := generateCode(t, threeVersions())

	assert.Contains(t, code, "func MigrationSteps(from1To2 func(context.Context, *sqlstep.Migrator, *V2Schema) error, from2To3 func(context.Context, *sqlstep.Migrator, *V3Schema) error) sqlstep.StepFunc")
	assert.Equal(t, 2, strings.Count(code, "case "))
}

func TestDispatch_StepBodies(t *testing.T) {
	code := generateCode(t, threeVersions())

	// Each case constructs the next snapshot, binds a migrator, runs the
	// callback for the pair and yields the next ordinal.
	assert.Contains(t, code, "case 1:")
	assert.Contains(t, code, "next := NewV2Schema()")
	assert.Contains(t, code, "m := sqlstep.NewMigrator(db, next)")
	assert.Contains(t, code, "if err := from1To2(ctx, m, next); err != nil {")
	assert.Contains(t, code, "return 2, nil")

	assert.Contains(t, code, "case 2:")
	assert.Contains(t, code, "if err := from2To3(ctx, m, next); err != nil {")
	assert.Contains(t, code, "return 3, nil")
}

func TestDispatch_UnknownVersionDefault(t *testing.T) {
	code := generateCode(t, threeVersions())
	assert.Contains(t, code, "default:")
	assert.Contains(t, code, "return 0, sqlstep.NewUnknownVersionError(current)")
}

func TestDispatch_StepByStepForwardsByName(t *testing.T) {
	code := generateCode(t, threeVersions())

	assert.Contains(t, code, "func StepByStep(from1To2 func(context.Context, *sqlstep.Migrator, *V2Schema) error, from2To3 func(context.Context, *sqlstep.Migrator, *V3Schema) error) sqlstep.Steps")
	assert.Contains(t, code, "MigrationSteps(from1To2, from2To3)")
	assert.Contains(t, code, "From: 1")
	assert.Contains(t, code, "To:   3")
}

func TestDispatch_OrdinalsKeepInt64Range(t *testing.T) {
	big := int64(1) << 33
	code := generateCode(t, []*schema.Version{
		{Version: big, Schema: []schema.Element{table("tableA", col("colX", "col_x", schema.TypeInteger))}},
		{Version: big + 1, Schema: []schema.Element{table("tableA", col("colX", "col_x", schema.TypeInteger))}},
	})

	assert.Contains(t, code, "case 8589934592:")
	assert.Contains(t, code, "return 8589934593, nil")
	assert.Contains(t, code, "func (s *V8589934593Schema) Version() int64")
	assert.Contains(t, code, "From: 8589934592")
	assert.Contains(t, code, "To:   8589934593")
}

func TestDispatch_SwitchesOverCurrentVersion(t *testing.T) {
	code := generateCode(t, threeVersions())
	assert.Contains(t, code, "switch current {")
	assert.Contains(t, code, "func(ctx context.Context, current int64, db sqlstep.Execer) (int64, error)")
}
