package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPascal(t *testing.T) {
	assert.Equal(t, "ColX", pascal("col_x"))
	assert.Equal(t, "UserAccount", pascal("user-account"))
	assert.Equal(t, "ColX", pascal("colX"))
	assert.Equal(t, "Users", pascal("users"))
	assert.Equal(t, "X2faCodes", pascal("2fa_codes"))
	assert.Equal(t, "X42", pascal("42"))
	assert.Equal(t, "", pascal(""))
}

func TestFieldName(t *testing.T) {
	assert.Equal(t, "UsersTable", fieldName("users", "Table"))
	assert.Equal(t, "IdxUsersIdIndex", fieldName("idx_users_id", "Index"))
	assert.Equal(t, "MyViewView", fieldName("my view", "View"))
	assert.Equal(t, "X2faCodesTable", fieldName("2fa_codes", "Table"))
	assert.Equal(t, "UnnamedTrigger", fieldName("", "Trigger"))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "my_view", sanitize("my view"))
	assert.Equal(t, "a_b", sanitize("a..b"))
	assert.Equal(t, "ab_1", sanitize(`"ab-1"`))
}
