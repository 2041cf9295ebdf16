package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellora-backend/models"
)

func TestOwnerClauseScopesByCustomer(t *testing.T) {
	clause, arg, err := ownerClause(models.CartOwner{CustomerID: 7}, 1)
	require.NoError(t, err)
	assert.Equal(t, "customer_id = $1", clause)
	assert.Equal(t, int64(7), arg)
}

func TestOwnerClauseScopesBySessionKey(t *testing.T) {
	clause, arg, err := ownerClause(models.CartOwner{SessionKey: "guest-123"}, 2)
	require.NoError(t, err)
	assert.Equal(t, "session_key = $2", clause)
	assert.Equal(t, "guest-123", arg)
}

func TestOwnerClausePrefersCustomerOverSession(t *testing.T) {
	clause, arg, err := ownerClause(models.CartOwner{CustomerID: 7, SessionKey: "guest-123"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "customer_id = $1", clause)
	assert.Equal(t, int64(7), arg)
}

func TestOwnerClauseRejectsMissingIdentity(t *testing.T) {
	_, _, err := ownerClause(models.CartOwner{}, 1)
	assert.ErrorIs(t, err, ErrNoCartOwner)
}
