package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetDeliveriesByUserQuery_Valid(t *testing.T) {
	query, err := queries.NewGetDeliveriesByUserQuery(kernel.ID(7))
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, kernel.ID(7), query.UserID())
}

func TestNewGetDeliveriesByUserQuery_InvalidID(t *testing.T) {
	_, err := queries.NewGetDeliveriesByUserQuery(kernel.ID(-1))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetDeliveriesByUserQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetDeliveriesByUserQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetDeliveriesByUserQueryIsNotConstructed)
}
