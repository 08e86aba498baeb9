package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetAllDeliveriesQuery_Valid(t *testing.T) {
	query := queries.NewGetAllDeliveriesQuery()
	require.NoError(t, query.Validate())
}

func TestGetAllDeliveriesQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetAllDeliveriesQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetAllDeliveriesQueryIsNotConstructed)
}
