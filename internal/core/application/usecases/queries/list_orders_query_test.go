package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListOrdersQuery_Paging(t *testing.T) {
	testCases := []struct {
		name               string
		rawPage, rawLimit  string
		wantPage, wantLimt int
	}{
		{"missing", "", "", 0, 10},
		{"valid", "2", "25", 2, 25},
		{"non-numeric", "abc", "xyz", 0, 10},
		{"negative", "-1", "-5", 0, 10},
		{"zero limit", "0", "0", 0, 10},
		{"limit capped", "1", "1000", 1, 100},
		{"limit at cap", "0", "100", 0, 100},
		{"padded", " 3 ", " 7 ", 3, 7},
		{"page capped", "9223372036854775807", "10", queries.MaxPage, 10},
		{"page beyond int", "99999999999999999999", "10", 0, 10},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := queries.NewListOrdersQuery(tc.rawPage, tc.rawLimit, "", "")

			require.NoError(t, q.Validate())
			assert.Equal(t, tc.wantPage, q.Page())
			assert.Equal(t, tc.wantLimt, q.Limit())
		})
	}
}

func TestNewListOrdersQuery_Filters(t *testing.T) {
	t.Run("parsed filters", func(t *testing.T) {
		q := queries.NewListOrdersQuery("", "", "7", "shipped")

		require.NotNil(t, q.UserID())
		assert.Equal(t, kernel.ID(7), *q.UserID())
		require.NotNil(t, q.Status())
		assert.Equal(t, order.Shipped, *q.Status())
	})

	t.Run("unparsable filters are dropped", func(t *testing.T) {
		q := queries.NewListOrdersQuery("", "", "seven", "LOST")

		assert.Nil(t, q.UserID())
		assert.Nil(t, q.Status())
	})

	t.Run("no filters", func(t *testing.T) {
		q := queries.NewListOrdersQuery("", "", "", "")

		assert.Nil(t, q.UserID())
		assert.Nil(t, q.Status())
	})
}

func TestListOrdersQuery_NotConstructed(t *testing.T) {
	var q queries.ListOrdersQuery
	require.ErrorIs(t, q.Validate(), queries.ErrListOrdersQueryIsNotConstructed)
}
