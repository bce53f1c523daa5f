package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	t.Run("should accept positive values", func(t *testing.T) {
		id, err := kernel.NewID("orderId", 42)

		require.NoError(t, err)
		assert.Equal(t, int64(42), id.Int64())
		assert.Equal(t, "42", id.String())
		require.NoError(t, id.Validate())
	})

	t.Run("should reject zero and negative values", func(t *testing.T) {
		for _, raw := range []int64{0, -1, -999} {
			_, err := kernel.NewID("orderId", raw)

			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			assert.Contains(t, err.Error(), "orderId")
		}
	})
}

func TestParseID(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    kernel.ID
		wantErr error
	}{
		{name: "plain", input: "15", want: 15},
		{name: "surrounding spaces", input: " 15 ", want: 15},
		{name: "not a number", input: "abc", wantErr: errs.ErrValueIsInvalid},
		{name: "empty", input: "", wantErr: errs.ErrValueIsInvalid},
		{name: "fraction", input: "1.5", wantErr: errs.ErrValueIsInvalid},
		{name: "zero", input: "0", wantErr: errs.ErrValueIsOutOfRange},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := kernel.ParseID("id", tc.input)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, id)
		})
	}
}

func TestID_IsZero(t *testing.T) {
	var id kernel.ID

	assert.True(t, id.IsZero())
	require.Error(t, id.Validate())
}
