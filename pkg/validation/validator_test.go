package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/dinekit/core"
)

func TestUserID(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		wantErr error
	}{
		{name: "valid 22 chars", userID: strings.Repeat("a", 22)},
		{name: "empty", userID: "", wantErr: core.ErrNoUserID},
		{name: "21 chars", userID: strings.Repeat("a", 21), wantErr: core.ErrInvalidUserID},
		{name: "23 chars", userID: strings.Repeat("a", 23), wantErr: core.ErrInvalidUserID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := UserID(tt.userID)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, core.IsInvalidInput(err))
		})
	}
}

func TestStruct_Criteria(t *testing.T) {
	require.NoError(t, Struct(&core.Criteria{City: "Las Vegas", MaxDistance: 10}))

	err := Struct(&core.Criteria{MaxDistance: -1})
	require.Error(t, err)
	assert.True(t, core.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "MaxDistance")
}
