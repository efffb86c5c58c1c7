package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeLabel(t *testing.T) {
	tests := []struct {
		name     string
		existing Label
		incoming Label
		want     Label
	}{
		{
			name:     "empty existing takes incoming",
			incoming: Label{Value: "collaborative", Source: "recall"},
			want:     Label{Value: "collaborative", Source: "recall"},
		},
		{
			name:     "empty incoming keeps existing",
			existing: Label{Value: "collaborative", Source: "recall"},
			want:     Label{Value: "collaborative", Source: "recall"},
		},
		{
			name:     "values and sources accumulate",
			existing: Label{Value: "collaborative", Source: "recall"},
			incoming: Label{Value: "price", Source: "filter"},
			want:     Label{Value: "collaborative|price", Source: "recall,filter"},
		},
		{
			name:     "missing source falls back",
			existing: Label{Value: "a"},
			incoming: Label{Value: "b", Source: "filter"},
			want:     Label{Value: "a|b", Source: "filter"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeLabel(tt.existing, tt.incoming))
		})
	}
}
