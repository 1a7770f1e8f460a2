package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ChainID_Known(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		give ChainID
		want bool
	}{
		{name: "polygon mainnet", give: ChainPolygon, want: true},
		{name: "mumbai testnet", give: ChainMumbai, want: true},
		{name: "unknown chain", give: ChainID(987654321987), want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.give.Known())
		})
	}
}

func Test_ChainID_String(t *testing.T) {
	t.Parallel()

	assert.Contains(t, ChainPolygon.String(), "137")
	assert.Equal(t, "987654321987", ChainID(987654321987).String())
}

func Test_ContainsChainID(t *testing.T) {
	t.Parallel()

	ids := []ChainID{ChainPolygon, ChainMumbai}

	assert.True(t, ContainsChainID(ids, ChainMumbai))
	assert.False(t, ContainsChainID(ids, ChainID(1)))
	assert.False(t, ContainsChainID(nil, ChainPolygon))
}
