package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yasinhessnawi1/voidnest-bridge/internal/utils"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is a long sentence", 10, "this is..."},
		{"abcdef", 2, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.TruncateString(tt.input, tt.maxLen))
		})
	}
}

func TestContainsAny(t *testing.T) {
	keywords := []string{"eco", "account"}
	assert.True(t, utils.ContainsAny("xconomy_accounts", keywords))
	assert.True(t, utils.ContainsAny("eco_data", keywords))
	assert.False(t, utils.ContainsAny("chunks", keywords))
	assert.False(t, utils.ContainsAny("anything", nil))
}

func TestLookupFold(t *testing.T) {
	row := map[string]interface{}{
		"PlayerName": "Steve",
		"Balance":    []byte("10.50"),
		"balance":    "exact",
	}

	v, ok := utils.LookupFold(row, "playername")
	assert.True(t, ok)
	assert.Equal(t, "Steve", v)

	v, ok = utils.LookupFold(row, "balance")
	assert.True(t, ok)
	assert.Equal(t, "exact", v, "exact key wins")

	_, ok = utils.LookupFold(row, "uuid")
	assert.False(t, ok)
}

func TestLowerAll(t *testing.T) {
	assert.Equal(t, []string{"username", "money"}, utils.LowerAll([]string{"UserName", "MONEY"}))
	assert.Empty(t, utils.LowerAll(nil))
}
