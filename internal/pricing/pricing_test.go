package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBands(t *testing.T) {
	tests := []struct {
		partySize int
		wantID    string
		wantPrice int64
	}{
		{1, "standard", 1000},
		{2, "standard", 1000},
		{3, "standard", 1000},
		{4, "standard", 1000},
		{5, "group", 2000},
		{6, "group", 2000},
		{7, "group", 2000},
		{8, "group", 2000},
		{9, "large-group", 3000},
		{10, "large-group", 3000},
		{11, "large-group", 3000},
		{12, "large-group", 3000},
	}

	for _, tt := range tests {
		plan, err := Resolve(tt.partySize)
		require.NoError(t, err, "party size %d", tt.partySize)
		assert.Equal(t, tt.wantID, plan.ID, "party size %d", tt.partySize)
		assert.Equal(t, tt.wantPrice, plan.Price, "party size %d", tt.partySize)
	}
}

func TestResolveBandBoundaries(t *testing.T) {
	// Each boundary crossing must flip the plan exactly at the edge
	lower, err := Resolve(4)
	require.NoError(t, err)
	upper, err := Resolve(5)
	require.NoError(t, err)
	assert.NotEqual(t, lower.ID, upper.ID)

	lower, err = Resolve(8)
	require.NoError(t, err)
	upper, err = Resolve(9)
	require.NoError(t, err)
	assert.NotEqual(t, lower.ID, upper.ID)
}

func TestResolveAboveAutomatedCap(t *testing.T) {
	for _, size := range []int{13, 14, 20, 100} {
		plan, err := Resolve(size)
		assert.Nil(t, plan, "party size %d", size)
		assert.ErrorIs(t, err, ErrNoPlan, "party size %d", size)
	}
}

func TestResolveInvalidPartySize(t *testing.T) {
	for _, size := range []int{0, -1, -5} {
		plan, err := Resolve(size)
		assert.Nil(t, plan, "party size %d", size)
		assert.ErrorIs(t, err, ErrInvalidPartySize, "party size %d", size)
	}
}

func TestPlansCoverAutomatedRange(t *testing.T) {
	// Bands must be disjoint and exhaustive over [1, MaxAutomatedPartySize]
	seen := make(map[int]string)
	for _, plan := range Plans() {
		for size := plan.MinParty; size <= plan.MaxParty; size++ {
			_, dup := seen[size]
			assert.False(t, dup, "party size %d covered twice", size)
			seen[size] = plan.ID
		}
	}
	for size := 1; size <= MaxAutomatedPartySize; size++ {
		assert.Contains(t, seen, size)
	}
}

func TestPlansReturnsCopy(t *testing.T) {
	first := Plans()
	first[0].Price = 999999

	second := Plans()
	assert.Equal(t, int64(1000), second[0].Price)
}
