package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthlyTotal(t *testing.T) {
	// 40000 x 2 meal types x 5 delivery days x 4.3 = 1,720,000
	assert.Equal(t, int64(1720000), MonthlyTotal(40000, 2, 5))
}

func TestMonthlyTotalRoundsFractionalUnits(t *testing.T) {
	// 33 x 1 x 1 x 4.3 = 141.9 -> 142
	assert.Equal(t, int64(142), MonthlyTotal(33, 1, 1))
	// 30 x 1 x 1 x 4.3 = 129 exactly
	assert.Equal(t, int64(129), MonthlyTotal(30, 1, 1))
}

func TestMonthlyTotalSingleSelections(t *testing.T) {
	assert.Equal(t, int64(129000), MonthlyTotal(30000, 1, 1))
}
