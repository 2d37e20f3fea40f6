package database

import (
	"testing"

	"meridian-schools/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func due(id string, balance float64) models.StudentFeeDue {
	return models.StudentFeeDue{ID: id, BalanceAmount: balance}
}

func TestPlanWaterfallOldestFirst(t *testing.T) {
	// June $50, July $30, paying $60: June fully paid, July partially.
	dues := []models.StudentFeeDue{due("june", 50), due("july", 30)}

	plan, unallocated := PlanWaterfall(dues, 60)

	require.Len(t, plan, 2)
	assert.Equal(t, PlannedAllocation{DueID: "june", Amount: 50}, plan[0])
	assert.Equal(t, PlannedAllocation{DueID: "july", Amount: 10}, plan[1])
	assert.Equal(t, 0.0, unallocated)
}

func TestPlanWaterfallSurplus(t *testing.T) {
	dues := []models.StudentFeeDue{due("june", 50), due("july", 30)}

	plan, unallocated := PlanWaterfall(dues, 1000)

	require.Len(t, plan, 2)
	assert.Equal(t, 50.0, plan[0].Amount)
	assert.Equal(t, 30.0, plan[1].Amount)
	assert.Equal(t, 920.0, unallocated)
}

func TestPlanWaterfallStopsWhenExhausted(t *testing.T) {
	dues := []models.StudentFeeDue{due("a", 40), due("b", 40), due("c", 40)}

	plan, unallocated := PlanWaterfall(dues, 40)

	require.Len(t, plan, 1)
	assert.Equal(t, "a", plan[0].DueID)
	assert.Equal(t, 0.0, unallocated)
}

func TestPlanWaterfallSkipsZeroBalances(t *testing.T) {
	dues := []models.StudentFeeDue{due("a", 0), due("b", 25)}

	plan, unallocated := PlanWaterfall(dues, 25)

	require.Len(t, plan, 1)
	assert.Equal(t, "b", plan[0].DueID)
	assert.Equal(t, 0.0, unallocated)
}

func TestPlanWaterfallNoDues(t *testing.T) {
	plan, unallocated := PlanWaterfall(nil, 100)

	assert.Empty(t, plan)
	assert.Equal(t, 100.0, unallocated)
}

func TestPlanManualValid(t *testing.T) {
	dues := []models.StudentFeeDue{due("june", 50), due("july", 30)}
	reqs := []ManualAllocation{
		{DueID: "july", Amount: 20},
		{DueID: "june", Amount: 50},
	}

	plan, unallocated, err := PlanManual(dues, reqs, 100)

	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, "july", plan[0].DueID)
	assert.Equal(t, 30.0, unallocated)
}

func TestPlanManualUnknownDueRejectsWholePayment(t *testing.T) {
	dues := []models.StudentFeeDue{due("june", 50)}
	reqs := []ManualAllocation{{DueID: "stranger", Amount: 10}}

	_, _, err := PlanManual(dues, reqs, 100)

	assert.ErrorIs(t, err, ErrInvalidAllocation)
}

func TestPlanManualOverBalanceRejected(t *testing.T) {
	// $100 against a $50 balance must reject the entire payment.
	dues := []models.StudentFeeDue{due("june", 50)}
	reqs := []ManualAllocation{{DueID: "june", Amount: 100}}

	_, _, err := PlanManual(dues, reqs, 200)

	assert.ErrorIs(t, err, ErrInvalidAllocation)
}

func TestPlanManualWithinRoundingTolerance(t *testing.T) {
	dues := []models.StudentFeeDue{due("june", 50)}
	reqs := []ManualAllocation{{DueID: "june", Amount: 50.005}}

	_, _, err := PlanManual(dues, reqs, 50.01)

	assert.NoError(t, err)
}

func TestPlanManualOvercommitRejected(t *testing.T) {
	dues := []models.StudentFeeDue{due("june", 50), due("july", 30)}
	reqs := []ManualAllocation{
		{DueID: "june", Amount: 50},
		{DueID: "july", Amount: 30},
	}

	_, _, err := PlanManual(dues, reqs, 70)

	assert.ErrorIs(t, err, ErrInvalidAllocation)
}

func TestPlanManualNonPositiveAmountRejected(t *testing.T) {
	dues := []models.StudentFeeDue{due("june", 50)}
	reqs := []ManualAllocation{{DueID: "june", Amount: 0}}

	_, _, err := PlanManual(dues, reqs, 100)

	assert.ErrorIs(t, err, ErrInvalidAllocation)
}
