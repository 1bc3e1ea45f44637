package auction

import (
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestDefaultIncrementSchedule_Valid(t *testing.T) {
	check.NoError(t, DefaultIncrementSchedule().Validate())
}

func TestIncrementSchedule_StepAtTierBoundaries(t *testing.T) {
	s := DefaultIncrementSchedule()

	check.True(t, s.StepAt(cr("0.5")).Equal(cr("0.05")))
	check.True(t, s.StepAt(cr("1")).Equal(cr("0.05")))
	check.True(t, s.StepAt(cr("1.05")).Equal(cr("0.1")))
	check.True(t, s.StepAt(cr("3")).Equal(cr("0.1")))
	check.True(t, s.StepAt(cr("7")).Equal(cr("0.2")))
	check.True(t, s.StepAt(cr("10")).Equal(cr("0.2")))
	check.True(t, s.StepAt(cr("15")).Equal(cr("0.5")))
}

func TestIncrementSchedule_Next(t *testing.T) {
	s := DefaultIncrementSchedule()

	check.True(t, s.Next(cr("0.5")).Equal(cr("0.55")))
	check.True(t, s.Next(cr("1")).Equal(cr("1.05")))
	check.True(t, s.Next(cr("2")).Equal(cr("2.1")))
	check.True(t, s.Next(cr("10")).Equal(cr("10.2")))
	check.True(t, s.Next(cr("15")).Equal(cr("15.5")))
}

func TestIncrementSchedule_ValidateRejectsBadTables(t *testing.T) {
	check.Error(t, IncrementSchedule{}.Validate())

	check.Error(t, IncrementSchedule{
		{UpTo: cr("1"), Step: cr("0")},
		{Step: cr("0.5")},
	}.Validate())

	// Bounds must ascend.
	check.Error(t, IncrementSchedule{
		{UpTo: cr("3"), Step: cr("0.1")},
		{UpTo: cr("1"), Step: cr("0.05")},
		{Step: cr("0.5")},
	}.Validate())

	// Only the last tier may be open-ended.
	check.Error(t, IncrementSchedule{
		{Step: cr("0.5")},
		{UpTo: cr("1"), Step: cr("0.05")},
	}.Validate())

	check.Error(t, IncrementSchedule{
		{UpTo: cr("1"), Step: cr("0.05")},
		{UpTo: cr("3"), Step: cr("0.1")},
	}.Validate())
}
