package auction

import (
	"testing"

	"github.com/peterldowns/testy/check"
)

// mockRandSource provides a deterministic random source for testing
type mockRandSource struct {
	sequence []int
	index    int
}

func (m *mockRandSource) Intn(n int) int {
	if m.index >= len(m.sequence) {
		return 0
	}
	val := m.sequence[m.index] % n
	m.index++
	return val
}

func soldOutcome(playerID, teamID, price string) Outcome {
	return Outcome{
		PlayerID:   playerID,
		PlayerName: playerID,
		Status:     StatusSold,
		FinalPrice: cr(price),
		TeamID:     teamID,
	}
}

func TestRankPurchases_OrdersByTopBuy(t *testing.T) {
	outcomes := []Outcome{
		soldOutcome("p1", "MI", "8"),
		soldOutcome("p2", "CSK", "12"),
		soldOutcome("p3", "MI", "15"),
		soldOutcome("p4", "RCB", "6"),
	}

	result := RankPurchases(outcomes, nil)

	check.Equal(t, []string{"MI", "CSK", "RCB"}, result.SortedTeams)
	check.Equal(t, 1, result.Ranks["MI"])
	check.Equal(t, 2, result.Ranks["CSK"])
	check.Equal(t, 3, result.Ranks["RCB"])
	check.Equal(t, "p3", result.TopPurchase["MI"].PlayerID)
	check.Equal(t, "p2", result.TopPurchase["CSK"].PlayerID)
}

func TestRankPurchases_IgnoresUnsold(t *testing.T) {
	outcomes := []Outcome{
		{PlayerID: "p1", Status: StatusUnsold},
		soldOutcome("p2", "MI", "4"),
		{PlayerID: "p3", Status: StatusUnsold},
	}

	result := RankPurchases(outcomes, nil)

	check.Equal(t, 1, len(result.SortedTeams))
	check.Equal(t, "MI", result.SortedTeams[0])
}

func TestRankPurchases_Empty(t *testing.T) {
	result := RankPurchases(nil, nil)

	check.NotNil(t, result)
	check.Equal(t, 0, len(result.SortedTeams))
	check.Equal(t, 0, len(result.Ranks))
	check.Equal(t, 0, len(result.TopPurchase))
}

func TestRankPurchases_TwoWayTie(t *testing.T) {
	outcomes := []Outcome{
		soldOutcome("p1", "MI", "10"),
		soldOutcome("p2", "CSK", "10"),
		soldOutcome("p3", "RCB", "4"),
	}

	mock1 := &mockRandSource{sequence: []int{0}}
	result1 := RankPurchases(outcomes, mock1)
	check.Equal(t, []string{"CSK", "MI", "RCB"}, result1.SortedTeams)

	mock2 := &mockRandSource{sequence: []int{1}}
	result2 := RankPurchases(outcomes, mock2)
	check.Equal(t, []string{"MI", "CSK", "RCB"}, result2.SortedTeams)
}

func TestRankPurchases_MultipleTieLevels(t *testing.T) {
	outcomes := []Outcome{
		soldOutcome("p1", "MI", "10"),
		soldOutcome("p2", "CSK", "10"),
		soldOutcome("p3", "RCB", "6"),
		soldOutcome("p4", "KKR", "6"),
		soldOutcome("p5", "DC", "3"),
	}

	mock := &mockRandSource{sequence: []int{0, 1}}
	result := RankPurchases(outcomes, mock)

	check.Equal(t, 5, len(result.SortedTeams))
	check.Equal(t, []string{"CSK", "MI", "RCB", "KKR", "DC"}, result.SortedTeams)
	for rank, teamID := range result.SortedTeams {
		check.Equal(t, rank+1, result.Ranks[teamID])
	}
}

func TestRankPurchases_PreservesHighestPerTeam(t *testing.T) {
	outcomes := []Outcome{
		soldOutcome("early", "MI", "12"),
		soldOutcome("later", "MI", "5"),
	}

	result := RankPurchases(outcomes, nil)
	check.Equal(t, "early", result.TopPurchase["MI"].PlayerID)
	check.True(t, result.TopPurchase["MI"].FinalPrice.Equal(cr("12")))
}
