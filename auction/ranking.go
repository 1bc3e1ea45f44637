package auction

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sort"
)

// RandSource provides random number generation for tie-breaking.
// This interface enables dependency injection for deterministic testing.
type RandSource interface {
	// Intn returns a random integer in [0, n). Panics if n <= 0.
	Intn(n int) int
}

// cryptoRandSource wraps crypto/rand for production use
type cryptoRandSource struct{}

// Intn returns a cryptographically secure random integer in [0, n).
// Panics if n <= 0 (programmer error).
func (cryptoRandSource) Intn(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("cryptoRandSource.Intn: n must be positive, got %d", n))
	}
	// rand.Int does not error when using rand.Reader
	// https://pkg.go.dev/crypto/rand#Int
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(nBig.Int64())
}

// defaultRandSource provides a cryptographically secure random source for production
var defaultRandSource RandSource = cryptoRandSource{}

// PurchaseRanking lists teams by their costliest auction buy, for the
// reporting layer's "top buys" views.
type PurchaseRanking struct {
	Ranks       map[string]int      `json:"ranks"`
	TopPurchase map[string]*Outcome `json:"top_purchases"`
	SortedTeams []string            `json:"sorted_teams"`
}

// RankPurchases ranks each team's most expensive sold outcome, highest price
// first, preserving first-occurrence order before sorting. Teams whose top
// buys tie on price are shuffled within the tie group using randSource
// (crypto/rand when nil).
func RankPurchases(outcomes []Outcome, randSource RandSource) *PurchaseRanking {
	type entry struct {
		teamID  string
		outcome *Outcome
	}

	// Find the costliest purchase per team while preserving order of first
	// occurrence.
	topByTeam := make(map[string]*Outcome)
	teamOrder := make([]string, 0, len(outcomes))
	for i := range outcomes {
		o := &outcomes[i]
		if o.Status != StatusSold || o.TeamID == "" {
			continue
		}
		existing, seen := topByTeam[o.TeamID]
		if !seen {
			teamOrder = append(teamOrder, o.TeamID)
		}
		if !seen || o.FinalPrice.GreaterThan(existing.FinalPrice) {
			topByTeam[o.TeamID] = o
		}
	}

	entries := make([]entry, 0, len(teamOrder))
	for _, teamID := range teamOrder {
		entries = append(entries, entry{teamID: teamID, outcome: topByTeam[teamID]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].outcome.FinalPrice.GreaterThan(entries[j].outcome.FinalPrice)
	})

	if randSource == nil {
		randSource = defaultRandSource
	}

	// Break ties randomly: shuffle groups with the same price using
	// Fisher-Yates.
	i := 0
	for i < len(entries) {
		price := entries[i].outcome.FinalPrice
		j := i + 1
		for j < len(entries) && entries[j].outcome.FinalPrice.Equal(price) {
			j++
		}
		if j-i > 1 {
			for k := j - 1; k > i; k-- {
				randIdx := i + randSource.Intn(k-i+1)
				entries[k], entries[randIdx] = entries[randIdx], entries[k]
			}
		}
		i = j
	}

	result := &PurchaseRanking{
		Ranks:       make(map[string]int, len(entries)),
		TopPurchase: make(map[string]*Outcome, len(entries)),
		SortedTeams: make([]string, len(entries)),
	}
	for rank, e := range entries {
		result.Ranks[e.teamID] = rank + 1
		result.TopPurchase[e.teamID] = e.outcome
		result.SortedTeams[rank] = e.teamID
	}
	return result
}
