package auction

import "github.com/shopspring/decimal"

// Snapshot is a read-only view of the whole auction for the presentation and
// reporting layers. Nothing in it aliases engine state.
type Snapshot struct {
	Phase     Phase          `json:"phase"`
	Lot       *LotSnapshot   `json:"lot,omitempty"`
	Teams     []TeamSnapshot `json:"teams"`
	Sold      int            `json:"sold"`
	Unsold    int            `json:"unsold"`
	Remaining int            `json:"remaining"`
}

// LotSnapshot is the player currently under the hammer.
type LotSnapshot struct {
	Player     Player          `json:"player"`
	Round      int             `json:"round"`
	HighBid    decimal.Decimal `json:"high_bid"`
	HighBidder string          `json:"high_bidder,omitempty"`
	Active     []string        `json:"active_teams"`
}

// Snapshot captures the current auction state.
func (a *Auction) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:     a.phase,
		Teams:     a.Teams(),
		Remaining: a.pool.Remaining(),
	}
	for _, o := range a.history.Outcomes() {
		if o.Status == StatusSold {
			snap.Sold++
		} else {
			snap.Unsold++
		}
	}
	if a.current != nil {
		snap.Lot = &LotSnapshot{
			Player:     a.current.player,
			Round:      a.current.round,
			HighBid:    a.current.highBid,
			HighBidder: a.current.highBidder,
			Active:     append([]string(nil), a.current.active...),
		}
	}
	return snap
}
