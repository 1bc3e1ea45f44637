package auction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BidEventKind classifies one entry in the bid log.
type BidEventKind string

const (
	BidRaise    BidEventKind = "raise"
	BidWithdraw BidEventKind = "withdraw"
	// BidNoBids marks a lot that opened with no eligible bidders.
	BidNoBids BidEventKind = "no_bids"
)

// BidEvent is one immutable entry in the auction log.
type BidEvent struct {
	ID       string          `json:"id"`
	Seq      int             `json:"seq"`
	PlayerID string          `json:"player_id"`
	TeamID   string          `json:"team_id,omitempty"`
	Kind     BidEventKind    `json:"kind"`
	Amount   decimal.Decimal `json:"amount"`
	Round    int             `json:"round"`
	At       time.Time       `json:"at"`
}

// Outcome records how a single player's lot ended.
type Outcome struct {
	PlayerID    string          `json:"player_id"`
	PlayerName  string          `json:"player_name"`
	Role        Role            `json:"role"`
	Nationality Nationality     `json:"nationality"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Status      PlayerStatus    `json:"status"`
	FinalPrice  decimal.Decimal `json:"final_price"`
	TeamID      string          `json:"team_id,omitempty"`
	Rounds      int             `json:"rounds"`
	Bids        int             `json:"bids"`
	Reason      string          `json:"reason,omitempty"`
	At          time.Time       `json:"at"`
}

// History is the append-only auction log. Entries never mutate once appended;
// every query returns copies. Only the engine writes to it.
type History struct {
	events   []BidEvent
	outcomes []Outcome
	seq      int
	now      func() time.Time
}

func NewHistory() *History {
	return &History{now: time.Now}
}

func (h *History) recordEvent(playerID, teamID string, kind BidEventKind, amount decimal.Decimal, round int) BidEvent {
	h.seq++
	ev := BidEvent{
		ID:       uuid.NewString(),
		Seq:      h.seq,
		PlayerID: playerID,
		TeamID:   teamID,
		Kind:     kind,
		Amount:   amount,
		Round:    round,
		At:       h.now(),
	}
	h.events = append(h.events, ev)
	return ev
}

func (h *History) recordOutcome(o Outcome) Outcome {
	o.At = h.now()
	h.outcomes = append(h.outcomes, o)
	return o
}

// Events returns every bid event in append order.
func (h *History) Events() []BidEvent {
	return append([]BidEvent(nil), h.events...)
}

// Outcomes returns every per-player outcome in resolution order.
func (h *History) Outcomes() []Outcome {
	return append([]Outcome(nil), h.outcomes...)
}

// EventsByPlayer returns the bid log for one lot.
func (h *History) EventsByPlayer(playerID string) []BidEvent {
	var out []BidEvent
	for _, ev := range h.events {
		if ev.PlayerID == playerID {
			out = append(out, ev)
		}
	}
	return out
}

// EventsByTeam returns every bid event a team took part in.
func (h *History) EventsByTeam(teamID string) []BidEvent {
	var out []BidEvent
	for _, ev := range h.events {
		if ev.TeamID == teamID {
			out = append(out, ev)
		}
	}
	return out
}

// OutcomesByTeam returns the players a team won.
func (h *History) OutcomesByTeam(teamID string) []Outcome {
	var out []Outcome
	for _, o := range h.outcomes {
		if o.TeamID == teamID {
			out = append(out, o)
		}
	}
	return out
}

// OutcomesByRole filters outcomes by player role.
func (h *History) OutcomesByRole(role Role) []Outcome {
	var out []Outcome
	for _, o := range h.outcomes {
		if o.Role == role {
			out = append(out, o)
		}
	}
	return out
}

// OutcomesByPriceRange returns sold outcomes with a final price in [lo, hi].
// A zero hi leaves the range unbounded above.
func (h *History) OutcomesByPriceRange(lo, hi decimal.Decimal) []Outcome {
	var out []Outcome
	for _, o := range h.outcomes {
		if o.Status != StatusSold {
			continue
		}
		if o.FinalPrice.LessThan(lo) {
			continue
		}
		if !hi.IsZero() && o.FinalPrice.GreaterThan(hi) {
			continue
		}
		out = append(out, o)
	}
	return out
}
