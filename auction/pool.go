package auction

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Pool is the stable-ordered catalog of auctionable players. The source
// records are immutable; Reset re-derives the live state from them, so a pool
// can be restarted any number of times.
type Pool struct {
	source   []Player
	setOrder []string

	live    []Player
	players map[string]*Player
	order   []string
	cursor  int
}

// NewPool builds a pool from the given players. When setOrder is non-empty,
// players are grouped by their set code in that order (unknown sets last);
// within a group the order is base-price-descending, then IPL experience,
// then declared order.
func NewPool(players []Player, setOrder []string) (*Pool, error) {
	p := &Pool{
		source:   make([]Player, len(players)),
		setOrder: append([]string(nil), setOrder...),
	}
	copy(p.source, players)

	seen := make(map[string]bool, len(p.source))
	for i := range p.source {
		pl := &p.source[i]
		if pl.ID == "" {
			return nil, fmt.Errorf("player %q has no id", pl.Name)
		}
		if seen[pl.ID] {
			return nil, fmt.Errorf("duplicate player id %s", pl.ID)
		}
		seen[pl.ID] = true
		if pl.BasePrice.IsNegative() {
			return nil, fmt.Errorf("player %s has negative base price %s", pl.ID, pl.BasePrice)
		}
		pl.Status = StatusUnsold
		pl.SoldPrice = decimal.Zero
		pl.SoldTo = ""
		pl.resolved = false
	}

	p.rebuild()
	return p, nil
}

func (p *Pool) rebuild() {
	p.live = make([]Player, len(p.source))
	copy(p.live, p.source)

	setRank := func(set string) int {
		for i, s := range p.setOrder {
			if s == set {
				return i
			}
		}
		return len(p.setOrder)
	}

	idx := make([]int, len(p.live))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		pa, pb := &p.live[idx[a]], &p.live[idx[b]]
		ra, rb := setRank(pa.Set), setRank(pb.Set)
		if ra != rb {
			return ra < rb
		}
		if !pa.BasePrice.Equal(pb.BasePrice) {
			return pa.BasePrice.GreaterThan(pb.BasePrice)
		}
		return pa.IPLMatches > pb.IPLMatches
	})

	p.players = make(map[string]*Player, len(p.live))
	p.order = make([]string, len(p.live))
	for i, j := range idx {
		p.order[i] = p.live[j].ID
		p.players[p.live[j].ID] = &p.live[j]
	}
	p.cursor = 0
}

// NextUnsold returns a copy of the next player awaiting a bidding round. The
// same player is returned until an outcome is marked for it. Returns
// ErrEmptyPool once every player has been resolved.
func (p *Pool) NextUnsold() (*Player, error) {
	for p.cursor < len(p.order) {
		pl := p.players[p.order[p.cursor]]
		if !pl.resolved {
			out := *pl
			return &out, nil
		}
		p.cursor++
	}
	return nil, ErrEmptyPool
}

// MarkOutcome records the terminal state of a player's lot. A second call for
// the same player fails with ErrAlreadySold and leaves the first outcome
// unchanged.
func (p *Pool) MarkOutcome(playerID string, status PlayerStatus, price decimal.Decimal, teamID string) error {
	pl, ok := p.players[playerID]
	if !ok {
		return fmt.Errorf("mark outcome: unknown player %s", playerID)
	}
	if pl.resolved {
		return fmt.Errorf("mark outcome for %s: %w", playerID, ErrAlreadySold)
	}

	switch status {
	case StatusSold:
		if teamID == "" {
			return fmt.Errorf("mark outcome for %s: sold without a team", playerID)
		}
		if !price.IsPositive() {
			return fmt.Errorf("mark outcome for %s: sold at non-positive price %s", playerID, price)
		}
		pl.Status = StatusSold
		pl.SoldPrice = price
		pl.SoldTo = teamID
	case StatusUnsold:
		pl.Status = StatusUnsold
	default:
		return fmt.Errorf("mark outcome for %s: invalid terminal status %s", playerID, status)
	}
	pl.resolved = true
	return nil
}

// Remaining counts players that have not reached a terminal status yet.
func (p *Pool) Remaining() int {
	n := 0
	for i := range p.live {
		if !p.live[i].resolved {
			n++
		}
	}
	return n
}

// Get returns a copy of a player by id.
func (p *Pool) Get(playerID string) (Player, bool) {
	pl, ok := p.players[playerID]
	if !ok {
		return Player{}, false
	}
	return *pl, true
}

// Players returns copies of every player in auction order.
func (p *Pool) Players() []Player {
	out := make([]Player, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, *p.players[id])
	}
	return out
}

// Reset restores the pool to its initial state from the immutable source
// records.
func (p *Pool) Reset() { p.rebuild() }
