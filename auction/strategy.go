package auction

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Action is a strategy's answer when offered the chance to bid.
type Action string

const (
	ActionPass  Action = "pass"
	ActionRaise Action = "raise"
)

// Decision is the output of one strategy call.
type Decision struct {
	Action Action
	Amount decimal.Decimal
}

// Pass declines to bid, permanently leaving the lot.
func Pass() Decision { return Decision{Action: ActionPass} }

// Raise bids amount, which must be at least the asking price.
func Raise(amount decimal.Decimal) Decision {
	return Decision{Action: ActionRaise, Amount: amount}
}

// BidState describes the lot as a strategy sees it in one round.
type BidState struct {
	Round      int
	HighBid    decimal.Decimal // zero until the first raise
	HighBidder string          // empty until the first raise
	AskPrice   decimal.Decimal // minimum admissible raise this turn
}

// Strategy decides whether a team raises or passes on the current lot.
// Implementations must be pure: the same inputs always produce the same
// decision, so a seeded run replays identically. A strategy must verify a
// raise with TeamSnapshot.CanBid before making it; the engine forces an
// invalid raise into a pass.
type Strategy interface {
	Decide(p *Player, bid BidState, team TeamSnapshot) Decision
}

// StrategyParams tune the stock valuation strategy per franchise. All values
// are in [0, 1] except MaxPurseShare, which is a fraction in (0, 1].
type StrategyParams struct {
	RiskAppetite  float64 `json:"risk_appetite"`  // appetite for stretching past fair value
	NeedWeight    float64 `json:"need_weight"`    // how hard positional gaps pull the valuation up
	StarPremium   float64 `json:"star_premium"`   // extra spend on heavily capped internationals
	DomesticFocus float64 `json:"domestic_focus"` // preference for domestic players
	YouthFocus    float64 `json:"youth_focus"`    // preference for players aged 25 and under
	MaxPurseShare float64 `json:"max_purse_share"`
}

// DefaultStrategyParams gives a balanced franchise profile.
func DefaultStrategyParams() StrategyParams {
	return StrategyParams{
		RiskAppetite:  0.5,
		NeedWeight:    0.5,
		StarPremium:   0.5,
		DomesticFocus: 0.3,
		YouthFocus:    0.3,
		MaxPurseShare: 0.4,
	}
}

// ValuationStrategy prices a player from their record and the team's current
// needs, then raises while the asking price stays under that valuation. The
// valuation jitter is derived from a seed hash, so a run is reproducible for
// a given seed.
type ValuationStrategy struct {
	teamID string
	params StrategyParams
	seed   uint64
}

func NewValuationStrategy(teamID string, params StrategyParams, seed uint64) *ValuationStrategy {
	if params.MaxPurseShare <= 0 || params.MaxPurseShare > 1 {
		params.MaxPurseShare = 0.4
	}
	return &ValuationStrategy{teamID: teamID, params: params, seed: seed}
}

// Decide raises at the asking price while it stays within both the team's
// constraints and the strategy's valuation of the player.
func (s *ValuationStrategy) Decide(p *Player, bid BidState, team TeamSnapshot) Decision {
	ask := bid.AskPrice
	if !team.CanBid(p, ask) {
		return Pass()
	}
	if ask.GreaterThan(s.MaxBid(p, team)) {
		return Pass()
	}
	return Raise(ask)
}

// MaxBid is the ceiling the team will pay for the player, in Crores.
// Deterministic for a given seed, team and player.
func (s *ValuationStrategy) MaxBid(p *Player, team TeamSnapshot) decimal.Decimal {
	value := p.BasePrice.InexactFloat64()

	// IPL track record.
	if p.InLastSeason {
		value *= 1.5
	}
	switch {
	case p.IPLMatches > 100:
		value *= 1.5
	case p.IPLMatches > 50:
		value *= 1.3
	}

	// International pedigree, weighted by the team's star premium.
	caps := 1.0
	switch {
	case p.IntlCaps > 100:
		caps = 1.8
	case p.IntlCaps > 50:
		caps = 1.5
	case p.IntlCaps > 20:
		caps = 1.3
	}
	value *= 1 + (caps-1)*(0.5+s.params.StarPremium)

	// Positional urgency: unmet role minimums pull the valuation up.
	urgency := 1.0
	if need, ok := team.Rules.RoleMin[p.Role]; ok {
		switch have := team.RoleCount[p.Role]; {
		case have < need:
			urgency = 2.0
		case have == need:
			urgency = 1.5
		}
	}
	value *= 1 + (urgency-1)*(0.5+s.params.NeedWeight)

	if p.Overseas() {
		value *= 1.3
	} else {
		value *= 1 + 0.2*s.params.DomesticFocus
	}
	if p.Age > 0 && p.Age <= 25 {
		value *= 1 + 0.2*s.params.YouthFocus
	}

	// Deeper purses bid harder.
	switch purse := team.BudgetRemaining.InexactFloat64(); {
	case purse > 30:
		value *= 1.4
	case purse > 20:
		value *= 1.2
	}

	value *= s.jitter(p.ID)

	// Floors for proven internationals and keepers.
	if p.IntlCaps > 50 && value < 4 {
		value = 4
	}
	if p.Role == RoleWicketKeeper && value < 2 {
		value = 2
	}

	ceiling := decimal.NewFromFloat(value).Round(2)
	purseCap := team.BudgetRemaining.Mul(decimal.NewFromFloat(s.params.MaxPurseShare)).Round(2)
	if ceiling.GreaterThan(purseCap) {
		ceiling = purseCap
	}
	return ceiling
}

// jitter derives a stable multiplier in [0.85, 1.15] from
// SHA256(seed + "|" + team + "|" + player), stretched upward for risk-hungry
// teams.
func (s *ValuationStrategy) jitter(playerID string) float64 {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%s|%s", s.seed, s.teamID, playerID)))
	u := float64(binary.BigEndian.Uint64(sum[:8])) / float64(math.MaxUint64)
	j := 0.85 + 0.30*u
	if s.params.RiskAppetite > 0.7 {
		u2 := float64(binary.BigEndian.Uint64(sum[8:16])) / float64(math.MaxUint64)
		j *= 1 + 0.3*u2
	}
	return j
}
