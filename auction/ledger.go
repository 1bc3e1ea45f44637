package auction

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RosterRules bounds a franchise squad. All monetary values are in Crores.
type RosterRules struct {
	MaxSquadSize  int          `json:"max_squad_size"`
	MinSquadSize  int          `json:"min_squad_size"`
	OverseasLimit int          `json:"overseas_limit"`
	RoleMin       map[Role]int `json:"role_min"`
	RoleMax       map[Role]int `json:"role_max"`

	// MinSlotReserve is the purse held back per unfilled minimum-squad slot,
	// so a team can always finish a legal squad.
	MinSlotReserve decimal.Decimal `json:"min_slot_reserve"`
}

// DefaultRosterRules returns the standard franchise constraints: squads of
// 18-25, at most 8 overseas players, role ceilings, and 0.20 Cr reserved per
// unfilled minimum-squad slot.
func DefaultRosterRules() RosterRules {
	return RosterRules{
		MaxSquadSize:  25,
		MinSquadSize:  18,
		OverseasLimit: 8,
		RoleMin: map[Role]int{
			RoleBatter:       6,
			RoleBowler:       6,
			RoleAllRounder:   3,
			RoleWicketKeeper: 1,
		},
		RoleMax: map[Role]int{
			RoleBatter:       8,
			RoleBowler:       8,
			RoleAllRounder:   6,
			RoleWicketKeeper: 3,
		},
		MinSlotReserve: decimal.RequireFromString("0.2"),
	}
}

// canAccommodate is the single source of truth for bid eligibility, shared by
// the live ledger and read-only snapshots.
func canAccommodate(rules RosterRules, budget decimal.Decimal, squadSize int, roleCount map[Role]int, overseas int, p *Player, amount decimal.Decimal) bool {
	if amount.IsNegative() || amount.GreaterThan(budget) {
		return false
	}
	if squadSize >= rules.MaxSquadSize {
		return false
	}
	if p.Overseas() && overseas >= rules.OverseasLimit {
		return false
	}
	if ceiling, ok := rules.RoleMax[p.Role]; ok && roleCount[p.Role] >= ceiling {
		return false
	}

	// The remaining slots must still admit the unmet minimums of the other
	// roles.
	slotsLeft := rules.MaxSquadSize - squadSize - 1
	for role, need := range rules.RoleMin {
		if role == p.Role {
			continue
		}
		if deficit := need - roleCount[role]; deficit > 0 {
			slotsLeft -= deficit
		}
	}
	if slotsLeft < 0 {
		return false
	}

	// Keep enough purse to fund the rest of a minimum-size squad.
	if unfilled := rules.MinSquadSize - squadSize - 1; unfilled > 0 {
		reserve := rules.MinSlotReserve.Mul(decimal.NewFromInt(int64(unfilled)))
		if budget.Sub(amount).LessThan(reserve) {
			return false
		}
	}
	return true
}

// TeamLedger tracks one franchise's remaining purse and squad during a run.
// The engine is the sole writer; all mutation goes through CommitPurchase.
type TeamLedger struct {
	id   string
	name string

	budget    decimal.Decimal
	rules     RosterRules
	squad     []Player
	roleCount map[Role]int
	overseas  int
	retained  int
}

// NewTeamLedger opens a ledger with the full purse. Retained players are
// committed immediately at their base price, consuming purse and slots before
// the first lot opens.
func NewTeamLedger(id, name string, purse decimal.Decimal, rules RosterRules, retained []Player) (*TeamLedger, error) {
	if id == "" {
		return nil, fmt.Errorf("team has no id")
	}
	if purse.IsNegative() {
		return nil, fmt.Errorf("team %s: negative purse %s", id, purse)
	}

	t := &TeamLedger{
		id:        id,
		name:      name,
		budget:    purse,
		rules:     rules,
		roleCount: make(map[Role]int),
	}

	for _, p := range retained {
		if len(t.squad) >= rules.MaxSquadSize {
			return nil, fmt.Errorf("team %s: retained list exceeds squad size %d: %w", id, rules.MaxSquadSize, ErrRosterFull)
		}
		if p.Overseas() && t.overseas >= rules.OverseasLimit {
			return nil, fmt.Errorf("team %s: retained list exceeds overseas limit %d: %w", id, rules.OverseasLimit, ErrRosterFull)
		}
		t.budget = t.budget.Sub(p.BasePrice)
		if t.budget.IsNegative() {
			return nil, fmt.Errorf("team %s: retained players cost more than the purse: %w", id, ErrBudgetExceeded)
		}
		p.Status = StatusRetained
		p.SoldPrice = p.BasePrice
		p.SoldTo = id
		t.addToSquad(p)
		t.retained++
	}
	return t, nil
}

func (t *TeamLedger) addToSquad(p Player) {
	t.squad = append(t.squad, p)
	t.roleCount[p.Role]++
	if p.Overseas() {
		t.overseas++
	}
}

// CanBid reports whether the team could pay amount for the player without
// breaking the purse or any squad composition rule.
func (t *TeamLedger) CanBid(p *Player, amount decimal.Decimal) bool {
	return canAccommodate(t.rules, t.budget, len(t.squad), t.roleCount, t.overseas, p, amount)
}

// CommitPurchase moves the player onto the squad and debits the purse.
// All-or-nothing: on any constraint failure the ledger is unchanged.
func (t *TeamLedger) CommitPurchase(p *Player, amount decimal.Decimal) error {
	if amount.GreaterThan(t.budget) {
		return fmt.Errorf("team %s bid %s against purse %s: %w", t.id, amount, t.budget, ErrBudgetExceeded)
	}
	if !t.CanBid(p, amount) {
		return fmt.Errorf("team %s cannot accommodate player %s at %s: %w", t.id, p.ID, amount, ErrRosterFull)
	}

	bought := *p
	bought.Status = StatusSold
	bought.SoldPrice = amount
	bought.SoldTo = t.id

	t.budget = t.budget.Sub(amount)
	t.addToSquad(bought)
	return nil
}

func (t *TeamLedger) ID() string   { return t.id }
func (t *TeamLedger) Name() string { return t.name }

// BudgetRemaining is the purse left for future bids.
func (t *TeamLedger) BudgetRemaining() decimal.Decimal { return t.budget }

func (t *TeamLedger) SquadSize() int     { return len(t.squad) }
func (t *TeamLedger) OverseasCount() int { return t.overseas }
func (t *TeamLedger) RetainedCount() int { return t.retained }

func (t *TeamLedger) RoleCount(r Role) int { return t.roleCount[r] }

// Squad returns a copy of the current squad.
func (t *TeamLedger) Squad() []Player {
	return append([]Player(nil), t.squad...)
}

// Snapshot returns a read-only view of the ledger for strategies and the
// presentation layer.
func (t *TeamLedger) Snapshot() TeamSnapshot {
	counts := make(map[Role]int, len(t.roleCount))
	for r, n := range t.roleCount {
		counts[r] = n
	}
	return TeamSnapshot{
		ID:              t.id,
		Name:            t.name,
		BudgetRemaining: t.budget,
		SquadSize:       len(t.squad),
		OverseasCount:   t.overseas,
		RoleCount:       counts,
		Squad:           t.Squad(),
		Rules:           t.rules,
	}
}

// TeamSnapshot is a read-only view of a ledger. Strategies receive it instead
// of the live ledger so they cannot mutate team state.
type TeamSnapshot struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	BudgetRemaining decimal.Decimal `json:"budget_remaining"`
	SquadSize       int             `json:"squad_size"`
	OverseasCount   int             `json:"overseas_count"`
	RoleCount       map[Role]int    `json:"role_count"`
	Squad           []Player        `json:"squad"`
	Rules           RosterRules     `json:"rules"`
}

// CanBid mirrors TeamLedger.CanBid on the snapshot, letting a strategy verify
// a raise before making it.
func (s TeamSnapshot) CanBid(p *Player, amount decimal.Decimal) bool {
	return canAccommodate(s.Rules, s.BudgetRemaining, s.SquadSize, s.RoleCount, s.OverseasCount, p, amount)
}
