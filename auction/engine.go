package auction

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Phase is the lifecycle state of an auction run.
type Phase string

const (
	PhaseNotStarted Phase = "NotStarted"
	PhaseRunning    Phase = "Running"
	PhasePaused     Phase = "Paused"
	PhaseCompleted  Phase = "Completed"
)

// TeamSetup declares one franchise entering the auction. Budget is the full
// purse in Crores; retained players are priced at base and consume it before
// the first lot opens.
type TeamSetup struct {
	ID       string
	Name     string
	Budget   decimal.Decimal
	Strategy Strategy
	Retained []Player
}

// Config carries the numeric policy for a run.
type Config struct {
	Rules      RosterRules
	Increments IncrementSchedule
	SetOrder   []string
	Seed       uint64
}

// StepKind says what a single advance call did.
type StepKind string

const (
	// StepNone reports an advance on a completed auction: a no-op, not a
	// fault.
	StepNone           StepKind = "none"
	StepRoundPlayed    StepKind = "round_played"
	StepPlayerResolved StepKind = "player_resolved"
	StepCompleted      StepKind = "completed"
)

// StepResult reports one atomic engine step for the caller to render.
type StepResult struct {
	Kind       StepKind
	PlayerID   string
	Round      int
	HighBid    decimal.Decimal
	HighBidder string
	Outcome    *Outcome
}

// lot is the player currently under the hammer.
type lot struct {
	player     Player
	round      int
	highBid    decimal.Decimal
	highBidder string
	active     []string
	bids       int
}

// Auction is one complete simulation: the pool, team ledgers, strategies,
// history and the phase machine that drives them. The caller owns the value;
// the package keeps no global state. Not safe for concurrent use — the engine
// expects a single driving goroutine and is the sole writer of all state.
type Auction struct {
	cfg Config
	log *zap.Logger

	srcTeams   []TeamSetup
	srcPlayers []Player

	pool       *Pool
	ledgers    map[string]*TeamLedger
	strategies map[string]Strategy
	order      []string
	history    *History
	phase      Phase
	current    *lot
}

// New builds an auction from validated inputs. Input validation is the
// loader's job; New only rejects structurally broken setups (duplicate ids,
// missing strategies, retained lists that break the rules).
func New(cfg Config, teams []TeamSetup, players []Player, log *zap.Logger) (*Auction, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("auction needs at least one team")
	}
	if cfg.Increments == nil {
		cfg.Increments = DefaultIncrementSchedule()
	}
	if err := cfg.Increments.Validate(); err != nil {
		return nil, fmt.Errorf("increment schedule: %w", err)
	}
	if cfg.Rules.MaxSquadSize <= 0 {
		cfg.Rules = DefaultRosterRules()
	}

	a := &Auction{
		cfg:        cfg,
		log:        log,
		srcTeams:   teams,
		srcPlayers: append([]Player(nil), players...),
	}
	if err := a.build(); err != nil {
		return nil, err
	}
	return a, nil
}

// build constructs all mutable state from the immutable sources. Reset is
// just a rebuild.
func (a *Auction) build() error {
	pool, err := NewPool(a.srcPlayers, a.cfg.SetOrder)
	if err != nil {
		return err
	}

	ledgers := make(map[string]*TeamLedger, len(a.srcTeams))
	strategies := make(map[string]Strategy, len(a.srcTeams))
	order := make([]string, 0, len(a.srcTeams))
	for _, ts := range a.srcTeams {
		if ts.Strategy == nil {
			return fmt.Errorf("team %s has no strategy", ts.ID)
		}
		if _, dup := ledgers[ts.ID]; dup {
			return fmt.Errorf("duplicate team id %s", ts.ID)
		}
		ledger, err := NewTeamLedger(ts.ID, ts.Name, ts.Budget, a.cfg.Rules, ts.Retained)
		if err != nil {
			return err
		}
		ledgers[ts.ID] = ledger
		strategies[ts.ID] = ts.Strategy
		order = append(order, ts.ID)
	}

	a.pool = pool
	a.ledgers = ledgers
	a.strategies = strategies
	a.order = order
	a.history = NewHistory()
	a.phase = PhaseNotStarted
	a.current = nil
	return nil
}

// Start moves the auction from NotStarted to Running.
func (a *Auction) Start() error {
	if a.phase != PhaseNotStarted {
		return fmt.Errorf("cannot start auction from phase %s", a.phase)
	}
	a.phase = PhaseRunning
	a.log.Info("auction started",
		zap.Int("players", a.pool.Remaining()),
		zap.Int("teams", len(a.order)))
	return nil
}

// Pause suspends the run before the next round.
func (a *Auction) Pause() error {
	if a.phase != PhaseRunning {
		return fmt.Errorf("cannot pause auction from phase %s", a.phase)
	}
	a.phase = PhasePaused
	return nil
}

// Resume continues a paused run.
func (a *Auction) Resume() error {
	if a.phase != PhasePaused {
		return fmt.Errorf("cannot resume auction from phase %s", a.phase)
	}
	a.phase = PhaseRunning
	return nil
}

// Reset discards all mutable state and restores the initial snapshot. The
// returned error is only non-nil if the immutable sources themselves are
// broken, which New has already ruled out.
func (a *Auction) Reset() error {
	a.log.Info("auction reset")
	return a.build()
}

// Phase returns the current lifecycle state.
func (a *Auction) Phase() Phase { return a.phase }

// History exposes the append-only log for read-only queries.
func (a *Auction) History() *History { return a.history }

// Team returns a read-only view of one franchise.
func (a *Auction) Team(id string) (TeamSnapshot, bool) {
	ledger, ok := a.ledgers[id]
	if !ok {
		return TeamSnapshot{}, false
	}
	return ledger.Snapshot(), true
}

// Teams returns read-only views of every franchise in declaration order.
func (a *Auction) Teams() []TeamSnapshot {
	out := make([]TeamSnapshot, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.ledgers[id].Snapshot())
	}
	return out
}

// AdvanceRound processes exactly one bidding round — opening the next lot
// first if none is live — and returns control to the caller so the
// presentation layer can re-render between steps.
func (a *Auction) AdvanceRound() (StepResult, error) {
	switch a.phase {
	case PhaseCompleted:
		return StepResult{Kind: StepNone}, nil
	case PhaseRunning:
	default:
		return StepResult{}, fmt.Errorf("advance in phase %s: %w", a.phase, ErrNotRunning)
	}

	if a.current == nil {
		res, opened, err := a.openNextLot()
		if err != nil {
			return StepResult{}, err
		}
		if !opened {
			return res, nil
		}
	}
	return a.playRound()
}

// AdvancePlayer drives rounds until the current player's lot resolves or the
// auction completes.
func (a *Auction) AdvancePlayer() (StepResult, error) {
	for {
		res, err := a.AdvanceRound()
		if err != nil || res.Kind != StepRoundPlayed {
			return res, err
		}
	}
}

// Run advances until the auction completes. Start must have been called.
func (a *Auction) Run() error {
	for a.phase == PhaseRunning {
		if _, err := a.AdvanceRound(); err != nil {
			return err
		}
	}
	if a.phase != PhaseCompleted {
		return fmt.Errorf("run stopped in phase %s", a.phase)
	}
	return nil
}

// openNextLot pulls the next player and computes the eligible bidder set. It
// reports opened=false when the auction completed or the lot resolved
// immediately with no eligible bidders.
func (a *Auction) openNextLot() (StepResult, bool, error) {
	p, err := a.pool.NextUnsold()
	if errors.Is(err, ErrEmptyPool) {
		a.phase = PhaseCompleted
		a.log.Info("auction completed",
			zap.Int("outcomes", len(a.history.Outcomes())))
		return StepResult{Kind: StepCompleted}, false, nil
	}
	if err != nil {
		return StepResult{}, false, err
	}

	var active []string
	for _, id := range a.order {
		if a.ledgers[id].CanBid(p, p.BasePrice) {
			active = append(active, id)
		}
	}
	if len(active) == 0 {
		a.history.recordEvent(p.ID, "", BidNoBids, decimal.Zero, 0)
		out, err := a.resolveUnsold(*p, 0, 0, "no eligible bidders")
		if err != nil {
			return StepResult{}, false, err
		}
		return StepResult{Kind: StepPlayerResolved, PlayerID: p.ID, Outcome: &out}, false, nil
	}

	a.current = &lot{player: *p, active: active}
	a.log.Debug("lot opened",
		zap.String("player", p.Name),
		zap.String("base_price", p.BasePrice.String()),
		zap.Int("eligible", len(active)))
	return StepResult{}, true, nil
}

// playRound offers every active team except the current high bidder one
// Raise/Pass decision. A pass is permanent, so the active set shrinks
// monotonically and the round count is bounded.
func (a *Auction) playRound() (StepResult, error) {
	l := a.current
	l.round++
	raised := false

	for _, teamID := range append([]string(nil), l.active...) {
		if teamID == l.highBidder {
			continue
		}
		ledger := a.ledgers[teamID]

		ask := l.player.BasePrice
		if l.highBidder != "" {
			ask = a.cfg.Increments.Next(l.highBid)
		}
		if !ledger.CanBid(&l.player, ask) {
			a.withdraw(teamID, ask)
			continue
		}

		bid := BidState{Round: l.round, HighBid: l.highBid, HighBidder: l.highBidder, AskPrice: ask}
		decision := a.strategies[teamID].Decide(&l.player, bid, ledger.Snapshot())
		if decision.Action != ActionRaise {
			a.withdraw(teamID, ask)
			continue
		}

		amount := decision.Amount
		if amount.LessThan(ask) || !ledger.CanBid(&l.player, amount) {
			// A raise below the ask or past the team's own constraints is a
			// strategy fault; recover by forcing a pass.
			a.log.Warn("invalid raise forced to pass",
				zap.String("team", teamID),
				zap.String("player", l.player.ID),
				zap.String("amount", amount.String()))
			a.withdraw(teamID, ask)
			continue
		}

		l.highBid = amount
		l.highBidder = teamID
		l.bids++
		raised = true
		a.history.recordEvent(l.player.ID, teamID, BidRaise, amount, l.round)
	}

	// The lot resolves when the high bidder stands alone, or when a full
	// round passes with no raise.
	if l.highBidder != "" && (len(l.active) == 1 || !raised) {
		return a.resolveSold()
	}
	if l.highBidder == "" && !raised {
		out, err := a.resolveUnsold(l.player, l.round, l.bids, "no bids at base price")
		if err != nil {
			return StepResult{}, err
		}
		return StepResult{Kind: StepPlayerResolved, PlayerID: out.PlayerID, Outcome: &out}, nil
	}
	return StepResult{
		Kind:       StepRoundPlayed,
		PlayerID:   l.player.ID,
		Round:      l.round,
		HighBid:    l.highBid,
		HighBidder: l.highBidder,
	}, nil
}

// withdraw removes a team from the lot and logs the exit. The high bidder is
// never withdrawn.
func (a *Auction) withdraw(teamID string, ask decimal.Decimal) {
	l := a.current
	for i, id := range l.active {
		if id == teamID {
			l.active = append(l.active[:i], l.active[i+1:]...)
			break
		}
	}
	a.history.recordEvent(l.player.ID, teamID, BidWithdraw, ask, l.round)
}

// resolveSold commits the sale to the winning ledger. A failed commit voids
// the sale: the lot ends unsold and the ledger stays untouched — the engine
// never overspends.
func (a *Auction) resolveSold() (StepResult, error) {
	l := a.current
	ledger := a.ledgers[l.highBidder]

	if err := ledger.CommitPurchase(&l.player, l.highBid); err != nil {
		a.log.Error("purchase commit failed, lot voided",
			zap.String("player", l.player.ID),
			zap.String("team", l.highBidder),
			zap.Error(err))
		out, rerr := a.resolveUnsold(l.player, l.round, l.bids, fmt.Sprintf("commit failed: %v", err))
		if rerr != nil {
			return StepResult{}, rerr
		}
		return StepResult{Kind: StepPlayerResolved, PlayerID: out.PlayerID, Outcome: &out}, nil
	}
	if ledger.BudgetRemaining().IsNegative() {
		// Invariant breach: a latent bug, not a recoverable condition. The
		// auction must be Reset.
		return StepResult{}, fmt.Errorf("team %s purse went negative after buying %s: ledger corrupt, reset required",
			l.highBidder, l.player.ID)
	}
	if err := a.pool.MarkOutcome(l.player.ID, StatusSold, l.highBid, l.highBidder); err != nil {
		return StepResult{}, err
	}

	out := a.history.recordOutcome(Outcome{
		PlayerID:    l.player.ID,
		PlayerName:  l.player.Name,
		Role:        l.player.Role,
		Nationality: l.player.Nationality,
		BasePrice:   l.player.BasePrice,
		Status:      StatusSold,
		FinalPrice:  l.highBid,
		TeamID:      l.highBidder,
		Rounds:      l.round,
		Bids:        l.bids,
	})
	a.log.Info("player sold",
		zap.String("player", l.player.Name),
		zap.String("team", l.highBidder),
		zap.String("price", l.highBid.String()),
		zap.Int("rounds", l.round))

	a.current = nil
	return StepResult{Kind: StepPlayerResolved, PlayerID: out.PlayerID, Outcome: &out}, nil
}

func (a *Auction) resolveUnsold(p Player, rounds, bids int, reason string) (Outcome, error) {
	if err := a.pool.MarkOutcome(p.ID, StatusUnsold, decimal.Zero, ""); err != nil {
		return Outcome{}, err
	}
	out := a.history.recordOutcome(Outcome{
		PlayerID:    p.ID,
		PlayerName:  p.Name,
		Role:        p.Role,
		Nationality: p.Nationality,
		BasePrice:   p.BasePrice,
		Status:      StatusUnsold,
		Rounds:      rounds,
		Bids:        bids,
		Reason:      reason,
	})
	a.log.Info("player unsold",
		zap.String("player", p.Name),
		zap.String("reason", reason))
	a.current = nil
	return out, nil
}
