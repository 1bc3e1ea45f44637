package auction

import (
	"errors"
	"testing"

	"github.com/peterldowns/testy/check"
)

func domesticBatter(id string, base string) Player {
	return Player{ID: id, Name: id, Role: RoleBatter, Nationality: NationalityDomestic, BasePrice: cr(base)}
}

func overseasBowler(id string, base string) Player {
	return Player{ID: id, Name: id, Role: RoleBowler, Nationality: NationalityOverseas, BasePrice: cr(base)}
}

func TestNewTeamLedger_RetainedConsumePurseAndSlots(t *testing.T) {
	retained := []Player{
		domesticBatter("r1", "10"),
		overseasBowler("r2", "15"),
	}

	ledger, err := NewTeamLedger("MI", "Mumbai Indians", cr("120"), DefaultRosterRules(), retained)
	check.NoError(t, err)

	check.True(t, ledger.BudgetRemaining().Equal(cr("95")))
	check.Equal(t, 2, ledger.SquadSize())
	check.Equal(t, 2, ledger.RetainedCount())
	check.Equal(t, 1, ledger.OverseasCount())
	check.Equal(t, 1, ledger.RoleCount(RoleBatter))
	check.Equal(t, 1, ledger.RoleCount(RoleBowler))

	for _, p := range ledger.Squad() {
		check.Equal(t, StatusRetained, p.Status)
		check.Equal(t, "MI", p.SoldTo)
		check.True(t, p.SoldPrice.Equal(p.BasePrice))
	}
}

func TestNewTeamLedger_RetainedExceedPurse(t *testing.T) {
	retained := []Player{domesticBatter("r1", "10"), domesticBatter("r2", "15")}

	_, err := NewTeamLedger("MI", "Mumbai Indians", cr("20"), DefaultRosterRules(), retained)
	check.True(t, errors.Is(err, ErrBudgetExceeded))
}

func TestNewTeamLedger_RetainedExceedOverseasLimit(t *testing.T) {
	rules := DefaultRosterRules()
	rules.OverseasLimit = 1
	retained := []Player{overseasBowler("r1", "5"), overseasBowler("r2", "5")}

	_, err := NewTeamLedger("MI", "Mumbai Indians", cr("120"), rules, retained)
	check.True(t, errors.Is(err, ErrRosterFull))
}

func TestCanBid_BudgetBound(t *testing.T) {
	rules := RosterRules{MaxSquadSize: 5}
	ledger, err := NewTeamLedger("A", "A", cr("10"), rules, nil)
	check.NoError(t, err)

	p := domesticBatter("p1", "1")
	check.True(t, ledger.CanBid(&p, cr("10")))
	check.False(t, ledger.CanBid(&p, cr("10.05")))
	check.False(t, ledger.CanBid(&p, cr("-1")))
}

func TestCanBid_SquadCap(t *testing.T) {
	rules := RosterRules{MaxSquadSize: 1}
	ledger, err := NewTeamLedger("A", "A", cr("100"), rules, []Player{domesticBatter("r1", "5")})
	check.NoError(t, err)

	p := domesticBatter("p1", "1")
	check.False(t, ledger.CanBid(&p, cr("1")))
}

func TestCanBid_OverseasCap(t *testing.T) {
	rules := RosterRules{MaxSquadSize: 5, OverseasLimit: 1}
	ledger, err := NewTeamLedger("A", "A", cr("100"), rules, []Player{overseasBowler("r1", "5")})
	check.NoError(t, err)

	foreign := overseasBowler("p1", "1")
	local := domesticBatter("p2", "1")
	check.False(t, ledger.CanBid(&foreign, cr("1")))
	check.True(t, ledger.CanBid(&local, cr("1")))
}

func TestCanBid_RoleCeiling(t *testing.T) {
	rules := RosterRules{
		MaxSquadSize: 5,
		RoleMax:      map[Role]int{RoleBatter: 1},
	}
	ledger, err := NewTeamLedger("A", "A", cr("100"), rules, []Player{domesticBatter("r1", "5")})
	check.NoError(t, err)

	batter := domesticBatter("p1", "1")
	bowler := Player{ID: "p2", Role: RoleBowler, Nationality: NationalityDomestic, BasePrice: cr("1")}
	check.False(t, ledger.CanBid(&batter, cr("1")))
	check.True(t, ledger.CanBid(&bowler, cr("1")))
}

func TestCanBid_RoleMinimumSlotFeasibility(t *testing.T) {
	// Squad of 4 with two batters on board and two bowlers still required.
	// Buying a third batter leaves only one slot for two mandatory bowlers.
	rules := RosterRules{
		MaxSquadSize: 4,
		RoleMin:      map[Role]int{RoleBowler: 2},
	}
	retained := []Player{domesticBatter("r1", "1"), domesticBatter("r2", "1")}
	ledger, err := NewTeamLedger("A", "A", cr("100"), rules, retained)
	check.NoError(t, err)

	batter := domesticBatter("p1", "1")
	bowler := Player{ID: "p2", Role: RoleBowler, Nationality: NationalityDomestic, BasePrice: cr("1")}
	check.False(t, ledger.CanBid(&batter, cr("1")))
	check.True(t, ledger.CanBid(&bowler, cr("1")))
}

func TestCanBid_MinSquadPurseReserve(t *testing.T) {
	// Two more minimum-squad slots remain after this buy, each reserving 0.2.
	rules := RosterRules{
		MaxSquadSize:   5,
		MinSquadSize:   3,
		MinSlotReserve: cr("0.2"),
	}
	ledger, err := NewTeamLedger("A", "A", cr("10.3"), rules, nil)
	check.NoError(t, err)

	p := domesticBatter("p1", "1")
	check.False(t, ledger.CanBid(&p, cr("10")))
	check.True(t, ledger.CanBid(&p, cr("9.9")))
}

func TestCommitPurchase_UpdatesLedger(t *testing.T) {
	ledger, err := NewTeamLedger("A", "Team A", cr("50"), DefaultRosterRules(), nil)
	check.NoError(t, err)

	p := overseasBowler("p1", "2")
	check.NoError(t, ledger.CommitPurchase(&p, cr("7.5")))

	check.True(t, ledger.BudgetRemaining().Equal(cr("42.5")))
	check.Equal(t, 1, ledger.SquadSize())
	check.Equal(t, 1, ledger.OverseasCount())

	squad := ledger.Squad()
	check.Equal(t, 1, len(squad))
	check.Equal(t, StatusSold, squad[0].Status)
	check.Equal(t, "A", squad[0].SoldTo)
	check.True(t, squad[0].SoldPrice.Equal(cr("7.5")))
}

func TestCommitPurchase_AllOrNothing(t *testing.T) {
	rules := RosterRules{MaxSquadSize: 5, OverseasLimit: 0}
	ledger, err := NewTeamLedger("A", "Team A", cr("50"), rules, nil)
	check.NoError(t, err)

	foreign := overseasBowler("p1", "2")
	err = ledger.CommitPurchase(&foreign, cr("5"))
	check.True(t, errors.Is(err, ErrRosterFull))
	check.True(t, ledger.BudgetRemaining().Equal(cr("50")))
	check.Equal(t, 0, ledger.SquadSize())

	rich := domesticBatter("p2", "2")
	err = ledger.CommitPurchase(&rich, cr("60"))
	check.True(t, errors.Is(err, ErrBudgetExceeded))
	check.True(t, ledger.BudgetRemaining().Equal(cr("50")))
	check.Equal(t, 0, ledger.SquadSize())
}

func TestTeamSnapshot_MirrorsLedgerEligibility(t *testing.T) {
	rules := RosterRules{MaxSquadSize: 3, OverseasLimit: 1}
	ledger, err := NewTeamLedger("A", "Team A", cr("20"), rules, []Player{overseasBowler("r1", "5")})
	check.NoError(t, err)

	snap := ledger.Snapshot()
	check.Equal(t, "A", snap.ID)
	check.True(t, snap.BudgetRemaining.Equal(cr("15")))
	check.Equal(t, 1, snap.SquadSize)

	foreign := overseasBowler("p1", "1")
	local := domesticBatter("p2", "1")
	check.Equal(t, ledger.CanBid(&foreign, cr("1")), snap.CanBid(&foreign, cr("1")))
	check.Equal(t, ledger.CanBid(&local, cr("1")), snap.CanBid(&local, cr("1")))
	check.False(t, snap.CanBid(&foreign, cr("1")))
	check.True(t, snap.CanBid(&local, cr("1")))
}
