package auction

import "github.com/shopspring/decimal"

// Role classifies a player's primary skill.
type Role string

const (
	RoleBatter       Role = "Batter"
	RoleBowler       Role = "Bowler"
	RoleAllRounder   Role = "AllRounder"
	RoleWicketKeeper Role = "WicketKeeper"
)

// Roles lists every valid role in a stable order.
func Roles() []Role {
	return []Role{RoleBatter, RoleBowler, RoleAllRounder, RoleWicketKeeper}
}

func (r Role) Valid() bool {
	switch r {
	case RoleBatter, RoleBowler, RoleAllRounder, RoleWicketKeeper:
		return true
	}
	return false
}

// Nationality distinguishes domestic players from overseas ones, which
// consume a capped number of squad slots.
type Nationality string

const (
	NationalityDomestic Nationality = "Domestic"
	NationalityOverseas Nationality = "Overseas"
)

func (n Nationality) Valid() bool {
	return n == NationalityDomestic || n == NationalityOverseas
}

// PlayerStatus is a player's terminal auction state. Unsold doubles as the
// initial state; a player is terminal only once the pool has marked an
// outcome.
type PlayerStatus string

const (
	StatusUnsold   PlayerStatus = "Unsold"
	StatusSold     PlayerStatus = "Sold"
	StatusRetained PlayerStatus = "Retained"
)

// Player is a single entry in the auction catalog. All monetary values are in
// Crores. Everything except Status, SoldPrice and SoldTo is fixed at load
// time; the sale fields are set exactly once by the engine.
type Player struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Role         Role            `json:"role"`
	Nationality  Nationality     `json:"nationality"`
	BasePrice    decimal.Decimal `json:"base_price"`
	Age          int             `json:"age,omitempty"`
	IntlCaps     int             `json:"intl_caps"`
	IPLMatches   int             `json:"ipl_matches"`
	InLastSeason bool            `json:"in_last_season,omitempty"`
	Set          string          `json:"set,omitempty"`
	Status       PlayerStatus    `json:"status"`
	SoldPrice    decimal.Decimal `json:"sold_price"`
	SoldTo       string          `json:"sold_to,omitempty"`

	// resolved flips when the pool commits an outcome, making the status
	// terminal.
	resolved bool
}

// Overseas reports whether the player consumes an overseas squad slot.
func (p *Player) Overseas() bool { return p.Nationality == NationalityOverseas }

// Uncapped reports whether the player has never played an international.
func (p *Player) Uncapped() bool { return p.IntlCaps == 0 }
