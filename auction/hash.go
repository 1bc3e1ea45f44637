package auction

import (
	"crypto/sha256"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// digestEncMode encodes with CBOR canonical options so the same state always
// produces the same bytes.
var digestEncMode = func() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// digestView strips volatile fields (timestamps, event ids) so two replays of
// the same seeded auction digest identically.
type digestView struct {
	Phase    Phase           `json:"phase"`
	Teams    []digestTeam    `json:"teams"`
	Outcomes []digestOutcome `json:"outcomes"`
}

type digestTeam struct {
	ID     string   `json:"id"`
	Budget string   `json:"budget"`
	Squad  []string `json:"squad"`
}

type digestOutcome struct {
	PlayerID string       `json:"player_id"`
	Status   PlayerStatus `json:"status"`
	Price    string       `json:"price"`
	TeamID   string       `json:"team_id"`
}

// ComputeStateDigest returns the SHA-256 of the canonical CBOR encoding of
// the committed auction state. Two runs with identical inputs and seed
// produce identical digests, which is how replays are verified.
func ComputeStateDigest(snap Snapshot, outcomes []Outcome) (string, error) {
	view := digestView{Phase: snap.Phase}
	for _, t := range snap.Teams {
		dt := digestTeam{ID: t.ID, Budget: t.BudgetRemaining.String()}
		for _, p := range t.Squad {
			dt.Squad = append(dt.Squad, p.ID)
		}
		view.Teams = append(view.Teams, dt)
	}
	for _, o := range outcomes {
		view.Outcomes = append(view.Outcomes, digestOutcome{
			PlayerID: o.PlayerID,
			Status:   o.Status,
			Price:    o.FinalPrice.String(),
			TeamID:   o.TeamID,
		})
	}

	data, err := digestEncMode.Marshal(view)
	if err != nil {
		return "", fmt.Errorf("encode digest view: %w", err)
	}
	return fmt.Sprintf("%x", sha256.Sum256(data)), nil
}

// StateDigest digests the auction's current committed state.
func (a *Auction) StateDigest() (string, error) {
	return ComputeStateDigest(a.Snapshot(), a.history.Outcomes())
}
