// Package roster loads and validates the player catalog the engine consumes.
// Malformed records are rejected here and never reach the auction.
package roster

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mukulpathak/iplauction/auction"
)

// Roster is the validated input set for one auction: the open pool plus the
// retained players grouped by franchise code.
type Roster struct {
	Pool     []auction.Player
	Retained map[string][]auction.Player
}

// Load reads players from path, dispatching on the file extension.
func Load(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return ParseCSV(f)
	case ".json":
		return ParseJSON(f)
	default:
		return nil, fmt.Errorf("unsupported roster format %q", ext)
	}
}

// record is the raw player row before validation.
type record struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	Country      string  `json:"country"`
	BasePriceCr  float64 `json:"base_price_cr"`
	Age          int     `json:"age"`
	IntlCaps     int     `json:"intl_caps"`
	IPLMatches   int     `json:"ipl_matches"`
	InLastSeason bool    `json:"in_last_season"`
	Set          string  `json:"set"`
	Status       string  `json:"status"`
	Team         string  `json:"team"`
}

// csvColumns is the required header, in order.
var csvColumns = []string{
	"id", "name", "role", "country", "base_price_cr", "age",
	"intl_caps", "ipl_matches", "in_last_season", "set", "status", "team",
}

// ParseCSV reads player rows from a CSV stream with a mandatory header.
func ParseCSV(r io.Reader) (*Roster, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read roster header: %w", err)
	}
	if len(header) != len(csvColumns) {
		return nil, fmt.Errorf("roster header has %d columns, want %d", len(header), len(csvColumns))
	}
	for i, col := range csvColumns {
		if strings.ToLower(strings.TrimSpace(header[i])) != col {
			return nil, fmt.Errorf("roster header column %d is %q, want %q", i, header[i], col)
		}
	}

	var records []record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("roster line %d: %w", line, err)
		}

		rec := record{
			ID:      strings.TrimSpace(row[0]),
			Name:    strings.TrimSpace(row[1]),
			Role:    row[2],
			Country: row[3],
			Set:     strings.TrimSpace(row[9]),
			Status:  row[10],
			Team:    strings.TrimSpace(row[11]),
		}
		if rec.BasePriceCr, err = strconv.ParseFloat(strings.TrimSpace(row[4]), 64); err != nil {
			return nil, fmt.Errorf("roster line %d: bad base price %q", line, row[4])
		}
		if rec.Age, err = atoiOrZero(row[5]); err != nil {
			return nil, fmt.Errorf("roster line %d: bad age %q", line, row[5])
		}
		if rec.IntlCaps, err = atoiOrZero(row[6]); err != nil {
			return nil, fmt.Errorf("roster line %d: bad intl caps %q", line, row[6])
		}
		if rec.IPLMatches, err = atoiOrZero(row[7]); err != nil {
			return nil, fmt.Errorf("roster line %d: bad ipl matches %q", line, row[7])
		}
		switch strings.ToLower(strings.TrimSpace(row[8])) {
		case "", "n", "no", "false", "0":
			rec.InLastSeason = false
		case "y", "yes", "true", "1":
			rec.InLastSeason = true
		default:
			return nil, fmt.Errorf("roster line %d: bad in_last_season %q", line, row[8])
		}
		records = append(records, rec)
	}
	return build(records)
}

// ParseJSON reads an array of player records.
func ParseJSON(r io.Reader) (*Roster, error) {
	var records []record
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	return build(records)
}

func atoiOrZero(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func build(records []record) (*Roster, error) {
	ros := &Roster{Retained: make(map[string][]auction.Player)}
	seen := make(map[string]bool, len(records))

	for i, rec := range records {
		if rec.ID == "" {
			return nil, fmt.Errorf("roster record %d: missing id", i)
		}
		if seen[rec.ID] {
			return nil, fmt.Errorf("roster record %d: duplicate id %q", i, rec.ID)
		}
		seen[rec.ID] = true
		if rec.Name == "" {
			return nil, fmt.Errorf("roster record %d (%s): missing name", i, rec.ID)
		}
		if rec.BasePriceCr <= 0 {
			return nil, fmt.Errorf("roster record %d (%s): base price must be positive", i, rec.ID)
		}
		if rec.Age < 0 || rec.IntlCaps < 0 || rec.IPLMatches < 0 {
			return nil, fmt.Errorf("roster record %d (%s): negative attribute", i, rec.ID)
		}

		role, err := parseRole(rec.Role)
		if err != nil {
			return nil, fmt.Errorf("roster record %d (%s): %w", i, rec.ID, err)
		}

		p := auction.Player{
			ID:           rec.ID,
			Name:         rec.Name,
			Role:         role,
			Nationality:  nationalityFor(rec.Country),
			BasePrice:    decimal.NewFromFloat(rec.BasePriceCr).Round(2),
			Age:          rec.Age,
			IntlCaps:     rec.IntlCaps,
			IPLMatches:   rec.IPLMatches,
			InLastSeason: rec.InLastSeason,
			Set:          rec.Set,
			Status:       auction.StatusUnsold,
		}

		switch strings.ToLower(strings.TrimSpace(rec.Status)) {
		case "", "auction":
			ros.Pool = append(ros.Pool, p)
		case "retained":
			if rec.Team == "" {
				return nil, fmt.Errorf("roster record %d (%s): retained without a team", i, rec.ID)
			}
			ros.Retained[rec.Team] = append(ros.Retained[rec.Team], p)
		default:
			return nil, fmt.Errorf("roster record %d (%s): unknown status %q", i, rec.ID, rec.Status)
		}
	}
	return ros, nil
}

// parseRole accepts the spellings that show up in published auction lists.
func parseRole(s string) (auction.Role, error) {
	normalized := strings.ToLower(strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '_' {
			return -1
		}
		return r
	}, strings.TrimSpace(s)))

	switch normalized {
	case "batter", "batsman":
		return auction.RoleBatter, nil
	case "bowler":
		return auction.RoleBowler, nil
	case "allrounder":
		return auction.RoleAllRounder, nil
	case "wicketkeeper", "keeper", "wk":
		return auction.RoleWicketKeeper, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func nationalityFor(country string) auction.Nationality {
	if strings.EqualFold(strings.TrimSpace(country), "india") {
		return auction.NationalityDomestic
	}
	return auction.NationalityOverseas
}
