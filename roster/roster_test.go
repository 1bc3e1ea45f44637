package roster

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"

	"github.com/mukulpathak/iplauction/auction"
)

const validCSV = `id,name,role,country,base_price_cr,age,intl_caps,ipl_matches,in_last_season,set,status,team
p1,Rohit Verma,Batter,India,2,36,120,140,yes,marquee,auction,
p2,James Carter,All-Rounder,Australia,1.5,29,60,40,no,allrounders,auction,
p3,Dinesh Rao,Wicket-Keeper,India,0.5,24,0,12,yes,keepers,auction,
p4,Sam Wilson,Bowler,England,1,31,80,70,yes,,retained,MI
`

func TestParseCSV_Valid(t *testing.T) {
	ros, err := ParseCSV(strings.NewReader(validCSV))
	check.NoError(t, err)

	check.Equal(t, 3, len(ros.Pool))
	check.Equal(t, 1, len(ros.Retained["MI"]))

	p1 := ros.Pool[0]
	check.Equal(t, "p1", p1.ID)
	check.Equal(t, auction.RoleBatter, p1.Role)
	check.Equal(t, auction.NationalityDomestic, p1.Nationality)
	check.True(t, p1.BasePrice.Equal(decimal.NewFromInt(2)))
	check.Equal(t, 120, p1.IntlCaps)
	check.True(t, p1.InLastSeason)
	check.Equal(t, "marquee", p1.Set)
	check.Equal(t, auction.StatusUnsold, p1.Status)

	p2 := ros.Pool[1]
	check.Equal(t, auction.RoleAllRounder, p2.Role)
	check.Equal(t, auction.NationalityOverseas, p2.Nationality)
	check.False(t, p2.InLastSeason)

	check.Equal(t, auction.RoleWicketKeeper, ros.Pool[2].Role)

	retained := ros.Retained["MI"][0]
	check.Equal(t, "p4", retained.ID)
	check.Equal(t, auction.RoleBowler, retained.Role)
}

func TestParseCSV_HeaderErrors(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("id,name,role\np1,X,Batter\n"))
	check.Error(t, err)

	wrongOrder := strings.Replace(validCSV, "id,name", "name,id", 1)
	_, err = ParseCSV(strings.NewReader(wrongOrder))
	check.Error(t, err)
}

func TestParseCSV_RowErrors(t *testing.T) {
	header := "id,name,role,country,base_price_cr,age,intl_caps,ipl_matches,in_last_season,set,status,team\n"

	for name, row := range map[string]string{
		"bad price":          "p1,X,Batter,India,abc,30,0,0,no,,auction,",
		"bad age":            "p1,X,Batter,India,1,old,0,0,no,,auction,",
		"bad caps":           "p1,X,Batter,India,1,30,many,0,no,,auction,",
		"bad matches":        "p1,X,Batter,India,1,30,0,lots,no,,auction,",
		"bad in_last_season": "p1,X,Batter,India,1,30,0,0,maybe,,auction,",
		"short row":          "p1,X,Batter\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(header + row + "\n"))
			check.Error(t, err)
		})
	}
}

func TestParseJSON_Valid(t *testing.T) {
	input := `[
		{"id": "p1", "name": "Rohit Verma", "role": "batsman", "country": "India",
		 "base_price_cr": 2, "age": 36, "intl_caps": 120, "ipl_matches": 140,
		 "in_last_season": true, "set": "marquee", "status": "auction"},
		{"id": "p2", "name": "Sam Wilson", "role": "bowler", "country": "England",
		 "base_price_cr": 1, "status": "retained", "team": "MI"}
	]`

	ros, err := ParseJSON(strings.NewReader(input))
	check.NoError(t, err)

	check.Equal(t, 1, len(ros.Pool))
	check.Equal(t, auction.RoleBatter, ros.Pool[0].Role)
	check.Equal(t, 1, len(ros.Retained["MI"]))
}

func TestParseJSON_RejectsUnknownFields(t *testing.T) {
	input := `[{"id": "p1", "name": "X", "role": "batter", "country": "India",
		"base_price_cr": 1, "nickname": "hitman"}]`

	_, err := ParseJSON(strings.NewReader(input))
	check.Error(t, err)
}

func TestBuild_ValidationErrors(t *testing.T) {
	base := func() record {
		return record{ID: "p1", Name: "X", Role: "Batter", Country: "India", BasePriceCr: 1}
	}

	tests := []struct {
		name   string
		mutate func([]record) []record
	}{
		{"missing id", func(rs []record) []record { rs[0].ID = ""; return rs }},
		{"missing name", func(rs []record) []record { rs[0].Name = ""; return rs }},
		{"zero price", func(rs []record) []record { rs[0].BasePriceCr = 0; return rs }},
		{"negative age", func(rs []record) []record { rs[0].Age = -1; return rs }},
		{"unknown role", func(rs []record) []record { rs[0].Role = "Umpire"; return rs }},
		{"unknown status", func(rs []record) []record { rs[0].Status = "injured"; return rs }},
		{"retained without team", func(rs []record) []record { rs[0].Status = "retained"; return rs }},
		{"duplicate id", func(rs []record) []record {
			return append(rs, base())
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := build(tt.mutate([]record{base()}))
			check.Error(t, err)
		})
	}
}

func TestParseRole_AcceptsCommonSpellings(t *testing.T) {
	for input, want := range map[string]auction.Role{
		"Batter":        auction.RoleBatter,
		"batsman":       auction.RoleBatter,
		"BOWLER":        auction.RoleBowler,
		"All-Rounder":   auction.RoleAllRounder,
		"all rounder":   auction.RoleAllRounder,
		"Wicket-Keeper": auction.RoleWicketKeeper,
		"wk":            auction.RoleWicketKeeper,
		"keeper":        auction.RoleWicketKeeper,
	} {
		role, err := parseRole(input)
		check.NoError(t, err)
		check.Equal(t, want, role)
	}

	_, err := parseRole("twelfth man")
	check.Error(t, err)
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "players.csv")
	check.NoError(t, os.WriteFile(csvPath, []byte(validCSV), 0o644))
	ros, err := Load(csvPath)
	check.NoError(t, err)
	check.Equal(t, 3, len(ros.Pool))

	txtPath := filepath.Join(dir, "players.txt")
	check.NoError(t, os.WriteFile(txtPath, []byte(validCSV), 0o644))
	_, err = Load(txtPath)
	check.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing.csv"))
	check.Error(t, err)
}
