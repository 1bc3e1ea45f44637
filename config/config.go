package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/mukulpathak/iplauction/auction"
)

// Config is the complete simulator configuration.
type Config struct {
	Auction AuctionConfig `mapstructure:"auction"`
	Teams   []TeamConfig  `mapstructure:"teams"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// AuctionConfig holds the numeric auction policy. All money is in Crores.
type AuctionConfig struct {
	PurseCr          float64         `mapstructure:"purse_cr"`
	MaxSquadSize     int             `mapstructure:"max_squad_size"`
	MinSquadSize     int             `mapstructure:"min_squad_size"`
	OverseasLimit    int             `mapstructure:"overseas_limit"`
	RoleMin          map[string]int  `mapstructure:"role_min"`
	RoleMax          map[string]int  `mapstructure:"role_max"`
	MinSlotReserveCr float64         `mapstructure:"min_slot_reserve_cr"`
	Seed             uint64          `mapstructure:"seed"`
	Increments       []IncrementTier `mapstructure:"increments"`
	SetOrder         []string        `mapstructure:"set_order"`
}

// IncrementTier is one row of the bid increment table. A zero UpToCr marks
// the open-ended top tier.
type IncrementTier struct {
	UpToCr float64 `mapstructure:"up_to_cr"`
	StepCr float64 `mapstructure:"step_cr"`
}

// TeamConfig declares one franchise. A zero PurseCr falls back to the shared
// auction purse.
type TeamConfig struct {
	ID       string         `mapstructure:"id"`
	Name     string         `mapstructure:"name"`
	PurseCr  float64        `mapstructure:"purse_cr"`
	Strategy StrategyConfig `mapstructure:"strategy"`
}

// StrategyConfig tunes a franchise's bidding behavior.
type StrategyConfig struct {
	RiskAppetite  float64 `mapstructure:"risk_appetite"`
	NeedWeight    float64 `mapstructure:"need_weight"`
	StarPremium   float64 `mapstructure:"star_premium"`
	DomesticFocus float64 `mapstructure:"domestic_focus"`
	YouthFocus    float64 `mapstructure:"youth_focus"`
	MaxPurseShare float64 `mapstructure:"max_purse_share"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	v.SetEnvPrefix("AUCTIONSIM")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// setDefaults configures the standard franchise auction policy.
func setDefaults(v *viper.Viper) {
	v.SetDefault("auction.purse_cr", 120.0)
	v.SetDefault("auction.max_squad_size", 25)
	v.SetDefault("auction.min_squad_size", 18)
	v.SetDefault("auction.overseas_limit", 8)
	v.SetDefault("auction.role_min", map[string]int{
		"Batter": 6, "Bowler": 6, "AllRounder": 3, "WicketKeeper": 1,
	})
	v.SetDefault("auction.role_max", map[string]int{
		"Batter": 8, "Bowler": 8, "AllRounder": 6, "WicketKeeper": 3,
	})
	v.SetDefault("auction.min_slot_reserve_cr", 0.2)
	v.SetDefault("auction.seed", 1)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks that all configuration values are usable.
func (c *Config) Validate() error {
	a := c.Auction
	if a.PurseCr <= 0 {
		return fmt.Errorf("auction.purse_cr must be positive")
	}
	if a.MaxSquadSize < 1 {
		return fmt.Errorf("auction.max_squad_size must be at least 1")
	}
	if a.MinSquadSize < 0 || a.MinSquadSize > a.MaxSquadSize {
		return fmt.Errorf("auction.min_squad_size must be between 0 and max_squad_size")
	}
	if a.OverseasLimit < 0 {
		return fmt.Errorf("auction.overseas_limit must not be negative")
	}
	if a.MinSlotReserveCr < 0 {
		return fmt.Errorf("auction.min_slot_reserve_cr must not be negative")
	}
	roleMin := make(map[auction.Role]int, len(a.RoleMin))
	for name, n := range a.RoleMin {
		role, ok := roleFor(name)
		if !ok {
			return fmt.Errorf("auction.role_min: unknown role %q", name)
		}
		roleMin[role] = n
	}
	for name, ceiling := range a.RoleMax {
		role, ok := roleFor(name)
		if !ok {
			return fmt.Errorf("auction.role_max: unknown role %q", name)
		}
		if floor, ok := roleMin[role]; ok && floor > ceiling {
			return fmt.Errorf("auction.role_min.%s exceeds role_max.%s", name, name)
		}
	}
	for i, t := range a.Increments {
		if t.StepCr <= 0 {
			return fmt.Errorf("auction.increments[%d].step_cr must be positive", i)
		}
	}

	if len(c.Teams) < 2 {
		return fmt.Errorf("at least two teams are required")
	}
	seen := make(map[string]bool, len(c.Teams))
	for i, t := range c.Teams {
		if t.ID == "" {
			return fmt.Errorf("teams[%d].id is required", i)
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate team id %q", t.ID)
		}
		seen[t.ID] = true
		if t.PurseCr < 0 {
			return fmt.Errorf("teams[%d].purse_cr must not be negative", i)
		}
		s := t.Strategy
		for name, val := range map[string]float64{
			"risk_appetite":  s.RiskAppetite,
			"need_weight":    s.NeedWeight,
			"star_premium":   s.StarPremium,
			"domestic_focus": s.DomesticFocus,
			"youth_focus":    s.YouthFocus,
		} {
			if val < 0 || val > 1 {
				return fmt.Errorf("teams[%d].strategy.%s must be between 0 and 1", i, name)
			}
		}
		if s.MaxPurseShare < 0 || s.MaxPurseShare > 1 {
			return fmt.Errorf("teams[%d].strategy.max_purse_share must be between 0 and 1", i)
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, console")
	}
	return nil
}

// EngineConfig converts the policy section into the engine's config value.
func (c *Config) EngineConfig() auction.Config {
	a := c.Auction

	rules := auction.RosterRules{
		MaxSquadSize:   a.MaxSquadSize,
		MinSquadSize:   a.MinSquadSize,
		OverseasLimit:  a.OverseasLimit,
		RoleMin:        make(map[auction.Role]int, len(a.RoleMin)),
		RoleMax:        make(map[auction.Role]int, len(a.RoleMax)),
		MinSlotReserve: decimal.NewFromFloat(a.MinSlotReserveCr),
	}
	for name, n := range a.RoleMin {
		if role, ok := roleFor(name); ok {
			rules.RoleMin[role] = n
		}
	}
	for name, n := range a.RoleMax {
		if role, ok := roleFor(name); ok {
			rules.RoleMax[role] = n
		}
	}

	var increments auction.IncrementSchedule
	for _, t := range a.Increments {
		increments = append(increments, auction.IncrementTier{
			UpTo: decimal.NewFromFloat(t.UpToCr),
			Step: decimal.NewFromFloat(t.StepCr),
		})
	}
	if increments == nil {
		increments = auction.DefaultIncrementSchedule()
	}

	return auction.Config{
		Rules:      rules,
		Increments: increments,
		SetOrder:   append([]string(nil), a.SetOrder...),
		Seed:       a.Seed,
	}
}

// roleFor matches a configured role name case-insensitively. Viper lowercases
// map keys read from the config file.
func roleFor(name string) (auction.Role, bool) {
	for _, role := range auction.Roles() {
		if strings.EqualFold(name, string(role)) {
			return role, true
		}
	}
	return "", false
}

// Purse returns the purse for one team, falling back to the shared default.
func (c *Config) Purse(t TeamConfig) decimal.Decimal {
	if t.PurseCr > 0 {
		return decimal.NewFromFloat(t.PurseCr)
	}
	return decimal.NewFromFloat(c.Auction.PurseCr)
}

// Params converts a strategy section into engine strategy parameters. Zeroed
// sections fall back to the balanced default profile.
func (s StrategyConfig) Params() auction.StrategyParams {
	if s == (StrategyConfig{}) {
		return auction.DefaultStrategyParams()
	}
	return auction.StrategyParams{
		RiskAppetite:  s.RiskAppetite,
		NeedWeight:    s.NeedWeight,
		StarPremium:   s.StarPremium,
		DomesticFocus: s.DomesticFocus,
		YouthFocus:    s.YouthFocus,
		MaxPurseShare: s.MaxPurseShare,
	}
}
