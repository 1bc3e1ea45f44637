package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/mukulpathak/iplauction/auction"
	"github.com/mukulpathak/iplauction/config"
	"github.com/mukulpathak/iplauction/logger"
	"github.com/mukulpathak/iplauction/roster"
)

func main() {
	app := &cli.App{
		Name:  "auctionsim",
		Usage: "simulate an IPL-style player auction",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "path to the configuration file",
			},
			&cli.StringFlag{
				Name:     "players",
				Usage:    "path to the player roster (.csv or .json)",
				Required: true,
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run the full auction and print a summary",
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:  "seed",
						Usage: "override the configured simulation seed",
					},
				},
				Action: runAuction,
			},
			{
				Name:   "validate",
				Usage:  "check the configuration and roster, then exit",
				Action: validateInputs,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadInputs(c *cli.Context) (*config.Config, *roster.Roster, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	ros, err := roster.Load(c.String("players"))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid roster: %w", err)
	}
	return cfg, ros, nil
}

func validateInputs(c *cli.Context) error {
	cfg, ros, err := loadInputs(c)
	if err != nil {
		return err
	}
	fmt.Printf("config ok: %d teams\n", len(cfg.Teams))
	retained := 0
	for _, players := range ros.Retained {
		retained += len(players)
	}
	fmt.Printf("roster ok: %d in pool, %d retained\n", len(ros.Pool), retained)
	return nil
}

func runAuction(c *cli.Context) error {
	cfg, ros, err := loadInputs(c)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	engineCfg := cfg.EngineConfig()
	if c.IsSet("seed") {
		engineCfg.Seed = c.Uint64("seed")
	}

	teams := make([]auction.TeamSetup, 0, len(cfg.Teams))
	for _, tc := range cfg.Teams {
		teams = append(teams, auction.TeamSetup{
			ID:       tc.ID,
			Name:     tc.Name,
			Budget:   cfg.Purse(tc),
			Strategy: auction.NewValuationStrategy(tc.ID, tc.Strategy.Params(), engineCfg.Seed),
			Retained: ros.Retained[tc.ID],
		})
	}

	sim, err := auction.New(engineCfg, teams, ros.Pool, log)
	if err != nil {
		return err
	}
	if err := sim.Start(); err != nil {
		return err
	}
	if err := sim.Run(); err != nil {
		log.Error("auction run failed", zap.Error(err))
		return err
	}

	printSummary(sim)
	return nil
}

func printSummary(sim *auction.Auction) {
	outcomes := sim.History().Outcomes()

	fmt.Printf("\n%-24s %-12s %10s %10s  %-8s %s\n",
		"PLAYER", "ROLE", "BASE(Cr)", "FINAL(Cr)", "STATUS", "TEAM")
	for _, o := range outcomes {
		final := "-"
		if o.Status == auction.StatusSold {
			final = o.FinalPrice.StringFixed(2)
		}
		fmt.Printf("%-24s %-12s %10s %10s  %-8s %s\n",
			o.PlayerName, o.Role, o.BasePrice.StringFixed(2), final, o.Status, o.TeamID)
	}

	fmt.Printf("\n%-8s %12s %8s %9s\n", "TEAM", "PURSE LEFT", "SQUAD", "OVERSEAS")
	for _, t := range sim.Teams() {
		fmt.Printf("%-8s %12s %8d %9d\n",
			t.ID, t.BudgetRemaining.StringFixed(2), t.SquadSize, t.OverseasCount)
	}

	ranking := auction.RankPurchases(outcomes, nil)
	if len(ranking.SortedTeams) > 0 {
		fmt.Println("\nTop buys:")
		for _, teamID := range ranking.SortedTeams {
			top := ranking.TopPurchase[teamID]
			fmt.Printf("  %d. %s — %s at %s Cr\n",
				ranking.Ranks[teamID], teamID, top.PlayerName, top.FinalPrice.StringFixed(2))
		}
	}

	if digest, err := sim.StateDigest(); err == nil {
		fmt.Printf("\nstate digest: %s\n", digest)
	}
}
