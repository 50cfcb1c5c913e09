package main

import (
	"context"
	"fmt"

	"billed/internal/db"
	"billed/internal/seed"
	"billed/internal/store"

	"github.com/k0kubun/pp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with demo users and bills",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Dump the loaded config before seeding",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if c.Bool("verbose") {
			pp.Println(cfg)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		usersRepo := store.NewUserRepository(pool)
		billsRepo := store.NewBillRepository(pool)

		logrus.Info("Seeding users...")
		if err := seed.SeedUsers(ctx, usersRepo); err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}

		logrus.Info("Seeding bills...")
		if err := seed.SeedBills(ctx, billsRepo); err != nil {
			return fmt.Errorf("failed to seed bills: %w", err)
		}

		logrus.Info("Seed complete")

		return nil
	},
}
