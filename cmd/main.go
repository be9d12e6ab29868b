package main

import (
	"Dishcovery-Backend/cmd/config"
	migration "Dishcovery-Backend/cmd/database/migrate"
	"Dishcovery-Backend/internal/utils"
	"Dishcovery-Backend/pkg/auth"
	"Dishcovery-Backend/pkg/credential"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2/log"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

var flagConfig *cli.StringFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Value:   utils.DefaultConfigPath,
	Usage:   "Path to the YAML config file",
	EnvVars: []string{"DISHCOVERY_CONFIG"},
}

var flagMigrate *cli.BoolFlag = &cli.BoolFlag{
	Name:  "migrate",
	Usage: "Run database migrations before serving",
}

func setup(cCtx *cli.Context) (*gorm.DB, error) {
	if err := utils.LoadConfig(cCtx.String(flagConfig.Name)); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return config.ConnectDB()
}

func migrate(ctx context.Context, db *gorm.DB) error {
	if err := migration.Migrate(db); err != nil {
		return err
	}
	return migration.SeedRootAdmin(ctx, db, auth.NewPolicyFromConfig(), credential.NewHasherFromConfig(), migration.RootAdmin{
		Email:    utils.GetConfig("ROOT_ADMIN_EMAIL"),
		Username: utils.GetConfig("ROOT_ADMIN_USERNAME"),
		Password: utils.GetConfig("ROOT_ADMIN_PASSWORD"),
	})
}

func main() {
	app := &cli.App{
		Name:           "dishcovery",
		Usage:          "recipe sharing backend",
		DefaultCommand: "serve",
		Flags: []cli.Flag{
			flagConfig,
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the HTTP server",
				Flags: []cli.Flag{
					flagMigrate,
				},
				Action: func(cCtx *cli.Context) error {
					db, err := setup(cCtx)
					if err != nil {
						return err
					}
					if cCtx.Bool(flagMigrate.Name) {
						if err := migrate(cCtx.Context, db); err != nil {
							return err
						}
					}

					app, err := config.NewApp(db)
					if err != nil {
						return err
					}

					ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt, syscall.SIGTERM)
					defer stop()
					go func() {
						<-ctx.Done()
						log.Info("shutting down")
						if err := app.Shutdown(); err != nil {
							log.Errorf("shutdown: %v", err)
						}
					}()

					return app.Listen(":" + utils.GetConfig("APP_PORT"))
				},
			},
			{
				Name:  "migrate",
				Usage: "Migrate the database schema and seed the root admin",
				Action: func(cCtx *cli.Context) error {
					db, err := setup(cCtx)
					if err != nil {
						return err
					}
					return migrate(cCtx.Context, db)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
