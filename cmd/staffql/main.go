package main

import (
	"fmt"
	"os"

	"github.com/aussiebroadwan/staffql/internal/staffql/app"
	"github.com/urfave/cli/v2"
)

// Set via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newCLI().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newCLI() *cli.App {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path to a YAML config file; STAFFQL_* environment variables override it",
		EnvVars: []string{"STAFFQL_CONFIG"},
	}

	return &cli.App{
		Name:    "staffql",
		Usage:   "GraphQL API for user accounts and employee records",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the GraphQL server",
				Flags:  []cli.Flag{configFlag},
				Action: serve,
			},
			{
				Name:   "check",
				Usage:  "load and validate the configuration, then exit",
				Flags:  []cli.Flag{configFlag},
				Action: check,
			},
		},
		DefaultCommand: "serve",
	}
}

func serve(c *cli.Context) error {
	cfg, err := app.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}

	if version != "dev" {
		app.BuildVersion = version
	}

	application, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Run()
}

func check(c *cli.Context) error {
	cfg, err := app.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "config ok: env=%s store=%s port=%d\n", cfg.Env, cfg.Store.Driver, cfg.HTTP.Port)
	return nil
}
