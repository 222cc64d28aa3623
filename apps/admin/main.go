package main

import (
	"context"
	"log"
	"os"

	"github.com/trezcool/portal/core"
	"github.com/trezcool/portal/core/schedule"
	"github.com/trezcool/portal/storage/database"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	os.Exit(start())
}

func start() int {
	conf := core.NewConfig()

	// set up DB
	ctx := context.Background()
	repos, err := database.OpenRepositories(ctx, conf)
	errAndDie(err)
	defer func() {
		if err := repos.Close(ctx); err != nil {
			logger.Printf("closing database: %s", err)
		}
	}()

	// start CLI
	cli := commandLine{
		conf:     conf,
		students: repos.Students,
		validate: core.NewValidator(core.NewTranslator()),
		opts:     schedule.OptionsFromConfig(conf, nil),
		db:       repos.SQL,
		out:      os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		return 1
	}
	return 0
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
