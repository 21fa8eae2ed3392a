package main

import (
	"fmt"
	"os"

	"tito/internal/cli"
	"tito/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	env := getEnvironment()
	factory := NewRepositoryFactory(env, cfg)

	repo, err := factory.CreateRepository()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating repository: %v\n", err)
		os.Exit(1)
	}
	defer repo.Close()

	app := cli.NewApp(cfg, repo)
	root := cli.NewRootCommand(app, cfg)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
