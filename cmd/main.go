package main

import (
	"fmt"
	"math/rand"
	"os"
	"sync/atomic"

	"BlockJack/config"
	"BlockJack/internal/game/dealer"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Config   string `short:"c" help:"Path to config file" default:"${config_path}"`
	Seed     *int64 `help:"Fixed shuffle seed, for reproducible games"`
	LogLevel string `help:"Override log level (debug, info, warn, error)"`
	Balance  int    `help:"Override starting balance"`

	Play  PlayCmd  `cmd:"" default:"1" help:"Play blackjack in the terminal"`
	Serve ServeCmd `cmd:"" help:"Run the websocket table server"`
}

// load reads the config file and applies flag overrides on top of it.
func (c *CLI) load() error {
	path := c.Config
	if path == config.DefaultPath {
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}
	if err := config.Load(path); err != nil {
		return err
	}
	if c.Seed != nil {
		config.C.Game.Seed = *c.Seed
	}
	if c.LogLevel != "" {
		config.C.Log.Level = c.LogLevel
	}
	if c.Balance != 0 {
		config.C.Game.StartingBalance = c.Balance
	}
	return config.C.Validate()
}

// sourceFactory hands out one RNG per deck owner. With a seed every owner
// gets seed, seed+1, ... so a run is reproducible.
func sourceFactory(seed int64) func() dealer.Source {
	if seed == 0 {
		return func() dealer.Source { return dealer.CryptoSource{} }
	}
	var n atomic.Int64
	return func() dealer.Source {
		return rand.New(rand.NewSource(seed + n.Add(1) - 1))
	}
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Single-deck blackjack against the house"),
		kong.UsageOnError(),
		kong.Vars{"config_path": config.DefaultPath},
	)
	if err := cli.load(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		ctx.Exit(1)
	}
	ctx.FatalIfErrorf(ctx.Run(&cli))
}
