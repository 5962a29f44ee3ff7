package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"BlockJack/config"
	"BlockJack/internal/display"
	"BlockJack/internal/game/engine"
	"BlockJack/internal/game/table"
	"BlockJack/internal/utils"
)

type PlayCmd struct {
	NoClear bool `help:"Do not clear the screen between frames"`
	NoPause bool `help:"Do not wait for Enter after each result"`
}

func (p *PlayCmd) Run(cli *CLI) error {
	// 终端模式下日志写文件，避免打乱牌桌
	f, err := os.OpenFile(config.C.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	logger := utils.Init(config.C.Log.Level, f)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	term := display.NewTerminal(os.Stdin, os.Stdout)
	term.Clear = !p.NoClear
	term.Pause = !p.NoPause

	t := table.New("local", config.C.Game.StartingBalance)
	// 每个事件也记一条 debug 日志，方便对照牌局回放
	trace := engine.PresenterFunc(func(ev engine.Event, snap table.Snapshot) {
		logger.Debug("event",
			"kind", ev.Kind,
			"state", snap.State,
			"player", snap.PlayerValue,
			"dealer", snap.DealerValue,
			"bet", snap.CurrentBet,
			"balance", snap.PlayerBalance,
		)
	})
	eng := engine.NewEngine(t, term, engine.Presenters{term, trace},
		engine.WithSource(sourceFactory(config.C.Game.Seed)()),
		engine.WithReshuffleThreshold(config.C.Game.ReshuffleThreshold),
		engine.WithLogger(logger.WithPrefix("ENGINE")),
	)

	logger.Info("session start", "balance", t.Player.Balance, "seed", config.C.Game.Seed)
	term.Welcome(t.Player.Balance)

	balance, err := eng.Run(ctx)
	if err != nil {
		logger.Error("session ended early", "err", err, "balance", balance)
		return err
	}
	return nil
}
