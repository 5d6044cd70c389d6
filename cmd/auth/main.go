// auth: интерактивный логин одной сессии; база TDLib остаётся в каталоге
// сессии, и userbot потом поднимает её без промптов.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/larriantoniy/tg_support_watcher/internal/adapters/tg"
	"github.com/larriantoniy/tg_support_watcher/internal/config"
)

func main() {
	session := flag.String("session", "", "session directory name under base_dir")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if *session == "" {
		fmt.Fprintln(os.Stderr, "usage: auth -session <name> [-config path]")
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).
		With("session", *session)

	sc, err := config.NewJSONSessionConfigRepo(cfg.BaseDir).GetSessionConfig(context.Background(), *session)
	if err != nil {
		logger.Error("session config", "error", err)
		os.Exit(1)
	}

	cli, err := tg.NewClient(cfg.ApiID, cfg.ApiHash, cfg.BaseDir, sc, logger, tg.ClientModeAuth)
	if err != nil {
		logger.Error("authorization failed", "error", err)
		os.Exit(1)
	}
	defer cli.Close()

	logger.Info("session authorized", "self_id", cli.SelfID())
}
