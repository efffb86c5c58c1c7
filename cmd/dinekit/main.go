// Command dinekit 是餐厅推荐的交互式命令行。
//
//	dinekit -config config.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rushteam/dinekit/config"
	"github.com/rushteam/dinekit/engine"
	"github.com/rushteam/dinekit/pkg/logging"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "配置文件路径（默认查找 DINEKIT_CONFIG 与 ./config.yaml）")
	flag.Parse()

	if err := run(configPath); err != nil {
		fmt.Fprintln(os.Stderr, "dinekit:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logging.Init(cfg.Log)
	logger := logging.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Hey, welcome to dinekit!")
	fmt.Println("Please wait while the recommendation engine loads...")

	rec, err := engine.Load(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := rec.Close(); err != nil {
			logger.Warn().Err(err).Msg("close recommender")
		}
	}()
	fmt.Println("The recommendation engine is ready.")

	return newShell(rec, os.Stdin, os.Stdout, cfg.Recommend.DisplayCount).Run(ctx)
}
