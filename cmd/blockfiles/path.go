package main

import (
	"fmt"

	"github.com/AntiLogi/WaykiChain/infrastructure/config"
	"github.com/AntiLogi/WaykiChain/infrastructure/db/blockfiles"
)

func printPath(cfg *config.Config, conf *pathConfig) error {
	store := blockfiles.New(cfg.DataDir)
	fmt.Println(store.SegmentPath(blockfiles.Kind(conf.Kind), conf.Segment))
	return nil
}
