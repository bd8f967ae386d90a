package main

import (
	"encoding/hex"
	"fmt"

	"github.com/AntiLogi/WaykiChain/domain/consensus/model/externalapi"
	"github.com/AntiLogi/WaykiChain/infrastructure/config"
	"github.com/AntiLogi/WaykiChain/infrastructure/db/blockfiles"
	"github.com/davecgh/go-spew/spew"
)

func read(cfg *config.Config, conf *readConfig) error {
	store := blockfiles.New(cfg.DataDir)
	position := externalapi.DiskPosition{SegmentIndex: conf.Segment, Offset: conf.Offset}
	data, err := blockfiles.ReadRecord(store, blockfiles.Kind(conf.Kind), cfg.ActiveNetParams.Magic, position)
	if err != nil {
		return err
	}

	if conf.Dump {
		spew.Dump(data)
		return nil
	}
	fmt.Println(hex.EncodeToString(data))
	return nil
}
