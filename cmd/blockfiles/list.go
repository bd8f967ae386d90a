package main

import (
	"fmt"

	"github.com/AntiLogi/WaykiChain/domain/blockstorage"
	"github.com/AntiLogi/WaykiChain/domain/consensus/model/externalapi"
	"github.com/AntiLogi/WaykiChain/infrastructure/config"
	"github.com/AntiLogi/WaykiChain/infrastructure/db/blockindex"
	"github.com/davecgh/go-spew/spew"
)

func list(cfg *config.Config, conf *listConfig) error {
	index, err := blockindex.Open(blockstorage.IndexPath(cfg.DataDir))
	if err != nil {
		return err
	}
	defer index.Close()

	count := 0
	err = index.ForEach(func(blockHash *externalapi.DomainHash, entry *blockindex.Entry) error {
		count++
		if conf.Dump {
			spew.Dump(entry)
			return nil
		}
		fmt.Printf("%s height=%d data=%s undo=%s\n",
			blockHash, entry.Header.Height, entry.DataPosition, entry.UndoPosition)
		return nil
	})
	if err != nil {
		return err
	}
	log.Infof("Listed %d blocks", count)
	return nil
}
