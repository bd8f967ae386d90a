package main

import (
	"fmt"

	"github.com/AntiLogi/WaykiChain/domain/consensus/model/externalapi"
	"github.com/AntiLogi/WaykiChain/domain/consensus/utils/consensushashing"
	"github.com/pkg/errors"
)

func parseHashFlag(name string, value string) (externalapi.DomainHash, error) {
	if value == "" {
		return externalapi.DomainHash{}, nil
	}
	hash, err := externalapi.NewDomainHashFromString(value)
	if err != nil {
		return externalapi.DomainHash{}, errors.Wrapf(err, "invalid --%s", name)
	}
	return *hash, nil
}

func hashHeader(conf *hashHeaderConfig) error {
	prevBlockHash, err := parseHashFlag("prev", conf.Prev)
	if err != nil {
		return err
	}
	merkleRootHash, err := parseHashFlag("merkle", conf.Merkle)
	if err != nil {
		return err
	}

	header := &externalapi.DomainBlockHeader{
		Version:        conf.Version,
		PrevBlockHash:  prevBlockHash,
		MerkleRootHash: merkleRootHash,
		Timestamp:      conf.Time,
		Nonce:          conf.Nonce,
		Height:         conf.Height,
		Fuel:           conf.Fuel,
		FuelRate:       conf.FuelRate,
	}
	fmt.Println(consensushashing.HeaderHash(header))
	return nil
}
