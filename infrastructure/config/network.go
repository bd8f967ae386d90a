package config

import (
	"github.com/pkg/errors"
)

// NetworkParams holds the parameters of a network that matter to block
// storage.
type NetworkParams struct {
	Name string

	// Magic frames every record written to the block and undo segments.
	Magic [4]byte

	// DataDirName is the data directory subdirectory of the network.
	DataDirName string
}

// MainNetParams are the parameters of the main network.
var MainNetParams = NetworkParams{
	Name:        "mainnet",
	Magic:       [4]byte{0xff, 0x42, 0x1d, 0x1a},
	DataDirName: "main",
}

// TestNetParams are the parameters of the test network.
var TestNetParams = NetworkParams{
	Name:        "testnet",
	Magic:       [4]byte{0xfd, 0x7d, 0x5c, 0xd7},
	DataDirName: "testnet",
}

// RegressionNetParams are the parameters of the regression test network.
var RegressionNetParams = NetworkParams{
	Name:        "regtest",
	Magic:       [4]byte{0xfe, 0xfa, 0xd3, 0xc6},
	DataDirName: "regtest",
}

// NetworkFlags holds the network configuration, that is which network is selected.
type NetworkFlags struct {
	TestNet         bool `long:"testnet" description:"Use the test network"`
	RegressionTest  bool `long:"regtest" description:"Use the regression test network"`
	ActiveNetParams *NetworkParams
}

// ResolveNetwork sets ActiveNetParams according to the network flags. It
// returns an error if more than one network was selected.
func (networkFlags *NetworkFlags) ResolveNetwork() error {
	// default net is main net
	networkFlags.ActiveNetParams = &MainNetParams
	numNets := 0
	if networkFlags.TestNet {
		numNets++
		networkFlags.ActiveNetParams = &TestNetParams
	}
	if networkFlags.RegressionTest {
		numNets++
		networkFlags.ActiveNetParams = &RegressionNetParams
	}
	if numNets > 1 {
		return errors.New("Multiple networks parameters (testnet, regtest) cannot be used " +
			"together. Please choose only one network")
	}
	return nil
}
