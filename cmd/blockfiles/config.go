package main

import (
	"fmt"
	"os"

	"github.com/AntiLogi/WaykiChain/infrastructure/config"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	pathSubCmd       = "path"
	readSubCmd       = "read"
	hashHeaderSubCmd = "hashheader"
	listSubCmd       = "list"
)

type pathConfig struct {
	Kind    string `long:"kind" short:"k" description:"Segment kind" choice:"blk" choice:"rev" default:"blk"`
	Segment uint32 `long:"segment" short:"s" description:"Segment index" required:"true"`
}

type readConfig struct {
	Kind    string `long:"kind" short:"k" description:"Segment kind" choice:"blk" choice:"rev" default:"blk"`
	Segment uint32 `long:"segment" short:"s" description:"Segment index" required:"true"`
	Offset  uint32 `long:"offset" short:"o" description:"Offset of the record data, as returned when it was stored" required:"true"`
	Dump    bool   `long:"dump" description:"Dump the record with spew instead of printing it as hex"`
}

type hashHeaderConfig struct {
	Version  int32  `long:"version" description:"Block version"`
	Prev     string `long:"prev" description:"Previous block hash (hex, display order)"`
	Merkle   string `long:"merkle" description:"Merkle root hash (hex, display order)"`
	Time     uint32 `long:"time" description:"Block timestamp"`
	Nonce    uint32 `long:"nonce" description:"Block nonce"`
	Height   uint32 `long:"height" description:"Block height"`
	Fuel     int32  `long:"fuel" description:"Block fuel"`
	FuelRate int32  `long:"fuelrate" description:"Block fuel rate"`
}

type listConfig struct {
	Dump bool `long:"dump" description:"Dump every index entry with spew"`
}

// parseCommandLine loads the global options, which come before the
// sub-command, then parses the sub-command and its options.
func parseCommandLine() (cfg *config.Config, subCommand string, subCommandConfig interface{}) {
	cfg, remainingArgs, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Println(err)
			os.Exit(0)
		}
		printErrorAndExit(err)
	}

	parser := flags.NewParser(&struct{}{}, flags.PrintErrors|flags.HelpFlag)

	pathConf := &pathConfig{}
	parser.AddCommand(pathSubCmd, "Prints the path of a segment file",
		"Prints the path of the block or undo segment file with the given index", pathConf)

	readConf := &readConfig{}
	parser.AddCommand(readSubCmd, "Reads a stored record",
		"Reads the block or undo record whose data starts at the given position", readConf)

	hashHeaderConf := &hashHeaderConfig{}
	parser.AddCommand(hashHeaderSubCmd, "Hashes a block header",
		"Prints the double SHA-256 hash of the block header built from the given fields", hashHeaderConf)

	listConf := &listConfig{}
	parser.AddCommand(listSubCmd, "Lists indexed blocks",
		"Lists every block in the block index along with the positions of its data", listConf)

	_, err = parser.ParseArgs(remainingArgs)
	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	if parser.Active == nil {
		printErrorAndExit(errors.New("a sub-command is required"))
	}

	switch parser.Active.Name {
	case pathSubCmd:
		return cfg, pathSubCmd, pathConf
	case readSubCmd:
		return cfg, readSubCmd, readConf
	case hashHeaderSubCmd:
		return cfg, hashHeaderSubCmd, hashHeaderConf
	case listSubCmd:
		return cfg, listSubCmd, listConf
	}
	return cfg, parser.Active.Name, nil
}

func printErrorAndExit(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}
