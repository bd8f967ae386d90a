package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/AntiLogi/WaykiChain/infrastructure/db/blockfiles"
	"github.com/AntiLogi/WaykiChain/infrastructure/logger"
	"github.com/btcsuite/btcutil"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	defaultConfigFilename = "wiccd.conf"
	defaultDataDirname    = "data"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "wiccd.log"
	defaultErrLogFilename = "wiccd_err.log"
	defaultLogLevel       = "info"

	// minMaxSegmentSize keeps a segment large enough to hold a framed
	// header-sized record.
	minMaxSegmentSize = 1024
)

var (
	// DefaultHomeDir is the default home directory for wiccd.
	DefaultHomeDir = btcutil.AppDataDir("wiccd", false)

	defaultConfigFile = filepath.Join(DefaultHomeDir, defaultConfigFilename)
	defaultDataDir    = filepath.Join(DefaultHomeDir, defaultDataDirname)
	defaultLogDir     = filepath.Join(DefaultHomeDir, defaultLogDirname)
)

// Flags defines the configuration options for block storage.
//
// See LoadConfig for details on the configuration load process.
type Flags struct {
	ConfigFile     string `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir        string `short:"b" long:"datadir" description:"Directory to store data"`
	LogDir         string `long:"logdir" description:"Directory to log output."`
	DebugLevel     string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	MaxSegmentSize uint32 `long:"maxsegmentsize" description:"Size in bytes at which a block or undo segment file is closed and a new one is started"`
	NetworkFlags
}

// Config defines the resolved configuration.
type Config struct {
	*Flags
}

// LogFile returns the path of the main log file.
func (cfg *Config) LogFile() string {
	return filepath.Join(cfg.LogDir, defaultLogFilename)
}

// ErrLogFile returns the path of the warnings and errors log file.
func (cfg *Config) ErrLogFile() string {
	return filepath.Join(cfg.LogDir, defaultErrLogFilename)
}

// DefaultFlags returns the flags every option falls back to.
func DefaultFlags() *Flags {
	return &Flags{
		ConfigFile:     defaultConfigFile,
		DataDir:        defaultDataDir,
		LogDir:         defaultLogDir,
		DebugLevel:     defaultLogLevel,
		MaxSegmentSize: blockfiles.DefaultMaxSegmentSize,
	}
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(DefaultHomeDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but they variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

func newConfigParser(cfgFlags *Flags, options flags.Options) *flags.Parser {
	return flags.NewParser(cfgFlags, options)
}

// LoadConfig initializes and parses the config using a config file and
// command line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
//
// A missing config file is not an error. Parsing stops at the first
// non-option argument, which is returned along with everything after it.
func LoadConfig(args []string) (*Config, []string, error) {
	cfgFlags := DefaultFlags()

	// Pre-parse the command line options to see if an alternative config
	// file was specified. Errors aside from the help message are caught by
	// the final parse below.
	preCfg := *cfgFlags
	preParser := newConfigParser(&preCfg, flags.HelpFlag|flags.PassDoubleDash|flags.PassAfterNonOption)
	_, err := preParser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil, nil, err
		}
	}

	parser := newConfigParser(cfgFlags, flags.HelpFlag|flags.PassDoubleDash|flags.PassAfterNonOption)
	configFile := cleanAndExpandPath(preCfg.ConfigFile)
	err = flags.NewIniParser(parser).ParseFile(configFile)
	if err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, nil, errors.Wrapf(err, "error parsing config file %s", configFile)
		}
	}

	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		return nil, nil, err
	}

	cfg := &Config{Flags: cfgFlags}
	err = cfg.resolve()
	if err != nil {
		return nil, nil, err
	}
	return cfg, remainingArgs, nil
}

// resolve validates the parsed flags and derives the network specific paths.
func (cfg *Config) resolve() error {
	err := cfg.ResolveNetwork()
	if err != nil {
		return err
	}

	if cfg.MaxSegmentSize < minMaxSegmentSize {
		return errors.Errorf("the specified max segment size %d is smaller than the minimum %d",
			cfg.MaxSegmentSize, minMaxSegmentSize)
	}

	if cfg.DebugLevel != "show" {
		for _, levelPair := range strings.Split(cfg.DebugLevel, ",") {
			level := levelPair
			if i := strings.IndexByte(levelPair, '='); i >= 0 {
				level = levelPair[i+1:]
			}
			if _, ok := logger.LevelFromString(level); !ok {
				return errors.Errorf("the specified debug level [%s] is invalid", cfg.DebugLevel)
			}
		}
	}

	// Append the network type to the data and log directories so they are
	// namespaced per network.
	cfg.DataDir = filepath.Join(cleanAndExpandPath(cfg.DataDir), cfg.ActiveNetParams.DataDirName)
	cfg.LogDir = filepath.Join(cleanAndExpandPath(cfg.LogDir), cfg.ActiveNetParams.DataDirName)
	return nil
}
