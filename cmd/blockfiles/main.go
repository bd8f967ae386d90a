package main

import (
	"github.com/AntiLogi/WaykiChain/infrastructure/logger"
	"github.com/pkg/errors"
)

func main() {
	cfg, subCmd, subCmdConfig := parseCommandLine()

	logger.InitLog(cfg.LogFile(), cfg.ErrLogFile())
	defer logger.BackendLog.Close()

	if cfg.DebugLevel == "show" {
		for _, subsystem := range logger.SupportedSubsystems() {
			log.Infof("Supported subsystem: %s", subsystem)
		}
		return
	}
	err := logger.SetLogLevels(cfg.DebugLevel)
	if err != nil {
		printErrorAndExit(err)
	}

	switch subCmd {
	case pathSubCmd:
		err = printPath(cfg, subCmdConfig.(*pathConfig))
	case readSubCmd:
		err = read(cfg, subCmdConfig.(*readConfig))
	case hashHeaderSubCmd:
		err = hashHeader(subCmdConfig.(*hashHeaderConfig))
	case listSubCmd:
		err = list(cfg, subCmdConfig.(*listConfig))
	default:
		err = errors.Errorf("Unknown sub-command '%s'\n", subCmd)
	}

	if err != nil {
		logger.BackendLog.Close()
		printErrorAndExit(err)
	}
}
