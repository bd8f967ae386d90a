package ldb

import (
	"github.com/AntiLogi/WaykiChain/infrastructure/logger"
)

var log = logger.RegisterSubSystem("BIDX")
