package blockstorage

import (
	"github.com/AntiLogi/WaykiChain/infrastructure/logger"
)

var log = logger.RegisterSubSystem("BSTR")
