package app

import (
	"github.com/vk/depsflow/internal/registry"
	"github.com/vk/depsflow/modules/logmsg"
	"github.com/vk/depsflow/modules/sleep"
)

// coreModules is the definitive list of all handler modules compiled into
// the depsflow binary.
var coreModules = []registry.Module{
	&logmsg.Module{},
	&sleep.Module{},
}
