package app

import (
	"github.com/vk/bindery/internal/registry"
	"github.com/vk/bindery/packs/core"
	"github.com/vk/bindery/packs/verbatim"
)

// corePacks is the definitive list of all packs that are compiled into the
// bindery binary.
var corePacks = []registry.Pack{
	&core.Pack{},
	&verbatim.Pack{},
}
