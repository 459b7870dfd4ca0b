package app

import (
	"github.com/vk/pulsartime/internal/registry"
	"github.com/vk/pulsartime/modules/binary"
	"github.com/vk/pulsartime/modules/dispersion"
	"github.com/vk/pulsartime/modules/glitch"
	"github.com/vk/pulsartime/modules/jump"
	"github.com/vk/pulsartime/modules/phaseoffset"
	"github.com/vk/pulsartime/modules/solarwind"
	"github.com/vk/pulsartime/modules/spindown"
)

// coreModules is the definitive list of all component packages that are
// compiled into the pulsartime binary. Each of them also registers itself
// into registry.Default() on import.
var coreModules = []registry.Module{
	&jump.Module{},
	&solarwind.Module{},
	&dispersion.Module{},
	&binary.Module{},
	&phaseoffset.Module{},
	&spindown.Module{},
	&glitch.Module{},
}
