package app

import (
	"github.com/vk/docpubgo/internal/pipeline"
	"github.com/vk/docpubgo/modules/command"
	"github.com/vk/docpubgo/modules/copytree"
	"github.com/vk/docpubgo/modules/linkcheck"
	"github.com/vk/docpubgo/modules/switcher"
)

// coreModules is the default step set compiled into the binary.
var coreModules = []pipeline.Module{
	&command.Module{},
	&copytree.Module{},
	&switcher.Module{},
	&linkcheck.Module{},
}
