package version

import (
	"github.com/pterm/pterm"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/build"
)

// Cmd prints the build information. Empty fields are skipped.
type Cmd struct{}

// Run executes the version command
func (c *Cmd) Run() error {
	info := build.Current()

	pterm.Printfln("version: %s", info.Version)
	if info.Revision != "" {
		pterm.Printfln("revision: %s", info.Revision)
	}
	if info.Time != "" {
		pterm.Printfln("time: %s", info.Time)
	}
	if info.Modified {
		pterm.Printfln("modified: %t", info.Modified)
	}
	return nil
}
