// Package cmd implements the bio-pauses commands.
package cmd

import (
	"github.com/grailbio/base/log"
	"v.io/x/lib/cmdline"
)

func newCmdRoot() *cmdline.Command {
	return &cmdline.Command{
		Name:     "bio-pauses",
		Short:    "Tools for RNA polymerase pausing analyses",
		LookPath: false,
		Children: []*cmdline.Command{
			newCmdBedToTrack(),
			newCmdWigToTrack(),
			newCmdMaxima(),
			newCmdPausesToBed(),
			newCmdPausesToTabs(),
			newCmdTabsToPauses(),
			newCmdSgdGeneToTss(),
			newCmdFakeGene(),
			newCmdFastaToSizes(),
			newCmdBamToSizes(),
			newCmdFastaReformat(),
			newCmdSetAnnotationSize(),
			newCmdMoveAnnotations(),
		},
	}
}

// Run parses the command line and runs the selected command. Nothing runs
// when enabled is false.
func Run(enabled bool) {
	if !enabled {
		log.Debug.Printf("bio-pauses: disabled")
		return
	}
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(newCmdRoot())
}
