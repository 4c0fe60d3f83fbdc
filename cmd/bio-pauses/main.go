package main

// bio-pauses converts between the file formats of RNA polymerase pausing
// analyses.  Run "bio-pauses help" for the list of commands.

import "github.com/grailbio/pausetools/cmd/bio-pauses/cmd"

func main() {
	cmd.Run(true)
}
