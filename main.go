// Package main is the entry point for the pyreqs CLI.
//
// pyreqs is a build-time helper for packaging pipelines: it reads an
// installed Python package's metadata directory and reports the runtime
// dependencies actually required in the target environment, for inclusion
// in a generated package recipe.
package main

import "github.com/ajxudir/pyreqs/cmd"

// main delegates all command parsing and execution to the cmd package.
func main() {
	cmd.Execute()
}
