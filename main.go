// The main package for the flagfetch executable.
package main

import (
	"github.com/JakeFAU/flagfetch/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
