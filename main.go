// Idiomatic entrypoint for the Cobra CLI; delegates to the root command in cmd/rjmc/root.go.
package main

import (
	"github.com/robjenks/rjm-pipeline/cmd/rjmc"
)

func main() {
	rjmc.Execute()
}
