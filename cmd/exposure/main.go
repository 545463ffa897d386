// Command exposure runs the exposure lighting scene in a window or headless.
package main

import (
	"os"

	"orbitlight/internal/runner"
)

func main() {
	os.Exit(runner.Main(os.Args[1:], "exposure", os.Stderr))
}
