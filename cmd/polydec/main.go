// Command polydec reduces the number of points in polyline meshes.
package main

import (
	"os"

	"github.com/gogpu/polydec/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
