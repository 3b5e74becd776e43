// Command mesh4d extrudes closed 3D surfaces into 4D tetrahedral meshes.
package main

import (
	"os"

	"github.com/devdye/4DMeshTool/cmd/mesh4d/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
