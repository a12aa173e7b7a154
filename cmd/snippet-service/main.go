package main

import (
	"flag"
	"os"

	"github.com/jhuonas/ai-snippet-service/snippetservice"
)

func main() {
	// Optional build-target flag override (local | cloud-dev | cloud)
	buildTarget := flag.String("build-target", "", "Override BUILD_TARGET (local, cloud-dev, cloud)")
	flag.Parse()

	if err := snippetservice.Run(snippetservice.Options{BuildTarget: *buildTarget}); err != nil {
		os.Exit(1)
	}
}
