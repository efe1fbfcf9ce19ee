// Command graphscene turns a CSV edge list into a 3D node-link scene.
//
// Usage:
//
//	graphscene build -input edges.csv [-output graph.scene.json] [flags]
//	graphscene inspect -scene graph.scene.json [-query '{ scene { pointCount } }']
//	graphscene version
package main

import (
	"fmt"
	"io"
	"os"
)

// Version is set at link time
var Version = "dev"

// Exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitUsage
	}

	switch args[0] {
	case "build":
		return buildCommand(args[1:], stdout, stderr)
	case "inspect":
		return inspectCommand(args[1:], stdout, stderr)
	case "version", "-version", "--version":
		fmt.Fprintf(stdout, "graphscene %s\n", Version)
		return exitOK
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "graphscene: unknown command %q\n\n", args[0])
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `Usage: graphscene <command> [flags]

Commands:
  build     read a CSV edge list and export a 3D scene
  inspect   query an exported JSON scene with GraphQL
  version   print the version
  help      show this help

Run "graphscene <command> -h" for command flags.
`)
}
