package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dd0wney/cluso-graphscene/pkg/scene"
	"github.com/dd0wney/cluso-graphscene/pkg/scenequery"
)

func inspectCommand(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)

	scenePath := fs.String("scene", "", "JSON scene file, plain or snappy-compressed")
	query := fs.String("query", scenequery.SummaryQuery, "GraphQL query")
	vars := fs.String("vars", "", "query variables as a JSON object")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if *scenePath == "" {
		fmt.Fprintln(stderr, "inspect: -scene is required")
		fs.Usage()
		return exitUsage
	}

	var variables map[string]any
	if *vars != "" {
		if err := json.Unmarshal([]byte(*vars), &variables); err != nil {
			fmt.Fprintf(stderr, "inspect: -vars: %v\n", err)
			return exitUsage
		}
	}

	f, err := os.Open(*scenePath)
	if err != nil {
		fmt.Fprintf(stderr, "inspect: %v\n", err)
		return exitError
	}
	defer f.Close()

	doc, err := scene.ReadDocument(f)
	if err != nil {
		fmt.Fprintf(stderr, "inspect: %s: %v\n", *scenePath, err)
		return exitError
	}

	schema, err := scenequery.NewSchema(doc)
	if err != nil {
		fmt.Fprintf(stderr, "inspect: %v\n", err)
		return exitError
	}

	result := scenequery.Execute(schema, *query, variables)
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(stderr, "inspect: %v\n", err)
		return exitError
	}
	if result.HasErrors() {
		return exitError
	}
	return exitOK
}
