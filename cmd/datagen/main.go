package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/opeyemi/lenddesk/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		users       = flag.Int("users", cfg.NumUsers, "number of users to generate")
		seed        = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir   = flag.String("output-dir", "data", "directory to write users.json")
		writeStdout = flag.Bool("stdout", false, "write users to stdout instead of a file")
	)
	flag.Parse()

	gen := generator.New(generator.Config{
		NumUsers: *users,
		Seed:     *seed,
	})
	dataset := gen.Generate()

	if *writeStdout {
		if err := json.NewEncoder(os.Stdout).Encode(dataset); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write users to stdout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := generator.WriteUsers(dataset, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write users: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d users into %s\n", len(dataset), *outputDir)
}
