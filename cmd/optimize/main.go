// The optimize command solves one scheduling problem in batch mode: it
// reads a problem JSON document from a file or stdin, runs the optimizer
// and writes the result JSON to a file or stdout.
//
// Usage:
//
//	optimize input.json output.json
//	optimize --stdin < input.json > output.json
//
// With --stdin the positional arguments are ignored and the result goes to
// stdout; --stdout forces stdout even when an output file is named.
//
// Exit codes: 0 when a schedule was found (OPTIMAL/FEASIBLE), 1 when the
// solver concluded without one (INFEASIBLE/MODEL_INVALID/UNKNOWN), 2 on
// input or internal errors.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/arnavshah/optimizer-api-go/pkg/models"
	"github.com/arnavshah/optimizer-api-go/pkg/optimizer"
	"github.com/joho/godotenv"
)

func main() {
	useStdin := flag.Bool("stdin", false, "read input from stdin")
	useStdout := flag.Bool("stdout", false, "write output to stdout")
	timeLimit := flag.Int("time-limit", 300, "solver time limit in seconds")
	flag.Parse()

	_ = godotenv.Load(".env")

	args := flag.Args()
	out := outputPath(*useStdin, *useStdout, args)

	input, err := readInput(*useStdin, args)
	if err != nil {
		writeResult(errorResult(err), out)
		os.Exit(2)
	}

	result := optimizer.Optimize(input, time.Duration(*timeLimit)*time.Second)
	writeResult(result, out)

	switch {
	case result.Success():
		os.Exit(0)
	case result.Status == "ERROR":
		os.Exit(2)
	default:
		os.Exit(1)
	}
}

// outputPath resolves where the result goes; empty means stdout. Reading
// from stdin always writes to stdout, ignoring positional arguments.
func outputPath(useStdin, useStdout bool, args []string) string {
	if useStdin || useStdout {
		return ""
	}
	if len(args) > 1 {
		return args[1]
	}
	return ""
}

func readInput(useStdin bool, args []string) (*models.ProblemInput, error) {
	var data []byte
	var err error
	switch {
	case useStdin:
		data, err = io.ReadAll(os.Stdin)
	case len(args) > 0:
		data, err = os.ReadFile(args[0])
	default:
		return nil, fmt.Errorf("must provide an input file or use --stdin")
	}
	if err != nil {
		return nil, err
	}

	var input models.ProblemInput
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("invalid problem JSON: %w", err)
	}
	return &input, nil
}

func errorResult(err error) *models.SolveResult {
	return &models.SolveResult{
		Status:      "ERROR",
		Assignments: []models.Assignment{},
		Error:       err.Error(),
	}
}

func writeResult(result *models.SolveResult, path string) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("could not encode result: %v", err)
	}
	data = append(data, '\n')

	if path == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Fatalf("could not write %s: %v", path, err)
	}
}
