// Blaster is a search aggregation service: it fans a query out to public
// search backends, optionally crawls the top result pages for readable text,
// and optionally asks a hosted LLM for a cited answer.
package main

import (
	"fmt"
	"os"

	"github.com/aaravbangsmetal/blaster/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
