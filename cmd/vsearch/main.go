// Command vsearch manages Google Cloud Discovery Engine (Vertex AI Search)
// resources from the terminal: data stores, engines, document imports, chunk
// inspection, and search. It also runs an HTTP search proxy and a grounded
// question-answering mode backed by an LLM.
package main

import (
	"fmt"
	"os"

	"github.com/vertexkit/vsearch/cmd/vsearch/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
