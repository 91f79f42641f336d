// Command meridian renders Mermaid-subset diagram source into ASCII/Unicode box-drawing art.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present so MERIDIAN_* overrides are visible to flags parsed below; a missing
	// .env is not an error, matching godotenv's own convention for optional files.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
