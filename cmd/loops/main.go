package main

import (
	"fmt"
	"os"

	"github.com/andersonjoseph/loopdrill/internal/loops"
)

func main() {
	if err := loops.New(os.Stdout).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		os.Exit(1)
	}
}
