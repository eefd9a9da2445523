package main

import (
	"fmt"
	"os"

	"github.com/tyen-customs-a3/mission-dependency-scanner/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
