package main

import (
	"os"
)

// main hands off to the cobra command tree. Wiring lives in app.go and the
// business logic in internal service packages.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
