// Command enola converts Things between protobuf messages, RDF graphs and
// YAML or JSON documents, and keeps them in a Thing store.
package main

import (
	"fmt"
	"os"
	"runtime"
)

const (
	Version = "0.1.0"
	appName = "enola"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
