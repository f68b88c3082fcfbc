package main

import "os"

// version is stamped by the release build via ldflags.
var version = "dev"

func main() {
	// cobra prints the error itself; only the exit code is ours.
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
