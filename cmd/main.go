package main

import (
	"fmt"
	"os"

	"github.com/puzzleframe/arcon/cmd/root"

	"github.com/puzzleframe/arcon/internal/config"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd := root.NewRootCmd(cfg)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
