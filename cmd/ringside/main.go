// Package main is the entry point for the ringside server and tools
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/ringside/cmd/ringside/client"
)

var rootCmd = &cobra.Command{
	Use:   "ringside",
	Short: "Ringside match server",
	Long:  `Ringside runs turn based, card driven wrestling matches on a grid and serves them over gRPC.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
