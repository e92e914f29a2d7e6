package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var rootDir string

	rootCmd := &cobra.Command{
		Use:   "nlterm",
		Short: "Natural language command terminal",
		Long: `nlterm is an interactive shell that accepts both standard commands
and plain English, confined to a sandboxed directory tree.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			if rootDir != "" {
				cfg.RootDir = rootDir
			}

			cli, err := NewCLI(cfg)
			if err != nil {
				return err
			}
			defer cli.Close()

			return cli.Run()
		},
	}
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "sandbox root directory (default: current directory)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(GetVersionInfo())
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
