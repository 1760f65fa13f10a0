package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/rcarag/presyo-api/cmd"
)

func main() {
	var dbPath string
	var port int
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "presyo-api",
		Short: "Best fuel price API: community reports merged with DOE reference prices",
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "data/presyo.db", "path to the sqlite database")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.ApiServer(dbPath, port, debug)
		},
	}
	serveCmd.Flags().IntVar(&port, "port", 8080, "port to listen on")
	serveCmd.Flags().BoolVar(&debug, "debug", false, "expose pprof endpoints")

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk-import stations and weekly reference prices",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.Import(dbPath)
		},
	}

	rootCmd.AddCommand(serveCmd, importCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("command failed: %v", err)
	}
}
