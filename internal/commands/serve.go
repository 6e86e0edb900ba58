package commands

import (
	"github.com/spf13/cobra"

	"github.com/oncorag/gliorag/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve question-answering over WebSocket",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := currentConfig

	engine, vs, err := buildEngine(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer vs.Close()

	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	return server.New(addr, engine).Start()
}
