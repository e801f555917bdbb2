package cmd

import (
	"github.com/Jonathan-Adapt/pcbridge/pkg/cmd/server"
	"github.com/spf13/cobra"
)

// serveAgentControlCmd represents the serve agentcontrol command
var serveAgentControlCmd = &cobra.Command{
	Use:   "agentcontrol",
	Short: "Serve agent control instance",
	Run:   server.RunServeAgentControl(c),
}

func init() {
	serveCmd.AddCommand(serveAgentControlCmd)
}
