package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Karanja-eng/jengacost/pkg/structural"
)

var frameCmd = &cobra.Command{
	Use:   "frame <frame.yaml>",
	Short: "Send a frame to the structural analysis service",
	Long:  "Reads a joints/members/loads description from a YAML file, sends it to the configured analysis service, and prints the returned moments and diagrams.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrapf(err, "read frame file %s", args[0])
		}

		var req structural.FrameRequest
		if err := yaml.Unmarshal(data, &req); err != nil {
			return eris.Wrap(err, "parse frame file")
		}

		client := structural.NewClient(cfg.Structural.Key,
			structural.WithBaseURL(cfg.Structural.BaseURL),
			structural.WithRateLimit(cfg.Structural.RequestsPerSecond),
		)

		res, err := client.Analyze(cmd.Context(), req)
		if err != nil {
			return eris.Wrap(err, "frame analyze")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

func init() {
	rootCmd.AddCommand(frameCmd)
}
