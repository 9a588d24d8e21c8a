package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Module    string `json:"module,omitempty"`
}

var versionFormat string

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show transcheck build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := versionPayload{
			Tool:      "transcheck",
			Version:   version,
			GoVersion: runtime.Version(),
		}
		if info, ok := debug.ReadBuildInfo(); ok {
			payload.Module = info.Main.Path
			if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
				payload.Version = info.Main.Version
			}
		}

		w := cmd.OutOrStdout()
		switch versionFormat {
		case "json":
			return encodeJSON(w, payload, false)
		case "pretty":
			colorMode, _ := cmd.Flags().GetString("color")
			p := newPalette(useColor(colorMode, w))
			_, err := fmt.Fprintf(w, "%s %s (%s)\n", payload.Tool, p.ok.Sprint(payload.Version), payload.GoVersion)
			return err
		}
		return fmt.Errorf("unknown --format %q (want pretty or json)", versionFormat)
	},
}
