package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Build metadata, overridable at build time via -ldflags.
var (
	version   = "0.1.0-dev"
	gitCommit = ""
	buildDate = ""
)

var versionFormat string

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show cabi build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch versionFormat {
		case "pretty":
			renderVersionPretty(cmd.OutOrStdout())
			return nil
		case "json":
			return renderVersionJSON(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

// coloredVersion splits the semantic version into colored parts, keeping
// any pre-release suffix plain.
func coloredVersion() string {
	core, suffix, _ := strings.Cut(version, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return version
	}

	major := color.New(color.FgYellow, color.Bold)
	minor := color.New(color.FgGreen, color.Bold)
	patch := color.New(color.FgBlue, color.Bold)
	v := major.Sprint(parts[0]) + "." + minor.Sprint(parts[1]) + "." + patch.Sprint(parts[2])
	if suffix != "" {
		v += "-" + suffix
	}
	return v
}

func renderVersionPretty(out io.Writer) {
	fmt.Fprintf(out, "cabi %s\n", coloredVersion())
	if gitCommit != "" {
		fmt.Fprintf(out, "commit: %s\n", gitCommit)
	}
	if buildDate != "" {
		fmt.Fprintf(out, "built:  %s\n", buildDate)
	}
	fmt.Fprintf(out, "go:     %s\n", runtime.Version())
}

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version"`
}

func renderVersionJSON(out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(versionPayload{
		Tool:      "cabi",
		Version:   version,
		GitCommit: gitCommit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	})
}
