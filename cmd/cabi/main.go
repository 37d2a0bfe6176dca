package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/callsite/cabi/abi"
)

var rootCmd = &cobra.Command{
	Use:          "cabi",
	Short:        "Inspect the native C calling convention",
	Long:         `cabi classifies C function signatures into their register-level wrapper form and reports type layouts, the way a SysV AMD64 caller would see them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadFileConfig(".")
		if err != nil {
			return err
		}
		fileCfg = cfg

		color.NoColor = !useColor()

		if flagVerbose {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			abi.SetLogger(logger)
		}
		return nil
	},
}

var (
	flagColor   string
	flagVerbose bool
	flagTarget  string

	// fileCfg is the nearest cabi.toml, nil when none was found.
	fileCfg *fileConfig
)

func main() {
	rootCmd.Version = version

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().StringVar(&flagTarget, "target", "", "target triple (default x86_64-linux-gnu)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "log classification steps")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func useColor() bool {
	mode := flagColor
	if !rootCmd.PersistentFlags().Changed("color") && fileCfg != nil && fileCfg.Output.Color != "" {
		mode = fileCfg.Output.Color
	}
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
