package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/bdaresume/display"
	"github.com/teranos/bdaresume/version"
)

// VersionCmd represents the version command
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show bda version information",
	Long:  `Display version, build time, commit hash, and platform information for the bda binary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(info)
		}
		fmt.Println(info.String())
		fmt.Printf("AWS app id: %s\n", info.AppID())
		return nil
	},
}
