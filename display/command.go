package display

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ShouldOutputJSON determines if a command should output JSON based on its flags
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}

	// Check if --json flag was explicitly set on the command
	if cmd.Flags().Changed("json") {
		jsonFlag, _ := cmd.Flags().GetBool("json")
		return jsonFlag
	}

	// Check global --json flag
	globalFlag, _ := cmd.Root().PersistentFlags().GetBool("json")
	return globalFlag
}

// OutputJSON marshals and prints JSON using display.MarshalJSON
func OutputJSON(v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
