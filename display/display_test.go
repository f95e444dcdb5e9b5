package display

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldOutputJSON(t *testing.T) {
	root := &cobra.Command{Use: "bda"}
	root.PersistentFlags().Bool("json", false, "")
	child := &cobra.Command{Use: "promote"}
	root.AddCommand(child)

	assert.False(t, ShouldOutputJSON(nil))
	assert.False(t, ShouldOutputJSON(child))

	require.NoError(t, root.PersistentFlags().Set("json", "true"))
	assert.True(t, ShouldOutputJSON(child))
}

func TestMarshalJSON(t *testing.T) {
	data, err := MarshalJSON(map[string]int{"processed_files": 2})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"processed_files\": 2\n}", string(data))
}
