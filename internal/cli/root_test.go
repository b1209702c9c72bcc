package cli

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "rxtrace", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"run", "validate", "record", "runs", "show"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	traceFlag := cmd.PersistentFlags().Lookup("trace-resources")
	require.NotNil(t, traceFlag)
	assert.Equal(t, "false", traceFlag.DefValue)
}

func TestStorageCommandsRequireDB(t *testing.T) {
	for _, name := range []string{"record", "runs", "show"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := NewRootCommand().Find([]string{name})
			require.NoError(t, err)
			dbFlag := sub.Flags().Lookup("db")
			require.NotNil(t, dbFlag)
			assert.Equal(t, []string{"true"}, dbFlag.Annotations[cobra.BashCompOneRequiredFlag])
		})
	}
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	_, _, err := execute(t, "--format", "xml", "validate", scenarioPath("squares.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRootCommand_TraceResources(t *testing.T) {
	_, stderr, err := execute(t, "--trace-resources", "run", scenarioPath("take.yaml"))
	require.NoError(t, err)
	assert.Contains(t, stderr, "live_subscriptions=0")
	assert.Contains(t, stderr, "# TYPE rx_live_subscriptions gauge")
	assert.Contains(t, stderr, `rx_subscriptions_total{operator="takeStream"} 1`)
	assert.Contains(t, stderr, `rx_live_subscriptions{operator="takeStream"} 0`)
}

func TestRootCommand_TraceResourcesRepeatable(t *testing.T) {
	for i := 0; i < 2; i++ {
		_, stderr, err := execute(t, "--trace-resources", "run", scenarioPath("squares.yaml"))
		require.NoError(t, err, "run %d", i)
		assert.Contains(t, stderr, `rx_subscriptions_total{operator="filterStream"} 1`, "run %d", i)
	}
}

func TestWriteMetrics_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeMetrics(&buf, prometheus.NewRegistry()))
	assert.Empty(t, buf.String())
}

func TestRootCommand_VerboseLogsToStderr(t *testing.T) {
	stdout, stderr, err := execute(t, "-v", "run", scenarioPath("squares.yaml"))
	require.NoError(t, err)
	assert.Contains(t, stderr, "running scenario")
	assert.NotContains(t, stdout, "running scenario")
}
