package utils_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyerfyer/gatesim/pkg/utils"
)

func TestLoggerLevelsAndIndent(t *testing.T) {
	var buf bytes.Buffer
	logger := utils.NewLogger(utils.DebugLevel)
	logger.SetOutput(&buf)
	logger.ShowTime = false
	logger.SetPrefix("gatesim")

	logger.Info("loading %s", "adder.bench")
	logger.Indent()
	logger.Editor("In1 -> G1[0]")
	logger.Outdent()
	logger.Outdent()
	logger.Table("hidden at debug level")

	assert.Equal(t,
		"[INFO] gatesim: loading adder.bench\n"+
			"[DEBUG] gatesim:   EDITOR: In1 -> G1[0]\n",
		buf.String())
}

func TestParseLogLevel(t *testing.T) {
	for name, expected := range map[string]utils.LogLevel{
		"error":   utils.ErrorLevel,
		"WARN":    utils.WarningLevel,
		"warning": utils.WarningLevel,
		"":        utils.InfoLevel,
		"debug":   utils.DebugLevel,
		" trace ": utils.TraceLevel,
	} {
		level, err := utils.ParseLogLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, expected, level, name)
	}

	_, err := utils.ParseLogLevel("loud")
	assert.Error(t, err)
}

func TestDiscardLogger(t *testing.T) {
	logger := utils.NewDiscardLogger()
	assert.False(t, logger.Enabled(utils.InfoLevel))
	assert.NotPanics(t, func() { logger.Error("dropped") })
}
