package logging_test

import (
	"testing"

	"github.com/usnistgov/nulterm/core/logging"
	"github.com/usnistgov/nulterm/core/testenv"
	"go.uber.org/zap"
)

func TestLevels(t *testing.T) {
	assert, require := testenv.MakeAR(t)

	t.Setenv(logging.EnvPrefix, "W")
	t.Setenv(logging.EnvPrefix+"_LoggingTestB", "DEBUG")

	la := logging.New("LoggingTestA")
	assert.False(la.Core().Enabled(zap.InfoLevel))
	assert.True(la.Core().Enabled(zap.WarnLevel))

	t.Setenv(logging.EnvPrefix+"_LoggingTestC", "")
	lc := logging.New("LoggingTestC")
	assert.True(lc.Core().Enabled(zap.InfoLevel), "empty package variable overrides global level")

	lb := logging.New("LoggingTestB")
	assert.True(lb.Core().Enabled(zap.DebugLevel))

	pa := logging.GetLevel("LoggingTestA")
	assert.Equal("LoggingTestA", pa.Package())
	assert.EqualValues('W', pa.Level())

	pa.SetLevel("error")
	assert.EqualValues('I', pa.Level())
	assert.True(la.Core().Enabled(zap.InfoLevel))

	pa.SetLevel("Error")
	assert.EqualValues('E', pa.Level())
	assert.False(la.Core().Enabled(zap.WarnLevel))

	pa.SetLevel("")
	assert.EqualValues('I', pa.Level())

	var names []string
	for _, pl := range logging.ListLevels() {
		names = append(names, pl.Package())
	}
	require.Contains(names, "LoggingTestA")
	assert.Contains(names, "LoggingTestB")
}
