package log

import (
	"context"
	"reflect"
	"testing"

	"github.com/mwantia/fabric/pkg/container"
	"github.com/mwantia/gotags/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerTagProcessor_CanProcess(t *testing.T) {
	ltp := NewLoggerTagProcessor()

	assert.True(t, ltp.CanProcess("logger"))
	assert.True(t, ltp.CanProcess("Logger"))
	assert.True(t, ltp.CanProcess("logger:store"))
	assert.False(t, ltp.CanProcess("inject"))
	assert.False(t, ltp.CanProcess(""))
}

func TestLoggerTagProcessor_ResolvesFromContainer(t *testing.T) {
	sc := container.NewServiceContainer()
	logger := NewLoggerService("test", config.LogConfig{NoTerminal: true})
	require.NoError(t, container.Register[LoggerServiceImpl](sc,
		container.With[LoggerService](),
		container.WithInstance(logger)))

	ltp := NewLoggerTagProcessor()
	field := reflect.StructField{Name: "Log"}

	resolved, err := ltp.Process(context.Background(), sc, field, "logger")
	require.NoError(t, err)
	assert.Equal(t, logger, resolved)

	named, err := ltp.Process(context.Background(), sc, field, "logger:store")
	require.NoError(t, err)
	require.NotNil(t, named)
	assert.NotEqual(t, logger, named)
}

func TestLoggerTagProcessor_ErrorsWithoutRegistration(t *testing.T) {
	ltp := NewLoggerTagProcessor()
	field := reflect.StructField{Name: "Log"}

	_, err := ltp.Process(context.Background(), container.NewServiceContainer(), field, "logger")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no logger service registered")
}
