package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	home, err := ioutil.TempDir("", "escrowd")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	conf, err := LoadConfig(home, nil)
	require.NoError(t, err)
	assert.Equal(t, "tcp://localhost:26658", conf.Bind)
	assert.Equal(t, "info", conf.LogLevel)
	assert.Equal(t, filepath.Join(home, "escrow.db"), conf.DB)
	assert.False(t, conf.Debug)

	require.NoError(t, os.MkdirAll(filepath.Join(home, "config"), 0700))
	toml := []byte("bind = \"tcp://0.0.0.0:9999\"\nlog_level = \"debug\"\n")
	require.NoError(t, ioutil.WriteFile(configFile(home), toml, 0600))

	conf, err = LoadConfig(home, nil)
	require.NoError(t, err)
	assert.Equal(t, "tcp://0.0.0.0:9999", conf.Bind)
	assert.Equal(t, "debug", conf.LogLevel)

	// environment takes precedence over the file
	os.Setenv("ESCROWD_LOG_LEVEL", "error")
	defer os.Unsetenv("ESCROWD_LOG_LEVEL")
	conf, err = LoadConfig(home, nil)
	require.NoError(t, err)
	assert.Equal(t, "error", conf.LogLevel)

	// and flags take precedence over everything
	cmd := startCmd()
	require.NoError(t, cmd.Flags().Set(flagLogLevel, "none"))
	conf, err = LoadConfig(home, cmd)
	require.NoError(t, err)
	assert.Equal(t, "none", conf.LogLevel)
	assert.Equal(t, "tcp://0.0.0.0:9999", conf.Bind)
}

func TestWriteDefaultConfig(t *testing.T) {
	home, err := ioutil.TempDir("", "escrowd")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	require.NoError(t, WriteDefaultConfig(home))
	conf, err := LoadConfig(home, nil)
	require.NoError(t, err)
	assert.Equal(t, "tcp://localhost:26658", conf.Bind)

	// an existing file is never overwritten
	require.NoError(t, ioutil.WriteFile(configFile(home), []byte("bind = \"tcp://1.2.3.4:1\"\n"), 0600))
	require.NoError(t, WriteDefaultConfig(home))
	conf, err = LoadConfig(home, nil)
	require.NoError(t, err)
	assert.Equal(t, "tcp://1.2.3.4:1", conf.Bind)
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger("debug")
	assert.NoError(t, err)
	_, err = newLogger("loud")
	assert.Error(t, err)
}
