package main

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/escrowtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCmd(t *testing.T) {
	home, err := ioutil.TempDir("", "escrowd")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	// genesis created by tendermint init must keep its fields
	require.NoError(t, os.MkdirAll(filepath.Join(home, "config"), 0700))
	tmGenesis := []byte(`{"chain_id": "tm-chain-1", "validators": [], "app_state": null}`)
	require.NoError(t, ioutil.WriteFile(genesisFile(home), tmGenesis, 0600))

	addr := escrowtest.NewCondition().Address()
	var out bytes.Buffer
	root := rootCmd()
	root.SetOutput(&out)
	root.SetArgs([]string{"init", addr.String(), "--home", home, "--coins", "77", "--min_amount", "5"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), addr.String())

	raw, err := ioutil.ReadFile(genesisFile(home))
	require.NoError(t, err)
	var doc struct {
		ChainID    string              `json:"chain_id"`
		Validators []json.RawMessage   `json:"validators"`
		AppState   timedescrow.Options `json:"app_state"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "tm-chain-1", doc.ChainID)
	assert.NotNil(t, doc.Validators)

	var accounts []struct {
		Address timedescrow.Address `json:"address"`
		Coins   uint64              `json:"coins"`
	}
	require.NoError(t, doc.AppState.ReadOptions("cash", &accounts))
	require.Len(t, accounts, 1)
	assert.Equal(t, addr, accounts[0].Address)
	assert.Equal(t, uint64(77), accounts[0].Coins)

	var conf struct {
		MinAmount uint64 `json:"min_amount"`
	}
	require.NoError(t, doc.AppState.ReadOptions("escrow", &conf))
	assert.Equal(t, uint64(5), conf.MinAmount)

	_, err = os.Stat(configFile(home))
	assert.NoError(t, err)
}

func TestWriteGenesisNewFile(t *testing.T) {
	home, err := ioutil.TempDir("", "escrowd")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	path := genesisFile(home)
	err = WriteGenesis(path, "x", AppState{})
	assert.Error(t, err)

	require.NoError(t, WriteGenesis(path, "escrow-local", AppState{}))
	raw, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), `"chain_id": "escrow-local"`), string(raw))
}

func TestKeysCmd(t *testing.T) {
	var out bytes.Buffer
	root := rootCmd()
	root.SetOutput(&out)
	root.SetArgs([]string{"keys", "--hrp", "test"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "bech32:      test1")
}
