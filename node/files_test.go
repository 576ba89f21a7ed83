// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package node

import (
	"os"
	"path"
	"testing"

	"github.com/aungmawjj/carbon-ledger/core"
	"github.com/stretchr/testify/assert"
)

func TestReadWriteKey(t *testing.T) {
	assert := assert.New(t)

	file := path.Join(t.TempDir(), "key")
	priv := core.GenerateKey(nil)
	assert.NoError(WriteKey(file, priv))

	priv1, err := ReadKey(file)
	assert.NoError(err)
	assert.Equal(priv.Bytes(), priv1.Bytes())

	_, err = ReadKey(path.Join(t.TempDir(), "missing"))
	assert.ErrorIs(err, os.ErrNotExist)
}

func TestLoadNodeKey(t *testing.T) {
	assert := assert.New(t)

	datadir := path.Join(t.TempDir(), "data")
	priv, err := loadNodeKey(datadir)
	assert.NoError(err)
	assert.FileExists(path.Join(datadir, NodekeyFile))

	priv1, err := loadNodeKey(datadir)
	assert.NoError(err)
	assert.True(priv.PublicKey().Equal(priv1.PublicKey()), "key is reused on restart")
}
