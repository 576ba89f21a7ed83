// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package node

import (
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/aungmawjj/carbon-ledger/core"
)

const (
	NodekeyFile = "nodekey"
	DBDir       = "db"
)

func ReadKey(file string) (*core.PrivateKey, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s, %w", file, err)
	}
	return core.NewPrivateKey(b)
}

func WriteKey(file string, priv *core.PrivateKey) error {
	if err := os.WriteFile(file, priv.Bytes(), 0600); err != nil {
		return fmt.Errorf("cannot write %s, %w", file, err)
	}
	return nil
}

// loadNodeKey reads the node key from datadir, generating one on first start
func loadNodeKey(datadir string) (*core.PrivateKey, error) {
	file := path.Join(datadir, NodekeyFile)
	priv, err := ReadKey(file)
	if err == nil {
		return priv, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err := os.MkdirAll(datadir, 0700); err != nil {
		return nil, fmt.Errorf("cannot create datadir, %w", err)
	}
	priv = core.GenerateKey(nil)
	return priv, WriteKey(file, priv)
}
