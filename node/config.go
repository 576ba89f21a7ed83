// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package node

import (
	"github.com/aungmawjj/carbon-ledger/execution"
	"github.com/aungmawjj/carbon-ledger/storage"
)

type Config struct {
	Debug   bool
	Datadir string
	APIPort int

	// max txs taken from the pool per committer round
	CommitBatch int

	StorageConfig   storage.Config
	ExecutionConfig execution.Config
}

var DefaultConfig = Config{
	APIPort:         9040,
	CommitBatch:     100,
	StorageConfig:   storage.DefaultConfig,
	ExecutionConfig: execution.DefaultConfig,
}
