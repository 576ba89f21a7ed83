// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package node

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/aungmawjj/carbon-ledger/core"
	"github.com/aungmawjj/carbon-ledger/emitter"
	"github.com/aungmawjj/carbon-ledger/execution"
	"github.com/aungmawjj/carbon-ledger/logger"
	"github.com/aungmawjj/carbon-ledger/storage"
	"github.com/aungmawjj/carbon-ledger/txpool"
	"github.com/dgraph-io/badger/v3"
	"github.com/gin-gonic/gin"
)

type Node struct {
	config Config

	privKey *core.PrivateKey
	started time.Time

	db        *badger.DB
	storage   *storage.Storage
	execution *execution.Execution
	txpool    *txpool.TxPool
	emitter   *emitter.Emitter
	metrics   *metrics
	committer *committer

	eventSub  *emitter.Subscription
	eventDone chan struct{}

	router *gin.Engine
	server *http.Server
}

// Run starts the node and blocks until SIGINT or SIGTERM
func Run(config Config) {
	inst, err := logger.New(config.Debug)
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	logger.Set(inst)

	node, err := New(config)
	if err != nil {
		logger.I().Fatalw("node setup failed", "error", err)
	}
	if err := node.Start(); err != nil {
		logger.I().Fatalw("node start failed", "error", err)
	}
	logger.I().Infow("node started",
		"api", node.config.APIPort,
		"channel", node.config.ExecutionConfig.ChannelID,
		"pubkey", node.privKey.PublicKey())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.I().Infow("shutting down")
	node.Stop()
}

func New(config Config) (*Node, error) {
	node := new(Node)
	node.config = config
	if err := node.setupKey(); err != nil {
		return nil, err
	}
	if err := node.setupStorage(); err != nil {
		return nil, err
	}
	node.setupComponents()
	return node, nil
}

func (node *Node) setupKey() error {
	if node.config.StorageConfig.InMemory {
		node.privKey = core.GenerateKey(nil)
		return nil
	}
	var err error
	node.privKey, err = loadNodeKey(node.config.Datadir)
	if err != nil {
		return fmt.Errorf("cannot load node key, %w", err)
	}
	return nil
}

func (node *Node) setupStorage() error {
	db, err := storage.NewDB(path.Join(node.config.Datadir, DBDir), node.config.StorageConfig)
	if err != nil {
		return fmt.Errorf("cannot create db, %w", err)
	}
	node.db = db
	node.storage = storage.New(db)
	return nil
}

func (node *Node) setupComponents() {
	node.execution = execution.New(node.storage, node.config.ExecutionConfig)
	node.txpool = txpool.New(node.storage, node.execution)
	node.emitter = emitter.New()
	node.metrics = newMetrics(
		func() float64 { return float64(node.txpool.GetStatus().Total) },
		func() float64 { return float64(node.emitter.Count()) },
	)
	node.committer = &committer{
		txpool:    node.txpool,
		execution: node.execution,
		storage:   node.storage,
		emitter:   node.emitter,
		metrics:   node.metrics,
		batch:     node.config.CommitBatch,
	}
	node.router = newAPI(node).router()
}

// Start runs the committer and event log, then serves the api
func (node *Node) Start() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", node.config.APIPort))
	if err != nil {
		return fmt.Errorf("cannot listen on %d, %w", node.config.APIPort, err)
	}
	node.startServices()
	node.server = &http.Server{Handler: node.router}
	go func() {
		if err := node.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.I().Errorw("api server stopped", "error", err)
		}
	}()
	return nil
}

func (node *Node) startServices() {
	node.started = time.Now()
	node.committer.start()
	node.eventSub = node.emitter.Subscribe(1000)
	node.eventDone = make(chan struct{})
	go node.logEvents()
}

func (node *Node) Stop() {
	if node.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := node.server.Shutdown(ctx); err != nil {
			logger.I().Errorw("api server shutdown failed", "error", err)
		}
	}
	node.committer.stop()
	node.eventSub.Unsubscribe()
	<-node.eventDone
	if err := node.db.Close(); err != nil {
		logger.I().Errorw("close db failed", "error", err)
	}
}

// Handler exposes the api routes
func (node *Node) Handler() http.Handler {
	return node.router
}

// SubscribeEvents delivers committed domain events, all events when names is empty
func (node *Node) SubscribeEvents(buffer int, names ...string) *emitter.Subscription {
	return node.emitter.Subscribe(buffer, names...)
}

func (node *Node) logEvents() {
	defer close(node.eventDone)
	for e := range node.eventSub.Events() {
		logger.I().Infow("ledger event",
			"name", e.Name, "tx", e.TxID, "payload", string(e.Payload))
	}
}
