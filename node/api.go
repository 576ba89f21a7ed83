// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package node

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/aungmawjj/carbon-ledger/core"
	"github.com/aungmawjj/carbon-ledger/execution"
	"github.com/aungmawjj/carbon-ledger/execution/chaincode/carbon"
	"github.com/aungmawjj/carbon-ledger/logger"
	"github.com/aungmawjj/carbon-ledger/txpool"
	"github.com/dgraph-io/badger/v3"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type nodeAPI struct {
	node *Node
}

func newAPI(node *Node) *nodeAPI {
	return &nodeAPI{node}
}

func (api *nodeAPI) router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = io.Discard
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/status", api.getStatus)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(
		api.node.metrics.registry, promhttp.HandlerOpts{})))

	r.GET("/txpool", api.getTxPoolStatus)
	r.POST("/transactions", api.submitTX)
	r.GET("/transactions/:hash/status", api.getTxStatus)
	r.GET("/transactions/:hash/commit", api.getTxCommit)

	r.POST("/query", api.queryState)

	r.GET("/companies/:id", api.getCompany)
	r.GET("/projects/:id", api.getProject)
	r.GET("/retirements/:id", api.getRetirementRequest)

	r.GET("/certificates", api.getCertificatesByOwner)
	r.GET("/certificates/available", api.getAvailableCertificates)
	r.GET("/certificates/:id", api.certificateQuery(carbon.MethodGetCertificate))
	r.GET("/certificates/:id/proof", api.certificateQuery(carbon.MethodGetCertificateWithProof))
	r.GET("/certificates/:id/metadata", api.certificateQuery(carbon.MethodGetBlockchainMetadata))
	r.GET("/certificates/:id/history", api.certificateQuery(carbon.MethodHistoryOf))
	r.GET("/certificates/:id/verify", api.certificateQuery(carbon.MethodVerifyCertificate))
	return r
}

type nodeStatus struct {
	PublicKey string        `json:"publicKey"`
	ChannelID string        `json:"channelId"`
	Sequence  uint64        `json:"sequence"`
	TxPool    txpool.Status `json:"txpool"`
	Uptime    string        `json:"uptime"`
}

func (api *nodeAPI) getStatus(c *gin.Context) {
	seq, err := api.node.storage.GetSequence()
	if err != nil {
		api.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, &nodeStatus{
		PublicKey: api.node.privKey.PublicKey().String(),
		ChannelID: api.node.config.ExecutionConfig.ChannelID,
		Sequence:  seq,
		TxPool:    api.node.txpool.GetStatus(),
		Uptime:    time.Since(api.node.started).Truncate(time.Second).String(),
	})
}

func (api *nodeAPI) getTxPoolStatus(c *gin.Context) {
	c.JSON(http.StatusOK, api.node.txpool.GetStatus())
}

func (api *nodeAPI) submitTX(c *gin.Context) {
	tx := core.NewTransaction()
	if err := c.ShouldBindJSON(tx); err != nil {
		c.String(http.StatusBadRequest, "cannot parse tx")
		return
	}
	if err := api.node.txpool.SubmitTx(tx); err != nil {
		logger.I().Warnw("submit tx failed", "error", err)
		api.writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"hash": tx.ID()})
}

func (api *nodeAPI) getTxStatus(c *gin.Context) {
	hash, err := api.getHash(c)
	if err != nil {
		c.String(http.StatusBadRequest, "cannot parse hash")
		return
	}
	status := api.node.txpool.GetTxStatus(hash)
	c.JSON(http.StatusOK, gin.H{"status": status.String()})
}

func (api *nodeAPI) getTxCommit(c *gin.Context) {
	hash, err := api.getHash(c)
	if err != nil {
		c.String(http.StatusBadRequest, "cannot parse hash")
		return
	}
	txc, err := api.node.storage.GetTxCommit(hash)
	if err != nil {
		api.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, txc)
}

func (api *nodeAPI) queryState(c *gin.Context) {
	query := new(execution.QueryData)
	if err := c.ShouldBindJSON(query); err != nil {
		c.String(http.StatusBadRequest, "cannot parse request")
		return
	}
	result, err := api.node.execution.Query(query)
	if err != nil {
		api.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, gin.MIMEJSON, result)
}

func (api *nodeAPI) getCompany(c *gin.Context) {
	api.query(c, &carbon.Input{Method: carbon.MethodGetCompany, ID: c.Param("id")})
}

func (api *nodeAPI) getProject(c *gin.Context) {
	api.query(c, &carbon.Input{Method: carbon.MethodGetProject, ID: c.Param("id")})
}

func (api *nodeAPI) getRetirementRequest(c *gin.Context) {
	api.query(c, &carbon.Input{Method: carbon.MethodGetRetirementRequest, RequestID: c.Param("id")})
}

func (api *nodeAPI) getAvailableCertificates(c *gin.Context) {
	api.query(c, &carbon.Input{Method: carbon.MethodQueryAvailable})
}

func (api *nodeAPI) getCertificatesByOwner(c *gin.Context) {
	api.query(c, &carbon.Input{Method: carbon.MethodQueryByOwner, OwnerID: c.Query("owner")})
}

func (api *nodeAPI) certificateQuery(method string) gin.HandlerFunc {
	return func(c *gin.Context) {
		api.query(c, &carbon.Input{Method: method, CertID: c.Param("id")})
	}
}

func (api *nodeAPI) query(c *gin.Context, input *carbon.Input) {
	b, err := json.Marshal(input)
	if err != nil {
		api.writeError(c, err)
		return
	}
	result, err := api.node.execution.Query(&execution.QueryData{
		CodeID: execution.NativeCodeIDCarbon,
		Input:  b,
	})
	if err != nil {
		api.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, gin.MIMEJSON, result)
}

func (api *nodeAPI) getHash(c *gin.Context) ([]byte, error) {
	return hex.DecodeString(c.Param("hash"))
}

func (api *nodeAPI) writeError(c *gin.Context, err error) {
	c.JSON(httpStatus(err), gin.H{"error": err.Error()})
}

func httpStatus(err error) int {
	switch {
	case errors.Is(err, carbon.ErrNotFound),
		errors.Is(err, carbon.ErrMethodNotFound),
		errors.Is(err, execution.ErrUnknownCode),
		errors.Is(err, badger.ErrKeyNotFound):
		return http.StatusNotFound
	case errors.Is(err, carbon.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, carbon.ErrPreconditionFailed):
		return http.StatusPreconditionFailed
	case errors.Is(err, carbon.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, carbon.ErrInvalidState):
		return http.StatusUnprocessableEntity
	case errors.Is(err, carbon.ErrInvalidArgument),
		errors.Is(err, txpool.ErrInvalidTx):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
