// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aungmawjj/carbon-ledger/core"
	"github.com/aungmawjj/carbon-ledger/execution"
	"github.com/aungmawjj/carbon-ledger/node"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	flagDebug     = "debug"
	flagDataDir   = "datadir"
	flagPort      = "port"
	flagChannel   = "channel"
	flagTxTimeout = "tx-timeout"
	flagInMemory  = "in-memory"

	flagOut   = "out"
	flagKey   = "key"
	flagCode  = "code"
	flagNonce = "nonce"
)

var rootCmd = &cobra.Command{
	Use:   "carbonledger",
	Short: "Carbon certificate ledger node",
	Run: func(cmd *cobra.Command, args []string) {
		debug, err := cmd.Flags().GetBool(flagDebug)
		check(err)
		datadir, err := cmd.Flags().GetString(flagDataDir)
		check(err)
		port, err := cmd.Flags().GetInt(flagPort)
		check(err)
		channel, err := cmd.Flags().GetString(flagChannel)
		check(err)
		txTimeout, err := cmd.Flags().GetDuration(flagTxTimeout)
		check(err)
		inMemory, err := cmd.Flags().GetBool(flagInMemory)
		check(err)

		if datadir == "" && !inMemory {
			check(errors.New("datadir is required unless running in memory"))
		}
		config := node.DefaultConfig
		config.Debug = debug
		config.Datadir = datadir
		config.APIPort = port
		config.ExecutionConfig.ChannelID = channel
		config.ExecutionConfig.TxExecTimeout = txTimeout
		config.StorageConfig.InMemory = inMemory
		node.Run(config)
	},
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an ed25519 key for signing transactions",
	Run: func(cmd *cobra.Command, args []string) {
		out, err := cmd.Flags().GetString(flagOut)
		check(err)

		priv := core.GenerateKey(nil)
		check(node.WriteKey(out, priv))

		bold := color.New(color.Bold)
		boldGreen := color.New(color.Bold, color.FgGreen)
		boldGreen.Printf("Generated key %s\n", out)
		bold.Print("Public key: ")
		fmt.Println(priv.PublicKey())
	},
}

var signCmd = &cobra.Command{
	Use:   "sign [chaincode input json]",
	Short: "Sign a transaction and print it as json for POST /transactions",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		keyFile, err := cmd.Flags().GetString(flagKey)
		check(err)
		codeID, err := cmd.Flags().GetString(flagCode)
		check(err)
		nonce, err := cmd.Flags().GetUint64(flagNonce)
		check(err)

		if !json.Valid([]byte(args[0])) {
			check(errors.New("input is not valid json"))
		}
		priv, err := node.ReadKey(keyFile)
		check(err)
		now := time.Now()
		if nonce == 0 {
			nonce = uint64(now.UnixNano())
		}
		tx := core.NewTransaction().
			SetNonce(nonce).
			SetTimestamp(now).
			SetCodeID(codeID).
			SetInput([]byte(args[0])).
			Sign(priv)
		b, err := json.Marshal(tx)
		check(err)
		color.New(color.FgCyan).Fprintf(os.Stderr, "tx %s\n", tx.ID())
		fmt.Println(string(b))
	},
}

func main() {
	check(rootCmd.Execute())
}

func init() {
	rootCmd.Flags().Bool(flagDebug, false, "debug mode")
	rootCmd.Flags().StringP(flagDataDir, "d", "", "ledger data directory")
	rootCmd.Flags().IntP(flagPort, "p", node.DefaultConfig.APIPort, "http api port")
	rootCmd.Flags().String(flagChannel, execution.DefaultConfig.ChannelID, "channel id recorded on every entity")
	rootCmd.Flags().Duration(flagTxTimeout, execution.DefaultConfig.TxExecTimeout, "chaincode execution timeout")
	rootCmd.Flags().Bool(flagInMemory, false, "keep ledger state in memory only")

	keygenCmd.Flags().StringP(flagOut, "o", "client.key", "output key file")

	signCmd.Flags().StringP(flagKey, "k", "client.key", "signing key file")
	signCmd.Flags().String(flagCode, execution.NativeCodeIDCarbon, "chaincode id")
	signCmd.Flags().Uint64(flagNonce, 0, "tx nonce, current time when zero")

	rootCmd.AddCommand(keygenCmd, signCmd)
}

func check(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
