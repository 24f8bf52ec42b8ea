/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"os"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"github.com/buckhoff/token-presale-contract/crowdsale"
	"github.com/buckhoff/token-presale-contract/oracle"
	"github.com/buckhoff/token-presale-contract/registry"
	"github.com/buckhoff/token-presale-contract/tiers"
	"github.com/buckhoff/token-presale-contract/vesting"
)

// serverConfig selects chaincode-as-a-service mode when a server address is
// configured; otherwise the chaincode runs in the classic peer-managed mode.
type serverConfig struct {
	CCID    string `envconfig:"CHAINCODE_ID"`
	Address string `envconfig:"CHAINCODE_SERVER_ADDRESS"`
}

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Str("service", "token-presale").Logger()

	var cfg serverConfig
	err := envconfig.Process("", &cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to read environment")
	}

	chaincode, err := contractapi.NewChaincode(
		registry.NewSmartContract(),
		oracle.NewSmartContract(),
		tiers.NewSmartContract(),
		crowdsale.NewSmartContract(),
		vesting.NewSmartContract(),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create chaincode")
	}

	if cfg.Address != "" {
		server := &shim.ChaincodeServer{
			CCID:     cfg.CCID,
			Address:  cfg.Address,
			CC:       chaincode,
			TLSProps: shim.TLSProperties{Disabled: true},
		}

		logger.Info().Str("ccid", cfg.CCID).Str("address", cfg.Address).Msg("starting chaincode server")
		err = server.Start()
		if err != nil {
			logger.Fatal().Err(err).Msg("chaincode server stopped")
		}
		return
	}

	logger.Info().Msg("starting chaincode")
	err = chaincode.Start()
	if err != nil {
		logger.Fatal().Err(err).Msg("chaincode stopped")
	}
}
