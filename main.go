package main

import (
	"fmt"
	"os"

	"medequip/config"
	"medequip/contract"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"
)

var logger = flogging.MustGetLogger("medequip.main")

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Error loading chaincode config: " + err.Error())
	}
	flogging.ActivateSpec(cfg.LogLevel)

	cc, err := contractapi.NewChaincode(contracts(cfg)...)
	if err != nil {
		panic("Error creating medequip chaincode: " + err.Error())
	}

	if !cfg.AsService() {
		logger.Infof("Starting peer-launched chaincode with contracts %v", cfg.Contracts)
		if err := cc.Start(); err != nil {
			panic("Error starting chaincode: " + err.Error())
		}
		return
	}

	tlsProps, err := tlsProperties(cfg)
	if err != nil {
		panic("Error reading chaincode TLS material: " + err.Error())
	}
	server := &shim.ChaincodeServer{
		CCID:     cfg.CCID,
		Address:  cfg.ServerAddress,
		CC:       cc,
		TLSProps: tlsProps,
	}
	logger.Infof("Starting chaincode server '%s' on %s with contracts %v", cfg.CCID, cfg.ServerAddress, cfg.Contracts)
	if err := server.Start(); err != nil {
		panic("Error starting chaincode server: " + err.Error())
	}
}

func contracts(cfg config.Config) []contractapi.ContractInterface {
	var out []contractapi.ContractInterface
	if cfg.Deploys(config.ContractDonorVerification) {
		out = append(out, contract.NewDonorVerificationContract())
	}
	if cfg.Deploys(config.ContractEquipmentCertification) {
		out = append(out, contract.NewEquipmentCertificationContract())
	}
	return out
}

func tlsProperties(cfg config.Config) (shim.TLSProperties, error) {
	if cfg.TLSDisabled {
		return shim.TLSProperties{Disabled: true}, nil
	}
	key, err := os.ReadFile(cfg.TLSKeyFile)
	if err != nil {
		return shim.TLSProperties{}, fmt.Errorf("read key file: %w", err)
	}
	cert, err := os.ReadFile(cfg.TLSCertFile)
	if err != nil {
		return shim.TLSProperties{}, fmt.Errorf("read cert file: %w", err)
	}
	props := shim.TLSProperties{Key: key, Cert: cert}
	if cfg.TLSClientCAFile != "" {
		ca, err := os.ReadFile(cfg.TLSClientCAFile)
		if err != nil {
			return shim.TLSProperties{}, fmt.Errorf("read client CA file: %w", err)
		}
		props.ClientCACerts = ca
	}
	return props, nil
}
