package contract

import (
	"errors"
	"fmt"
	"strings"

	"medequip/registry"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

func isValidX509ID(id string) bool {
	// "eDUwOTo6" is "x509::" base64 encoded, which is what cid returns for X.509 callers.
	return strings.HasPrefix(id, "x509::") || strings.HasPrefix(id, "eDUwOTo6")
}

// callerIdentity retrieves the full X.509 ID of the current transactor.
// Every registry call receives it explicitly as its first argument.
func callerIdentity(ctx contractapi.TransactionContextInterface) (registry.Identity, error) {
	clientIdentity := ctx.GetClientIdentity()
	if clientIdentity == nil {
		return "", errors.New("client identity is nil from context")
	}
	id, err := clientIdentity.GetID()
	if err != nil {
		return "", fmt.Errorf("failed to get client identity ID from context: %w", err)
	}
	if id == "" { // GetID can return an empty string without error if not properly set up
		return "", errors.New("client identity ID from context is empty")
	}
	if !isValidX509ID(id) {
		logger.Warningf("Current client ID '%s' does not appear to be a standard X.509 format.", id)
	}
	return registry.Identity(id), nil
}

// callerMSPID is best effort; it is only used to enrich event payloads.
func callerMSPID(ctx contractapi.TransactionContextInterface) string {
	clientIdentity := ctx.GetClientIdentity()
	if clientIdentity == nil {
		return ""
	}
	mspID, err := clientIdentity.GetMSPID()
	if err != nil {
		logger.Debugf("Could not determine caller MSPID: %v", err)
		return ""
	}
	return mspID
}
