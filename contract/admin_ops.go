package contract

import (
	"fmt"
	"strings"

	"medequip/registry"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// --- Admin Operations shared by both contracts ---

// initLedger installs the registry admin. An empty adminID bootstraps the caller.
func initLedger(ctx contractapi.TransactionContextInterface, admins *registry.AdminRegistry, namespace, adminID string) error {
	caller, err := callerIdentity(ctx)
	if err != nil {
		return fmt.Errorf("InitLedger: failed to get caller identity: %w", err)
	}
	admin := registry.Identity(strings.TrimSpace(adminID))
	if admin == "" {
		admin = caller
	}
	logger.Infof("InitLedger: Bootstrapping '%s' with admin '%s' (caller '%s')", namespace, admin, caller)
	if err := admins.Initialize(admin); err != nil {
		logger.Infof("InitLedger: '%s' not initialized: %v", namespace, err)
		return err
	}
	emitEvent(ctx, namespace, eventAdminInitialized, caller, map[string]interface{}{"admin": admin})
	return nil
}

func transferAdmin(ctx contractapi.TransactionContextInterface, admins *registry.AdminRegistry, namespace, newAdmin string) error {
	caller, err := callerIdentity(ctx)
	if err != nil {
		return fmt.Errorf("TransferAdmin: failed to get caller identity: %w", err)
	}
	if err := admins.TransferAdmin(caller, registry.Identity(newAdmin)); err != nil {
		return err
	}
	emitEvent(ctx, namespace, eventAdminTransferred, caller, map[string]interface{}{
		"previousAdmin": caller,
		"newAdmin":      newAdmin,
	})
	return nil
}

func getAdmin(admins *registry.AdminRegistry) (string, error) {
	admin, err := admins.Admin()
	if err != nil {
		return "", err
	}
	return string(admin), nil
}
