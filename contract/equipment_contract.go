package contract

import (
	"fmt"

	"medequip/model"
	"medequip/registry"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// EquipmentCertificationContract exposes the certifier registry and the
// equipment certification store built on it.
// @contract:EquipmentCertificationContract
type EquipmentCertificationContract struct {
	contractapi.Contract
}

// NewEquipmentCertificationContract returns the contract registered under the equipment-certification name.
func NewEquipmentCertificationContract() *EquipmentCertificationContract {
	c := new(EquipmentCertificationContract)
	c.Name = registry.EquipmentCertificationNamespace
	return c
}

func (c *EquipmentCertificationContract) certifiers(ctx contractapi.TransactionContextInterface) *registry.CertifierRegistry {
	return registry.NewCertifierRegistry(ctx.GetStub())
}

func (c *EquipmentCertificationContract) store(ctx contractapi.TransactionContextInterface) *registry.CertificationStore {
	return registry.NewCertificationStore(ctx.GetStub(), c.certifiers(ctx))
}

// --- Admin ---

func (c *EquipmentCertificationContract) InitLedger(ctx contractapi.TransactionContextInterface, adminID string) error {
	logger.Infof("Chaincode Call: equipment-certification InitLedger with admin '%s'", adminID)
	return initLedger(ctx, c.certifiers(ctx).AdminRegistry, registry.EquipmentCertificationNamespace, adminID)
}

func (c *EquipmentCertificationContract) TransferAdmin(ctx contractapi.TransactionContextInterface, newAdmin string) error {
	logger.Infof("Chaincode Call: equipment-certification TransferAdmin to '%s'", newAdmin)
	return transferAdmin(ctx, c.certifiers(ctx).AdminRegistry, registry.EquipmentCertificationNamespace, newAdmin)
}

func (c *EquipmentCertificationContract) GetAdmin(ctx contractapi.TransactionContextInterface) (string, error) {
	logger.Debug("Chaincode Call: equipment-certification GetAdmin")
	return getAdmin(c.certifiers(ctx).AdminRegistry)
}

func (c *EquipmentCertificationContract) IsAdmin(ctx contractapi.TransactionContextInterface, identity string) (bool, error) {
	logger.Debugf("Chaincode Call: equipment-certification IsAdmin for '%s'", identity)
	return c.certifiers(ctx).IsAdmin(registry.Identity(identity))
}

// --- Certifiers ---

func (c *EquipmentCertificationContract) AddCertifier(ctx contractapi.TransactionContextInterface, certifier string) error {
	logger.Infof("Chaincode Call: AddCertifier '%s'", certifier)
	caller, err := callerIdentity(ctx)
	if err != nil {
		return fmt.Errorf("AddCertifier: failed to get caller identity: %w", err)
	}
	if err := c.certifiers(ctx).AddCertifier(caller, registry.Identity(certifier)); err != nil {
		return err
	}
	emitEvent(ctx, registry.EquipmentCertificationNamespace, eventCertifierAdded, caller, map[string]interface{}{"certifierId": certifier})
	return nil
}

// RemoveCertifier revokes certifier rights; existing certifications stay as they are.
func (c *EquipmentCertificationContract) RemoveCertifier(ctx contractapi.TransactionContextInterface, certifier string) error {
	logger.Infof("Chaincode Call: RemoveCertifier '%s'", certifier)
	caller, err := callerIdentity(ctx)
	if err != nil {
		return fmt.Errorf("RemoveCertifier: failed to get caller identity: %w", err)
	}
	if err := c.certifiers(ctx).RemoveCertifier(caller, registry.Identity(certifier)); err != nil {
		return err
	}
	emitEvent(ctx, registry.EquipmentCertificationNamespace, eventCertifierRemoved, caller, map[string]interface{}{"certifierId": certifier})
	return nil
}

func (c *EquipmentCertificationContract) IsCertifier(ctx contractapi.TransactionContextInterface, identity string) (bool, error) {
	logger.Debugf("Chaincode Call: IsCertifier '%s'", identity)
	return c.certifiers(ctx).IsCertifier(registry.Identity(identity))
}

func (c *EquipmentCertificationContract) GetCertifiers(ctx contractapi.TransactionContextInterface, pageSizeStr string, bookmark string) (*model.IdentityPage, error) {
	pageSize := parsePageSize(pageSizeStr)
	logger.Debugf("Chaincode Call: GetCertifiers (pageSize: %d, bookmark: '%s')", pageSize, bookmark)
	certifiers, next, err := c.certifiers(ctx).Certifiers(pageSize, bookmark)
	if err != nil {
		return nil, fmt.Errorf("GetCertifiers: %w", err)
	}
	return newIdentityPage(certifiers, next), nil
}
