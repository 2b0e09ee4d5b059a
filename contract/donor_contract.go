package contract

import (
	"fmt"

	"medequip/model"
	"medequip/registry"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// DonorVerificationContract exposes the donor verification registry.
// @contract:DonorVerificationContract
type DonorVerificationContract struct {
	contractapi.Contract
}

// NewDonorVerificationContract returns the contract registered under the donor-verification name.
func NewDonorVerificationContract() *DonorVerificationContract {
	c := new(DonorVerificationContract)
	c.Name = registry.DonorVerificationNamespace
	return c
}

func (c *DonorVerificationContract) donors(ctx contractapi.TransactionContextInterface) *registry.DonorRegistry {
	return registry.NewDonorRegistry(ctx.GetStub())
}

// --- Admin ---

func (c *DonorVerificationContract) InitLedger(ctx contractapi.TransactionContextInterface, adminID string) error {
	logger.Infof("Chaincode Call: donor-verification InitLedger with admin '%s'", adminID)
	return initLedger(ctx, c.donors(ctx).AdminRegistry, registry.DonorVerificationNamespace, adminID)
}

func (c *DonorVerificationContract) TransferAdmin(ctx contractapi.TransactionContextInterface, newAdmin string) error {
	logger.Infof("Chaincode Call: donor-verification TransferAdmin to '%s'", newAdmin)
	return transferAdmin(ctx, c.donors(ctx).AdminRegistry, registry.DonorVerificationNamespace, newAdmin)
}

func (c *DonorVerificationContract) GetAdmin(ctx contractapi.TransactionContextInterface) (string, error) {
	logger.Debug("Chaincode Call: donor-verification GetAdmin")
	return getAdmin(c.donors(ctx).AdminRegistry)
}

func (c *DonorVerificationContract) IsAdmin(ctx contractapi.TransactionContextInterface, identity string) (bool, error) {
	logger.Debugf("Chaincode Call: donor-verification IsAdmin for '%s'", identity)
	return c.donors(ctx).IsAdmin(registry.Identity(identity))
}

// --- Verified donors ---

func (c *DonorVerificationContract) AddVerifiedDonor(ctx contractapi.TransactionContextInterface, donor string) error {
	logger.Infof("Chaincode Call: AddVerifiedDonor '%s'", donor)
	caller, err := callerIdentity(ctx)
	if err != nil {
		return fmt.Errorf("AddVerifiedDonor: failed to get caller identity: %w", err)
	}
	if err := c.donors(ctx).AddVerifiedDonor(caller, registry.Identity(donor)); err != nil {
		return err
	}
	emitEvent(ctx, registry.DonorVerificationNamespace, eventDonorVerified, caller, map[string]interface{}{"donorId": donor})
	return nil
}

func (c *DonorVerificationContract) RemoveVerifiedDonor(ctx contractapi.TransactionContextInterface, donor string) error {
	logger.Infof("Chaincode Call: RemoveVerifiedDonor '%s'", donor)
	caller, err := callerIdentity(ctx)
	if err != nil {
		return fmt.Errorf("RemoveVerifiedDonor: failed to get caller identity: %w", err)
	}
	if err := c.donors(ctx).RemoveVerifiedDonor(caller, registry.Identity(donor)); err != nil {
		return err
	}
	emitEvent(ctx, registry.DonorVerificationNamespace, eventDonorVerificationRemoved, caller, map[string]interface{}{"donorId": donor})
	return nil
}

func (c *DonorVerificationContract) IsVerifiedDonor(ctx contractapi.TransactionContextInterface, donor string) (bool, error) {
	logger.Debugf("Chaincode Call: IsVerifiedDonor '%s'", donor)
	return c.donors(ctx).IsVerifiedDonor(registry.Identity(donor))
}

// GetVerifiedDonors returns one page of verified donors. Public, no admin privileges required.
func (c *DonorVerificationContract) GetVerifiedDonors(ctx contractapi.TransactionContextInterface, pageSizeStr string, bookmark string) (*model.IdentityPage, error) {
	pageSize := parsePageSize(pageSizeStr)
	logger.Debugf("Chaincode Call: GetVerifiedDonors (pageSize: %d, bookmark: '%s')", pageSize, bookmark)
	donors, next, err := c.donors(ctx).VerifiedDonors(pageSize, bookmark)
	if err != nil {
		return nil, fmt.Errorf("GetVerifiedDonors: %w", err)
	}
	return newIdentityPage(donors, next), nil
}
