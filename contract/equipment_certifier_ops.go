package contract

import (
	"fmt"

	"medequip/model"
	"medequip/registry"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// --- Certifier Operations ---

// CertifyEquipment records the first certification of equipmentID donated by donor.
// expiry is a ledger height and is stored as given.
func (c *EquipmentCertificationContract) CertifyEquipment(ctx contractapi.TransactionContextInterface,
	equipmentID string, donor string, status string, expiry uint64) error {

	caller, err := callerIdentity(ctx)
	if err != nil {
		return fmt.Errorf("CertifyEquipment: failed to get caller identity: %w", err)
	}
	logger.Infof("Chaincode Call: CertifyEquipment '%s' for donor '%s' by '%s'", equipmentID, donor, caller)

	rec, err := c.store(ctx).CertifyEquipment(caller, equipmentID, registry.Identity(donor), model.CertificationStatus(status), expiry)
	if err != nil {
		return err
	}
	emitEvent(ctx, registry.EquipmentCertificationNamespace, eventEquipmentCertified, caller, certificationPayload(rec))
	return nil
}

// UpdateCertification overwrites status and expiry of an existing certification.
// Any current certifier may update; the updater becomes the certifier of record.
func (c *EquipmentCertificationContract) UpdateCertification(ctx contractapi.TransactionContextInterface,
	equipmentID string, donor string, status string, expiry uint64) error {

	caller, err := callerIdentity(ctx)
	if err != nil {
		return fmt.Errorf("UpdateCertification: failed to get caller identity: %w", err)
	}
	logger.Infof("Chaincode Call: UpdateCertification '%s' for donor '%s' by '%s'", equipmentID, donor, caller)

	rec, err := c.store(ctx).UpdateCertification(caller, equipmentID, registry.Identity(donor), model.CertificationStatus(status), expiry)
	if err != nil {
		return err
	}
	emitEvent(ctx, registry.EquipmentCertificationNamespace, eventCertificationUpdated, caller, certificationPayload(rec))
	return nil
}

func certificationPayload(rec *model.CertificationRecord) map[string]interface{} {
	return map[string]interface{}{
		"equipmentId": rec.EquipmentID,
		"donorId":     rec.DonorID,
		"status":      rec.Status,
		"expiry":      rec.Expiry,
		"certifiedBy": rec.CertifiedBy,
	}
}
