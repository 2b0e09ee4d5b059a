package contract

import (
	"encoding/json"
	"fmt"

	"medequip/model"
	"medequip/registry"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// --- Query Functions ---

// GetCertification returns the certification of equipmentID for donor, or nil if none exists.
func (c *EquipmentCertificationContract) GetCertification(ctx contractapi.TransactionContextInterface, equipmentID string, donor string) (*model.CertificationRecord, error) {
	logger.Debugf("GetCertification: Querying '%s' for donor '%s'", equipmentID, donor)
	rec, found, err := c.store(ctx).GetCertification(equipmentID, registry.Identity(donor))
	if err != nil {
		return nil, fmt.Errorf("GetCertification: %w", err)
	}
	if !found {
		return nil, nil
	}
	return rec, nil
}

func (c *EquipmentCertificationContract) GetCertificationsForEquipment(ctx contractapi.TransactionContextInterface, equipmentID string) ([]*model.CertificationRecord, error) {
	logger.Debugf("GetCertificationsForEquipment: Querying '%s'", equipmentID)
	records, err := c.store(ctx).CertificationsForEquipment(equipmentID)
	if err != nil {
		return nil, fmt.Errorf("GetCertificationsForEquipment: %w", err)
	}
	return records, nil // Will be [] if empty, not null
}

// IsCertificationCurrent reports whether the certification exists and expires after height.
func (c *EquipmentCertificationContract) IsCertificationCurrent(ctx contractapi.TransactionContextInterface, equipmentID string, donor string, height uint64) (bool, error) {
	logger.Debugf("IsCertificationCurrent: '%s' for donor '%s' at height %d", equipmentID, donor, height)
	return c.store(ctx).IsCertificationCurrent(equipmentID, registry.Identity(donor), height)
}

// GetCertificationHistory returns every committed state of one certification record.
func (c *EquipmentCertificationContract) GetCertificationHistory(ctx contractapi.TransactionContextInterface, equipmentID string, donor string) ([]model.HistoryEntry, error) {
	logger.Debugf("GetCertificationHistory: Querying '%s' for donor '%s'", equipmentID, donor)
	key, err := c.store(ctx).CertificationKey(equipmentID, registry.Identity(donor))
	if err != nil {
		return nil, fmt.Errorf("GetCertificationHistory: failed to create certification key: %w", err)
	}
	historyIter, err := ctx.GetStub().GetHistoryForKey(key)
	if err != nil {
		return nil, fmt.Errorf("GetCertificationHistory: failed to get history for '%s'/'%s': %w", equipmentID, donor, err)
	}
	defer historyIter.Close()

	entries := []model.HistoryEntry{}
	for historyIter.HasNext() {
		item, iterErr := historyIter.Next()
		if iterErr != nil {
			return nil, fmt.Errorf("GetCertificationHistory: failed to iterate history for '%s'/'%s': %w", equipmentID, donor, iterErr)
		}
		entry := model.HistoryEntry{
			TxID:      item.TxId,
			Timestamp: item.Timestamp.AsTime(),
			IsDelete:  item.IsDelete,
		}
		if !item.IsDelete {
			var rec model.CertificationRecord
			if err := json.Unmarshal(item.Value, &rec); err != nil {
				logger.Warningf("GetCertificationHistory: Failed to unmarshal value in tx '%s': %v. Skipping.", item.TxId, err)
				continue
			}
			entry.Record = &rec
			entry.CertifiedBy = rec.CertifiedBy
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
