package registry

import (
	"encoding/json"
	"fmt"

	"medequip/model"
)

// CertifierChecker is the membership read the certification store authorizes against.
type CertifierChecker interface {
	IsCertifier(id Identity) (bool, error)
}

// CertificationStore maps (equipmentId, donorId) to a certification record.
// Records are created once by a certifier and afterwards only overwritten.
type CertificationStore struct {
	ledger     Ledger
	namespace  string
	certifiers CertifierChecker
}

// NewCertificationStore binds the store to ledger, gated by certifiers.
func NewCertificationStore(ledger Ledger, certifiers CertifierChecker) *CertificationStore {
	return &CertificationStore{
		ledger:     ledger,
		namespace:  EquipmentCertificationNamespace,
		certifiers: certifiers,
	}
}

func (s *CertificationStore) requireCertifier(caller Identity) error {
	ok, err := s.certifiers.IsCertifier(caller)
	if err != nil {
		return fmt.Errorf("failed to check certifier status of '%s': %w", caller, err)
	}
	if !ok {
		logger.Warningf("Caller '%s' rejected, not a certifier", caller)
		return ErrNotCertifier
	}
	return nil
}

func validateCertificationArgs(equipmentID string, donor Identity) error {
	if err := validateKeyPart(equipmentID, "equipmentId"); err != nil {
		return err
	}
	return donor.validate("donorId")
}

// CertificationKey returns the world-state key of the (equipmentID, donor) record.
func (s *CertificationStore) CertificationKey(equipmentID string, donor Identity) (string, error) {
	return s.ledger.CreateCompositeKey(certificationObjectType, []string{s.namespace, equipmentID, string(donor)})
}

func (s *CertificationStore) load(key string) (*model.CertificationRecord, error) {
	raw, err := s.ledger.GetState(key)
	if err != nil {
		return nil, fmt.Errorf("ledger error reading certification: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	var rec model.CertificationRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal certification: %w", err)
	}
	return &rec, nil
}

func (s *CertificationStore) save(key string, rec *model.CertificationRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal certification for '%s'/'%s': %w", rec.EquipmentID, rec.DonorID, err)
	}
	if err := s.ledger.PutState(key, raw); err != nil {
		return fmt.Errorf("failed to save certification for '%s'/'%s': %w", rec.EquipmentID, rec.DonorID, err)
	}
	return nil
}

// CertifyEquipment creates the record for (equipmentID, donor). Expiry is stored as given.
func (s *CertificationStore) CertifyEquipment(caller Identity, equipmentID string, donor Identity, status model.CertificationStatus, expiry uint64) (*model.CertificationRecord, error) {
	if err := s.requireCertifier(caller); err != nil {
		return nil, err
	}
	if err := validateCertificationArgs(equipmentID, donor); err != nil {
		return nil, err
	}
	key, err := s.CertificationKey(equipmentID, donor)
	if err != nil {
		return nil, fmt.Errorf("failed to create certification key: %w", err)
	}
	existing, err := s.load(key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyCertified
	}

	now, err := txTime(s.ledger)
	if err != nil {
		return nil, err
	}
	rec := &model.CertificationRecord{
		ObjectType:  certificationObjectType,
		EquipmentID: equipmentID,
		DonorID:     string(donor),
		Status:      status,
		Expiry:      expiry,
		CertifiedBy: string(caller),
		CertifiedAt: now,
		UpdatedAt:   now,
	}
	if err := s.save(key, rec); err != nil {
		return nil, err
	}
	logger.Infof("Equipment '%s' of donor '%s' certified '%s' (expiry %d) by '%s'", equipmentID, donor, status, expiry, caller)
	return rec, nil
}

// UpdateCertification overwrites status and expiry of an existing record.
// The updater becomes the certifier of record.
func (s *CertificationStore) UpdateCertification(caller Identity, equipmentID string, donor Identity, status model.CertificationStatus, expiry uint64) (*model.CertificationRecord, error) {
	if err := s.requireCertifier(caller); err != nil {
		return nil, err
	}
	if err := validateCertificationArgs(equipmentID, donor); err != nil {
		return nil, err
	}
	key, err := s.CertificationKey(equipmentID, donor)
	if err != nil {
		return nil, fmt.Errorf("failed to create certification key: %w", err)
	}
	rec, err := s.load(key)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}

	now, err := txTime(s.ledger)
	if err != nil {
		return nil, err
	}
	rec.Status = status
	rec.Expiry = expiry
	rec.CertifiedBy = string(caller)
	rec.UpdatedAt = now
	if err := s.save(key, rec); err != nil {
		return nil, err
	}
	logger.Infof("Certification of equipment '%s' for donor '%s' updated to '%s' (expiry %d) by '%s'", equipmentID, donor, status, expiry, caller)
	return rec, nil
}

// GetCertification returns the record for (equipmentID, donor) and whether it exists.
// Expired records are returned like any other.
func (s *CertificationStore) GetCertification(equipmentID string, donor Identity) (*model.CertificationRecord, bool, error) {
	if validateCertificationArgs(equipmentID, donor) != nil {
		return nil, false, nil
	}
	key, err := s.CertificationKey(equipmentID, donor)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create certification key: %w", err)
	}
	rec, err := s.load(key)
	if err != nil {
		return nil, false, err
	}
	return rec, rec != nil, nil
}

// CertificationsForEquipment lists every donor's record for equipmentID.
func (s *CertificationStore) CertificationsForEquipment(equipmentID string) ([]*model.CertificationRecord, error) {
	if err := validateKeyPart(equipmentID, "equipmentId"); err != nil {
		return nil, err
	}
	iter, err := s.ledger.GetStateByPartialCompositeKey(certificationObjectType, []string{s.namespace, equipmentID})
	if err != nil {
		return nil, fmt.Errorf("failed to get certification iterator for '%s': %w", equipmentID, err)
	}
	defer iter.Close()

	records := []*model.CertificationRecord{}
	for iter.HasNext() {
		kv, err := iter.Next()
		if err != nil {
			return nil, fmt.Errorf("failed to iterate certifications of '%s': %w", equipmentID, err)
		}
		var rec model.CertificationRecord
		if err := json.Unmarshal(kv.Value, &rec); err != nil {
			logger.Warningf("Failed to unmarshal certification at key '%s': %v. Skipping.", kv.Key, err)
			continue
		}
		records = append(records, &rec)
	}
	return records, nil
}

// IsCertificationCurrent reports whether a record exists and has not expired at height.
func (s *CertificationStore) IsCertificationCurrent(equipmentID string, donor Identity, height uint64) (bool, error) {
	rec, found, err := s.GetCertification(equipmentID, donor)
	if err != nil || !found {
		return false, err
	}
	return height < rec.Expiry, nil
}
