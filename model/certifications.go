package model

import "time"

// CertificationStatus is the condition label a certifier assigns to donated equipment.
// The well-known values are listed below, but any non-empty label is accepted.
type CertificationStatus string

const (
	StatusFunctional  CertificationStatus = "functional"   // Equipment inspected and working
	StatusNeedsRepair CertificationStatus = "needs-repair" // Equipment inspected, repair required before use
)

// CertificationRecord is the certification of one piece of equipment donated by one donor.
// It is keyed by (EquipmentID, DonorID); at most one exists per key.
type CertificationRecord struct {
	ObjectType  string              `json:"objectType"` // Set to the composite key object type (Certification)
	EquipmentID string              `json:"equipmentId"`
	DonorID     string              `json:"donorId"`
	Status      CertificationStatus `json:"status"`
	Expiry      uint64              `json:"expiry"`      // Ledger-relative height; not validated on write
	CertifiedBy string              `json:"certifiedBy"` // Certifier of record, replaced on every update
	CertifiedAt time.Time           `json:"certifiedAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// HistoryEntry represents one historical state of a certification record.
type HistoryEntry struct {
	TxID        string               `json:"txId"`
	Timestamp   time.Time            `json:"timestamp"`
	IsDelete    bool                 `json:"isDelete"`
	Record      *CertificationRecord `json:"record,omitempty"` // Decoded value at that time, nil on delete
	CertifiedBy string               `json:"certifiedBy"`
}
