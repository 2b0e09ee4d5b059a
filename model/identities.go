// File: model/identities.go
package model

import "time"

// AdminRecord is the single admin cell of a registry namespace.
type AdminRecord struct {
	ObjectType string    `json:"objectType"` // Set to the composite key object type (Admin)
	Namespace  string    `json:"namespace"`  // Registry namespace owning this admin cell
	Admin      string    `json:"admin"`      // Full identity of the current admin
	AssignedBy string    `json:"assignedBy"` // Identity that installed or transferred the admin
	AssignedAt time.Time `json:"assignedAt"`
}

// MembershipRecord marks an identity as a member of a role set (verified donors, certifiers).
// Presence of the record is the membership; the fields are audit metadata only.
type MembershipRecord struct {
	ObjectType string    `json:"objectType"` // Set to the composite key object type (Member)
	Namespace  string    `json:"namespace"`
	Role       string    `json:"role"`     // Role set name, e.g. "verified-donor" or "certifier"
	Identity   string    `json:"identity"` // Member identity
	AddedBy    string    `json:"addedBy"`  // Admin that added this member
	AddedAt    time.Time `json:"addedAt"`
}

// IdentityPage is the structure returned by paginated role set listings.
type IdentityPage struct {
	Identities   []string `json:"identities"`
	NextBookmark string   `json:"nextBookmark"`
	FetchedCount int32    `json:"fetchedCount"`
}
