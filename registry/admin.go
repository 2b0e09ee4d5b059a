package registry

import (
	"encoding/json"
	"fmt"

	"medequip/model"
)

// AdminRegistry holds the single admin identity of one registry namespace.
type AdminRegistry struct {
	ledger    Ledger
	namespace string
}

// NewAdminRegistry creates the admin cell accessor for namespace.
func NewAdminRegistry(ledger Ledger, namespace string) *AdminRegistry {
	return &AdminRegistry{ledger: ledger, namespace: namespace}
}

func (a *AdminRegistry) adminKey() (string, error) {
	return a.ledger.CreateCompositeKey(adminObjectType, []string{a.namespace})
}

// load returns the stored admin record, or nil if the namespace was never initialized.
func (a *AdminRegistry) load() (*model.AdminRecord, error) {
	key, err := a.adminKey()
	if err != nil {
		return nil, fmt.Errorf("failed to create admin key for '%s': %w", a.namespace, err)
	}
	raw, err := a.ledger.GetState(key)
	if err != nil {
		return nil, fmt.Errorf("ledger error reading admin of '%s': %w", a.namespace, err)
	}
	if raw == nil {
		return nil, nil
	}
	var rec model.AdminRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal admin record of '%s': %w", a.namespace, err)
	}
	return &rec, nil
}

func (a *AdminRegistry) store(admin, assignedBy Identity) error {
	now, err := txTime(a.ledger)
	if err != nil {
		return err
	}
	rec := model.AdminRecord{
		ObjectType: adminObjectType,
		Namespace:  a.namespace,
		Admin:      string(admin),
		AssignedBy: string(assignedBy),
		AssignedAt: now,
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal admin record of '%s': %w", a.namespace, err)
	}
	key, err := a.adminKey()
	if err != nil {
		return fmt.Errorf("failed to create admin key for '%s': %w", a.namespace, err)
	}
	if err := a.ledger.PutState(key, raw); err != nil {
		return fmt.Errorf("failed to save admin of '%s': %w", a.namespace, err)
	}
	return nil
}

// Initialize installs the deployer-supplied admin. It succeeds only once per namespace.
func (a *AdminRegistry) Initialize(admin Identity) error {
	if err := admin.validate("admin"); err != nil {
		return err
	}
	existing, err := a.load()
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyInitialized
	}
	if err := a.store(admin, admin); err != nil {
		return err
	}
	logger.Infof("Registry '%s' initialized with admin '%s'", a.namespace, admin)
	return nil
}

// Admin returns the current admin identity.
func (a *AdminRegistry) Admin() (Identity, error) {
	rec, err := a.load()
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", ErrNotInitialized
	}
	return Identity(rec.Admin), nil
}

// IsAdmin reports whether id is the current admin. It is false before initialization.
func (a *AdminRegistry) IsAdmin(id Identity) (bool, error) {
	rec, err := a.load()
	if err != nil {
		return false, err
	}
	return rec != nil && Identity(rec.Admin) == id, nil
}

// requireAdmin is the gate shared by every admin-only operation.
func (a *AdminRegistry) requireAdmin(caller Identity) error {
	ok, err := a.IsAdmin(caller)
	if err != nil {
		return err
	}
	if !ok {
		logger.Warningf("Registry '%s': caller '%s' rejected, not the admin", a.namespace, caller)
		return ErrNotAuthorized
	}
	return nil
}

// TransferAdmin hands admin rights to newAdmin. Transferring to the current admin is a no-op success.
func (a *AdminRegistry) TransferAdmin(caller, newAdmin Identity) error {
	if err := a.requireAdmin(caller); err != nil {
		return err
	}
	if err := newAdmin.validate("newAdmin"); err != nil {
		return err
	}
	if err := a.store(newAdmin, caller); err != nil {
		return err
	}
	logger.Infof("Registry '%s': admin transferred from '%s' to '%s'", a.namespace, caller, newAdmin)
	return nil
}
