package registry

const certifierRole = "certifier"

// CertifierRegistry is the admin cell and certifier set of the equipment certification module.
type CertifierRegistry struct {
	*AdminRegistry
	certifiers *memberSet
}

// NewCertifierRegistry binds the certifier set to ledger.
func NewCertifierRegistry(ledger Ledger) *CertifierRegistry {
	return &CertifierRegistry{
		AdminRegistry: NewAdminRegistry(ledger, EquipmentCertificationNamespace),
		certifiers: &memberSet{
			ledger:       ledger,
			namespace:    EquipmentCertificationNamespace,
			role:         certifierRole,
			errDuplicate: ErrAlreadyCertifier,
		},
	}
}

func (r *CertifierRegistry) AddCertifier(caller, certifier Identity) error {
	if err := r.requireAdmin(caller); err != nil {
		return err
	}
	if err := r.certifiers.add(caller, certifier); err != nil {
		return err
	}
	logger.Infof("Certifier '%s' added by admin '%s'", certifier, caller)
	return nil
}

// RemoveCertifier revokes certifier rights. Records the certifier already wrote are left untouched.
func (r *CertifierRegistry) RemoveCertifier(caller, certifier Identity) error {
	if err := r.requireAdmin(caller); err != nil {
		return err
	}
	if err := r.certifiers.remove(certifier); err != nil {
		return err
	}
	logger.Infof("Certifier '%s' removed by admin '%s'", certifier, caller)
	return nil
}

func (r *CertifierRegistry) IsCertifier(id Identity) (bool, error) {
	return r.certifiers.has(id)
}

func (r *CertifierRegistry) Certifiers(pageSize int32, bookmark string) ([]Identity, string, error) {
	return r.certifiers.page(pageSize, bookmark)
}
