package registry

const verifiedDonorRole = "verified-donor"

// DonorRegistry is the donor verification module: an admin cell plus the verified-donor set.
type DonorRegistry struct {
	*AdminRegistry
	donors *memberSet
}

// NewDonorRegistry binds the donor verification module to ledger.
func NewDonorRegistry(ledger Ledger) *DonorRegistry {
	return &DonorRegistry{
		AdminRegistry: NewAdminRegistry(ledger, DonorVerificationNamespace),
		donors: &memberSet{
			ledger:       ledger,
			namespace:    DonorVerificationNamespace,
			role:         verifiedDonorRole,
			errDuplicate: ErrAlreadyVerified,
		},
	}
}

// AddVerifiedDonor marks donor as verified. Only the admin may call it, and a donor
// that is already verified is rejected with ErrAlreadyVerified.
func (r *DonorRegistry) AddVerifiedDonor(caller, donor Identity) error {
	if err := r.requireAdmin(caller); err != nil {
		return err
	}
	if err := r.donors.add(caller, donor); err != nil {
		return err
	}
	logger.Infof("Donor '%s' verified by admin '%s'", donor, caller)
	return nil
}

// RemoveVerifiedDonor revokes the verification of donor.
func (r *DonorRegistry) RemoveVerifiedDonor(caller, donor Identity) error {
	if err := r.requireAdmin(caller); err != nil {
		return err
	}
	if err := r.donors.remove(donor); err != nil {
		return err
	}
	logger.Infof("Donor '%s' verification removed by admin '%s'", donor, caller)
	return nil
}

func (r *DonorRegistry) IsVerifiedDonor(donor Identity) (bool, error) {
	return r.donors.has(donor)
}

// VerifiedDonors returns one page of the verified-donor set and the bookmark of the next page.
func (r *DonorRegistry) VerifiedDonors(pageSize int32, bookmark string) ([]Identity, string, error) {
	return r.donors.page(pageSize, bookmark)
}
