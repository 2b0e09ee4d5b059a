package registry

func (s *RegistrySuite) TestAdminLifecycle() {
	s.Run("no admin before initialization", func() {
		admins := NewAdminRegistry(s.stub, "fresh")

		ok, err := admins.IsAdmin(deployer)
		s.Require().NoError(err)
		s.False(ok)

		_, err = admins.Admin()
		s.Require().ErrorIs(err, ErrNotInitialized)

		s.requireCode(admins.TransferAdmin(deployer, nonAdmin), CodeNotAuthorized)
	})

	s.Run("initialize is one-shot", func() {
		admins := NewAdminRegistry(s.stub, "one-shot")
		s.Require().NoError(admins.Initialize(deployer))

		err := admins.Initialize(nonAdmin)
		s.Require().ErrorIs(err, ErrAlreadyInitialized)

		current, err := admins.Admin()
		s.Require().NoError(err)
		s.Equal(deployer, current)
	})

	s.Run("initialize rejects an admin that cannot be keyed", func() {
		admins := NewAdminRegistry(s.stub, "unkeyable")
		s.Require().ErrorIs(admins.Initialize("bad\x00id"), ErrInvalidArgument)
	})
}

func (s *RegistrySuite) TestTransferAdmin() {
	s.Run("transfer is immediate and exclusive", func() {
		donors := NewDonorRegistry(s.stub)
		s.Require().NoError(donors.Initialize(deployer))

		s.Require().NoError(donors.TransferAdmin(deployer, nonAdmin))
		s.nextTx()

		s.Require().NoError(donors.AddVerifiedDonor(nonAdmin, donor1))
		s.requireCode(donors.AddVerifiedDonor(deployer, donor2), CodeNotAuthorized)

		isOld, err := donors.IsAdmin(deployer)
		s.Require().NoError(err)
		s.False(isOld)
	})

	s.Run("transfer to self is a permitted no-op", func() {
		admins := NewAdminRegistry(s.stub, "self")
		s.Require().NoError(admins.Initialize(deployer))
		s.Require().NoError(admins.TransferAdmin(deployer, deployer))

		current, err := admins.Admin()
		s.Require().NoError(err)
		s.Equal(deployer, current)
	})

	s.Run("non-admin cannot transfer", func() {
		admins := NewAdminRegistry(s.stub, "guarded")
		s.Require().NoError(admins.Initialize(deployer))

		s.requireCode(admins.TransferAdmin(nonAdmin, nonAdmin), CodeNotAuthorized)

		current, err := admins.Admin()
		s.Require().NoError(err)
		s.Equal(deployer, current)
	})

	s.Run("authorization is checked before the new admin argument", func() {
		admins := NewAdminRegistry(s.stub, "ordered")
		s.Require().NoError(admins.Initialize(deployer))

		s.requireCode(admins.TransferAdmin(nonAdmin, "bad\x00id"), CodeNotAuthorized)
		s.Require().ErrorIs(admins.TransferAdmin(deployer, "bad\x00id"), ErrInvalidArgument)
	})
}

func (s *RegistrySuite) TestNamespacesAreIndependent() {
	donors := NewDonorRegistry(s.stub)
	certifiers := NewCertifierRegistry(s.stub)
	s.Require().NoError(donors.Initialize(deployer))
	s.Require().NoError(certifiers.Initialize(nonAdmin))

	s.Require().NoError(donors.TransferAdmin(deployer, donor1))

	certAdmin, err := certifiers.Admin()
	s.Require().NoError(err)
	s.Equal(nonAdmin, certAdmin)

	s.requireCode(certifiers.AddCertifier(donor1, certifier), CodeNotAuthorized)
}

func (s *RegistrySuite) TestAdminReadFailure() {
	ledger := &failingLedger{Stub: s.stub}
	admins := NewAdminRegistry(ledger, "faulty")
	s.Require().NoError(admins.Initialize(deployer))

	ledger.err = errLedgerDown
	_, err := admins.IsAdmin(deployer)
	s.Require().ErrorIs(err, errLedgerDown)

	err = admins.TransferAdmin(deployer, nonAdmin)
	s.Require().ErrorIs(err, errLedgerDown)
	_, coded := CodeOf(err)
	s.False(coded)
}
