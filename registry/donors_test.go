package registry

func (s *RegistrySuite) newDonorRegistry() *DonorRegistry {
	donors := NewDonorRegistry(s.stub)
	s.Require().NoError(donors.Initialize(deployer))
	return donors
}

func (s *RegistrySuite) TestAddVerifiedDonor() {
	s.Run("admin adds a verified donor", func() {
		donors := s.newDonorRegistry()
		s.Require().NoError(donors.AddVerifiedDonor(deployer, donor1))

		ok, err := donors.IsVerifiedDonor(donor1)
		s.Require().NoError(err)
		s.True(ok)
	})
}

func (s *RegistrySuite) TestAddVerifiedDonorRejections() {
	donors := s.newDonorRegistry()

	s.Run("non-admin is rejected regardless of donor state", func() {
		s.requireCode(donors.AddVerifiedDonor(nonAdmin, donor1), CodeNotAuthorized)
		s.Require().NoError(donors.AddVerifiedDonor(deployer, donor1))
		s.requireCode(donors.AddVerifiedDonor(nonAdmin, donor1), CodeNotAuthorized)
		s.requireCode(donors.AddVerifiedDonor(nonAdmin, ""), CodeNotAuthorized)
	})

	s.Run("second add of the same donor fails", func() {
		err := donors.AddVerifiedDonor(deployer, donor1)
		s.Require().ErrorIs(err, ErrAlreadyVerified)
		s.requireCode(err, CodeAlreadyExists)

		ok, err := donors.IsVerifiedDonor(donor1)
		s.Require().NoError(err)
		s.True(ok)
	})

	s.Run("donor that cannot be keyed is an invalid argument", func() {
		s.Require().ErrorIs(donors.AddVerifiedDonor(deployer, "bad\x00id"), ErrInvalidArgument)
		s.Require().ErrorIs(donors.AddVerifiedDonor(deployer, "\xff"), ErrInvalidArgument)
	})
}

func (s *RegistrySuite) TestBlankIdentitiesAreOpaque() {
	donors := s.newDonorRegistry()

	for _, id := range []Identity{"", "  "} {
		s.Require().NoError(donors.AddVerifiedDonor(deployer, id))

		ok, err := donors.IsVerifiedDonor(id)
		s.Require().NoError(err)
		s.True(ok, "identity %q", id)

		err = donors.AddVerifiedDonor(deployer, id)
		s.requireCode(err, CodeAlreadyExists)
	}

	ok, err := donors.IsVerifiedDonor(" ")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *RegistrySuite) TestRemoveVerifiedDonor() {
	donors := s.newDonorRegistry()

	s.Run("add then remove round trip", func() {
		s.Require().NoError(donors.AddVerifiedDonor(deployer, donor1))
		s.Require().NoError(donors.RemoveVerifiedDonor(deployer, donor1))

		ok, err := donors.IsVerifiedDonor(donor1)
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("removing a never-added donor fails with not found", func() {
		err := donors.RemoveVerifiedDonor(deployer, donor2)
		s.Require().ErrorIs(err, ErrNotFound)
		s.requireCode(err, CodeNotFound)
	})

	s.Run("non-admin cannot remove", func() {
		s.Require().NoError(donors.AddVerifiedDonor(deployer, donor2))
		s.requireCode(donors.RemoveVerifiedDonor(nonAdmin, donor2), CodeNotAuthorized)

		ok, err := donors.IsVerifiedDonor(donor2)
		s.Require().NoError(err)
		s.True(ok)
	})

	s.Run("donor can be verified again after removal", func() {
		s.Require().NoError(donors.AddVerifiedDonor(deployer, donor1))
	})
}

func (s *RegistrySuite) TestVerifiedDonors() {
	donors := s.newDonorRegistry()

	list, next, err := donors.VerifiedDonors(10, "")
	s.Require().NoError(err)
	s.Empty(list)
	s.NotNil(list)
	s.Empty(next)

	s.Require().NoError(donors.AddVerifiedDonor(deployer, donor2))
	s.Require().NoError(donors.AddVerifiedDonor(deployer, donor1))
	s.Require().NoError(donors.AddVerifiedDonor(deployer, nonAdmin))

	list, next, err = donors.VerifiedDonors(10, "")
	s.Require().NoError(err)
	s.Equal([]Identity{donor1, donor2, nonAdmin}, list)
	s.Empty(next)

	s.Run("pages follow the bookmark", func() {
		first, next, err := donors.VerifiedDonors(2, "")
		s.Require().NoError(err)
		s.Equal([]Identity{donor1, donor2}, first)
		s.Require().NotEmpty(next)

		second, next, err := donors.VerifiedDonors(2, next)
		s.Require().NoError(err)
		s.Equal([]Identity{nonAdmin}, second)
		s.Empty(next)
	})
}

func (s *RegistrySuite) TestVerifiedDonorsIterationFailure() {
	ledger := &failingScanLedger{Stub: s.stub, err: errLedgerDown}
	donors := NewDonorRegistry(ledger)
	s.Require().NoError(donors.Initialize(deployer))
	s.Require().NoError(donors.AddVerifiedDonor(deployer, donor1))

	_, _, err := donors.VerifiedDonors(10, "")
	s.Require().ErrorIs(err, errLedgerDown)
}

func (s *RegistrySuite) TestIsVerifiedDonorNeverFailsOnBadInput() {
	donors := s.newDonorRegistry()

	ok, err := donors.IsVerifiedDonor("")
	s.Require().NoError(err)
	s.False(ok)

	ok, err = donors.IsVerifiedDonor("bad\x00id")
	s.Require().NoError(err)
	s.False(ok)
}
