package contract

import (
	"errors"

	"medequip/registry"
)

func (s *ContractSuite) initDonors() {
	s.Require().NoError(s.donors.InitLedger(s.as(deployerID), ""))
	s.drainEvents()
}

func (s *ContractSuite) TestDonorInitLedger() {
	s.Run("empty admin bootstraps the caller", func() {
		s.Require().NoError(s.donors.InitLedger(s.as(deployerID), ""))

		admin, err := s.donors.GetAdmin(s.as(nonAdminID))
		s.Require().NoError(err)
		s.Equal(deployerID, admin)

		events := s.drainEvents()
		s.Require().Len(events, 1)
		s.Equal(eventAdminInitialized, events[0].name)
		s.Equal(deployerID, events[0].payload["admin"])
		s.Equal(registry.DonorVerificationNamespace, events[0].payload["namespace"])
		s.Equal("Org1MSP", events[0].payload["actorMspId"])
	})

	s.Run("second bootstrap fails", func() {
		err := s.donors.InitLedger(s.as(nonAdminID), nonAdminID)
		s.Require().ErrorIs(err, registry.ErrAlreadyInitialized)
		s.Empty(s.drainEvents())
	})
}

func (s *ContractSuite) TestDonorInitLedgerWithExplicitAdmin() {
	s.Require().NoError(s.donors.InitLedger(s.as(deployerID), nonAdminID))

	ok, err := s.donors.IsAdmin(s.as(deployerID), nonAdminID)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.donors.IsAdmin(s.as(deployerID), deployerID)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ContractSuite) TestAddAndRemoveVerifiedDonor() {
	s.initDonors()

	s.Require().NoError(s.donors.AddVerifiedDonor(s.as(deployerID), donorID))
	ok, err := s.donors.IsVerifiedDonor(s.as(nonAdminID), donorID)
	s.Require().NoError(err)
	s.True(ok)

	err = s.donors.AddVerifiedDonor(s.as(deployerID), donorID)
	s.Require().Error(err)
	s.Contains(err.Error(), "u101")

	s.Require().NoError(s.donors.RemoveVerifiedDonor(s.as(deployerID), donorID))
	ok, err = s.donors.IsVerifiedDonor(s.as(nonAdminID), donorID)
	s.Require().NoError(err)
	s.False(ok)

	err = s.donors.RemoveVerifiedDonor(s.as(deployerID), donorID)
	s.Require().Error(err)
	s.Contains(err.Error(), "u102")

	s.Equal([]string{eventDonorVerified, eventDonorVerificationRemoved}, s.eventNames())
}

func (s *ContractSuite) TestNonAdminCannotAddVerifiedDonor() {
	s.initDonors()

	err := s.donors.AddVerifiedDonor(s.as(nonAdminID), donorID)
	s.Require().Error(err)
	s.Contains(err.Error(), "u100")
	s.Empty(s.drainEvents())
}

func (s *ContractSuite) TestDonorTransferAdmin() {
	s.initDonors()

	s.Require().NoError(s.donors.TransferAdmin(s.as(deployerID), nonAdminID))
	s.Require().NoError(s.donors.AddVerifiedDonor(s.as(nonAdminID), donorID))

	err := s.donors.AddVerifiedDonor(s.as(deployerID), certifierID)
	s.Require().ErrorIs(err, registry.ErrNotAuthorized)

	events := s.drainEvents()
	s.Require().Len(events, 2)
	s.Equal(eventAdminTransferred, events[0].name)
	s.Equal(nonAdminID, events[0].payload["newAdmin"])
	s.Equal(deployerID, events[0].payload["previousAdmin"])
}

func (s *ContractSuite) TestGetVerifiedDonors() {
	s.initDonors()

	page, err := s.donors.GetVerifiedDonors(s.as(nonAdminID), "", "")
	s.Require().NoError(err)
	s.NotNil(page.Identities)
	s.Empty(page.Identities)
	s.Empty(page.NextBookmark)

	for _, id := range []string{donorID, certifierID, nonAdminID} {
		s.Require().NoError(s.donors.AddVerifiedDonor(s.as(deployerID), id))
	}

	page, err = s.donors.GetVerifiedDonors(s.as(nonAdminID), "2", "")
	s.Require().NoError(err)
	s.Equal([]string{donorID, certifierID}, page.Identities)
	s.Equal(int32(2), page.FetchedCount)
	s.Require().NotEmpty(page.NextBookmark)

	page, err = s.donors.GetVerifiedDonors(s.as(nonAdminID), "2", page.NextBookmark)
	s.Require().NoError(err)
	s.Equal([]string{nonAdminID}, page.Identities)
	s.Empty(page.NextBookmark)
}

func (s *ContractSuite) TestCallerIdentityFailure() {
	s.initDonors()

	ctx := s.as("")
	err := s.donors.AddVerifiedDonor(ctx, donorID)
	s.Require().Error(err)
	s.Contains(err.Error(), "AddVerifiedDonor")

	err = s.donors.AddVerifiedDonor(s.withIdentity(fakeIdentity{err: errors.New("no cert")}), donorID)
	s.Require().Error(err)
	s.Contains(err.Error(), "no cert")
}
