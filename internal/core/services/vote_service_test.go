package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/schoolstate/sas_backend/internal/apperrors"
	"github.com/schoolstate/sas_backend/internal/core/domain"
	portssvc "github.com/schoolstate/sas_backend/internal/core/ports/services"
	"github.com/schoolstate/sas_backend/internal/core/services"
	"github.com/schoolstate/sas_backend/internal/dto"
)

type VoteServiceTestSuite struct {
	suite.Suite
	mockVoteRepo *MockVoteRepository
	mockIdentity *MockIdentitySvc
	service      portssvc.VoteSvcFacade
	ctx          context.Context

	politician domain.UserSignature
	citizen    domain.UserSignature
}

func (suite *VoteServiceTestSuite) SetupTest() {
	suite.mockVoteRepo = new(MockVoteRepository)
	suite.mockIdentity = new(MockIdentitySvc)
	suite.service = services.NewVoteService(suite.mockVoteRepo, suite.mockIdentity)
	suite.ctx = context.Background()
	suite.politician = domain.UserSignature{Type: domain.UserCitizen, ID: "politician-1"}
	suite.citizen = domain.UserSignature{Type: domain.UserCitizen, ID: "citizen-1"}
}

func (suite *VoteServiceTestSuite) expectPolitics() {
	user := &domain.User{UserID: suite.politician.ID, Type: domain.UserCitizen, Roles: []domain.Role{domain.RolePolitics}}
	suite.mockIdentity.On("RequireRole", suite.ctx, suite.politician, []domain.Role{domain.RolePolitics}).Return(user, nil).Once()
}

func (suite *VoteServiceTestSuite) expectCitizen() {
	user := &domain.User{UserID: suite.citizen.ID, Type: domain.UserCitizen}
	suite.mockIdentity.On("RequireType", suite.ctx, suite.citizen, []domain.UserType{domain.UserCitizen}).Return(user, nil).Once()
}

func (suite *VoteServiceTestSuite) openVote(voteType domain.VoteType, choices ...string) *domain.Vote {
	return &domain.Vote{
		VoteID:  "vote-1",
		Type:    voteType,
		Title:   "Lunch menu",
		Choices: choices,
		EndAt:   time.Now().Add(time.Hour),
	}
}

func (suite *VoteServiceTestSuite) TestCreateVote_Success() {
	suite.expectPolitics()
	req := dto.CreateVoteRequest{
		Type:    domain.VoteRadio,
		Title:   "Lunch menu",
		Choices: []string{"Pizza", "Pasta"},
		EndAt:   time.Now().Add(2 * time.Hour),
	}
	suite.mockVoteRepo.On("SaveVote", suite.ctx, mock.MatchedBy(func(v domain.Vote) bool {
		return v.Title == req.Title && len(v.Choices) == 2 && v.Result == nil
	})).Return(nil).Once()

	vote, err := suite.service.CreateVote(suite.ctx, suite.politician, req)

	suite.Require().NoError(err)
	suite.NotEmpty(vote.VoteID)
	suite.Equal(suite.politician.ID, vote.CreatedBy)
	suite.mockVoteRepo.AssertExpectations(suite.T())
}

func (suite *VoteServiceTestSuite) TestCreateVote_BlankTitle() {
	suite.expectPolitics()
	req := dto.CreateVoteRequest{
		Type:    domain.VoteRadio,
		Title:   "   ",
		Choices: []string{"Pizza", "Pasta"},
		EndAt:   time.Now().Add(time.Hour),
	}

	vote, err := suite.service.CreateVote(suite.ctx, suite.politician, req)

	suite.Require().Error(err)
	suite.Nil(vote)
	suite.True(apperrors.IsCode(err, apperrors.CodeBadUserInput))
	suite.mockVoteRepo.AssertNotCalled(suite.T(), "SaveVote", mock.Anything, mock.Anything)
}

func (suite *VoteServiceTestSuite) TestCreateVote_NoChoices() {
	suite.expectPolitics()
	req := dto.CreateVoteRequest{
		Type:    domain.VoteRadio,
		Title:   "Lunch menu",
		Choices: []string{},
		EndAt:   time.Now().Add(time.Hour),
	}

	vote, err := suite.service.CreateVote(suite.ctx, suite.politician, req)

	suite.Require().Error(err)
	suite.Nil(vote)
	suite.True(apperrors.IsCode(err, apperrors.CodeBadUserInput))
	suite.mockVoteRepo.AssertNotCalled(suite.T(), "SaveVote", mock.Anything, mock.Anything)
}

func (suite *VoteServiceTestSuite) TestCreateVote_TrimsTitle() {
	suite.expectPolitics()
	req := dto.CreateVoteRequest{
		Type:    domain.VoteRadio,
		Title:   "  Lunch menu  ",
		Choices: []string{"Pizza", "Pasta"},
		EndAt:   time.Now().Add(time.Hour),
	}
	suite.mockVoteRepo.On("SaveVote", suite.ctx, mock.MatchedBy(func(v domain.Vote) bool {
		return v.Title == "Lunch menu"
	})).Return(nil).Once()

	vote, err := suite.service.CreateVote(suite.ctx, suite.politician, req)

	suite.Require().NoError(err)
	suite.Equal("Lunch menu", vote.Title)
	suite.mockVoteRepo.AssertExpectations(suite.T())
}

func (suite *VoteServiceTestSuite) TestCreateVote_BlankChoice() {
	suite.expectPolitics()
	req := dto.CreateVoteRequest{
		Type:    domain.VoteRadio,
		Title:   "Lunch menu",
		Choices: []string{"Pizza", "  "},
		EndAt:   time.Now().Add(time.Hour),
	}

	vote, err := suite.service.CreateVote(suite.ctx, suite.politician, req)

	suite.Require().Error(err)
	suite.Nil(vote)
	suite.True(apperrors.IsCode(err, apperrors.CodeBadUserInput))
	suite.mockVoteRepo.AssertNotCalled(suite.T(), "SaveVote", mock.Anything, mock.Anything)
}

func (suite *VoteServiceTestSuite) TestCreateVote_EndsInPast() {
	suite.expectPolitics()
	req := dto.CreateVoteRequest{
		Type:    domain.VoteConsensus,
		Title:   "Too late",
		Choices: []string{"Yes", "No"},
		EndAt:   time.Now().Add(-time.Minute),
	}

	vote, err := suite.service.CreateVote(suite.ctx, suite.politician, req)

	suite.Require().Error(err)
	suite.Nil(vote)
	suite.True(apperrors.IsCode(err, apperrors.CodeBadUserInput))
}

func (suite *VoteServiceTestSuite) TestCastVote_Success() {
	suite.expectCitizen()
	vote := suite.openVote(domain.VoteRadio, "Pizza", "Pasta")
	suite.mockVoteRepo.On("FindVoteByID", suite.ctx, "vote-1").Return(vote, nil).Once()
	suite.mockVoteRepo.On("InsertPaper", suite.ctx, mock.MatchedBy(func(p domain.VotingPaper) bool {
		return p.VoteID == "vote-1" && p.CitizenID == suite.citizen.ID && len(p.Vote) == 2
	})).Return(nil).Once()

	result, err := suite.service.CastVote(suite.ctx, suite.citizen, "vote-1", []float64{1, 0})

	suite.Require().NoError(err)
	suite.Require().NotNil(result.OwnPaper)
	suite.Equal([]float64{1, 0}, result.OwnPaper.Vote)
	suite.mockVoteRepo.AssertExpectations(suite.T())
}

func (suite *VoteServiceTestSuite) TestCastVote_Ended() {
	suite.expectCitizen()
	vote := suite.openVote(domain.VoteRadio, "Pizza", "Pasta")
	vote.EndAt = time.Now().Add(-time.Minute)
	suite.mockVoteRepo.On("FindVoteByID", suite.ctx, "vote-1").Return(vote, nil).Once()

	result, err := suite.service.CastVote(suite.ctx, suite.citizen, "vote-1", []float64{1, 0})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.True(apperrors.IsCode(err, apperrors.CodeVoteEnded))
	suite.mockVoteRepo.AssertNotCalled(suite.T(), "InsertPaper", mock.Anything, mock.Anything)
}

func (suite *VoteServiceTestSuite) TestCastVote_WrongLength() {
	suite.expectCitizen()
	vote := suite.openVote(domain.VoteRadio, "Pizza", "Pasta")
	suite.mockVoteRepo.On("FindVoteByID", suite.ctx, "vote-1").Return(vote, nil).Once()

	_, err := suite.service.CastVote(suite.ctx, suite.citizen, "vote-1", []float64{1})

	suite.Require().Error(err)
	suite.True(apperrors.IsCode(err, apperrors.CodeBadUserInput))
}

func (suite *VoteServiceTestSuite) TestCastVote_RadioRejectsTwoChoices() {
	suite.expectCitizen()
	vote := suite.openVote(domain.VoteRadio, "Pizza", "Pasta")
	suite.mockVoteRepo.On("FindVoteByID", suite.ctx, "vote-1").Return(vote, nil).Once()

	_, err := suite.service.CastVote(suite.ctx, suite.citizen, "vote-1", []float64{1, 1})

	suite.Require().Error(err)
	suite.True(apperrors.IsCode(err, apperrors.CodeBadUserInput))
}

func (suite *VoteServiceTestSuite) TestCastVote_RadioRejectsFractions() {
	suite.expectCitizen()
	vote := suite.openVote(domain.VoteRadio, "Pizza", "Pasta")
	suite.mockVoteRepo.On("FindVoteByID", suite.ctx, "vote-1").Return(vote, nil).Once()

	_, err := suite.service.CastVote(suite.ctx, suite.citizen, "vote-1", []float64{0.5, 0.5})

	suite.Require().Error(err)
	suite.True(apperrors.IsCode(err, apperrors.CodeBadUserInput))
}

func (suite *VoteServiceTestSuite) TestCastVote_ConsensusAllowsFractions() {
	suite.expectCitizen()
	vote := suite.openVote(domain.VoteConsensus, "Pizza", "Pasta")
	suite.mockVoteRepo.On("FindVoteByID", suite.ctx, "vote-1").Return(vote, nil).Once()
	suite.mockVoteRepo.On("InsertPaper", suite.ctx, mock.AnythingOfType("domain.VotingPaper")).Return(nil).Once()

	result, err := suite.service.CastVote(suite.ctx, suite.citizen, "vote-1", []float64{0.5, 0.25})

	suite.Require().NoError(err)
	suite.NotNil(result.OwnPaper)
}

func (suite *VoteServiceTestSuite) TestCastVote_OutOfRange() {
	suite.expectCitizen()
	vote := suite.openVote(domain.VoteConsensus, "Pizza", "Pasta")
	suite.mockVoteRepo.On("FindVoteByID", suite.ctx, "vote-1").Return(vote, nil).Once()

	_, err := suite.service.CastVote(suite.ctx, suite.citizen, "vote-1", []float64{1.5, 0})

	suite.Require().Error(err)
	suite.True(apperrors.IsCode(err, apperrors.CodeBadUserInput))
}

func (suite *VoteServiceTestSuite) TestCastVote_DoubleCast() {
	suite.expectCitizen()
	vote := suite.openVote(domain.VoteRadio, "Pizza", "Pasta")
	suite.mockVoteRepo.On("FindVoteByID", suite.ctx, "vote-1").Return(vote, nil).Once()
	suite.mockVoteRepo.On("InsertPaper", suite.ctx, mock.AnythingOfType("domain.VotingPaper")).
		Return(apperrors.New(apperrors.CodeVoteAlreadyCasted, "paper already cast")).Once()

	result, err := suite.service.CastVote(suite.ctx, suite.citizen, "vote-1", []float64{0, 1})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.True(apperrors.IsCode(err, apperrors.CodeVoteAlreadyCasted))
}

func (suite *VoteServiceTestSuite) allTypes() []domain.UserType {
	return []domain.UserType{domain.UserCitizen, domain.UserCompany, domain.UserGuest}
}

func (suite *VoteServiceTestSuite) TestGetAllVotes_CitizenSeesOwnPaper() {
	citizenUser := &domain.User{UserID: suite.citizen.ID, Type: domain.UserCitizen}
	suite.mockIdentity.On("RequireType", suite.ctx, suite.citizen, suite.allTypes()).Return(citizenUser, nil).Once()

	open := *suite.openVote(domain.VoteRadio, "Pizza", "Pasta")
	suite.mockVoteRepo.On("ListVotes", suite.ctx).Return([]domain.Vote{open}, nil).Once()
	paper := &domain.VotingPaper{VoteID: open.VoteID, CitizenID: suite.citizen.ID, Vote: []float64{1, 0}}
	suite.mockVoteRepo.On("FindPaper", suite.ctx, open.VoteID, suite.citizen.ID).Return(paper, nil).Once()

	votes, err := suite.service.GetAllVotes(suite.ctx, suite.citizen)

	suite.Require().NoError(err)
	suite.Require().Len(votes, 1)
	suite.Equal(paper, votes[0].OwnPaper)
	suite.Nil(votes[0].Result)
}

func (suite *VoteServiceTestSuite) TestGetAllVotes_ComputesResultForClosedVote() {
	citizenUser := &domain.User{UserID: suite.citizen.ID, Type: domain.UserCitizen}
	suite.mockIdentity.On("RequireType", suite.ctx, suite.citizen, suite.allTypes()).Return(citizenUser, nil).Once()

	closed := *suite.openVote(domain.VoteRadio, "Pizza", "Pasta")
	closed.EndAt = time.Now().Add(-time.Hour)
	suite.mockVoteRepo.On("ListVotes", suite.ctx).Return([]domain.Vote{closed}, nil).Once()
	papers := []domain.VotingPaper{
		{VoteID: closed.VoteID, CitizenID: "a", Vote: []float64{1, 0}},
		{VoteID: closed.VoteID, CitizenID: "b", Vote: []float64{0, 1}},
	}
	suite.mockVoteRepo.On("FindPapersByVoteID", suite.ctx, closed.VoteID).Return(papers, nil).Once()
	suite.mockVoteRepo.On("SetResultIfNull", suite.ctx, closed.VoteID, []float64{0.5, 0.5}).Return(true, nil).Once()
	suite.mockVoteRepo.On("FindPaper", suite.ctx, closed.VoteID, suite.citizen.ID).Return(nil, nil).Once()

	votes, err := suite.service.GetAllVotes(suite.ctx, suite.citizen)

	suite.Require().NoError(err)
	suite.Require().Len(votes, 1)
	suite.Equal([]float64{0.5, 0.5}, votes[0].Result)
	suite.Nil(votes[0].OwnPaper)
	suite.mockVoteRepo.AssertExpectations(suite.T())
}

func (suite *VoteServiceTestSuite) TestGetAllVotes_AdoptsConcurrentResult() {
	citizenUser := &domain.User{UserID: suite.citizen.ID, Type: domain.UserCitizen}
	suite.mockIdentity.On("RequireType", suite.ctx, suite.citizen, suite.allTypes()).Return(citizenUser, nil).Once()

	closed := *suite.openVote(domain.VoteRadio, "Pizza", "Pasta")
	closed.EndAt = time.Now().Add(-time.Hour)
	suite.mockVoteRepo.On("ListVotes", suite.ctx).Return([]domain.Vote{closed}, nil).Once()
	suite.mockVoteRepo.On("FindPapersByVoteID", suite.ctx, closed.VoteID).Return([]domain.VotingPaper{}, nil).Once()
	suite.mockVoteRepo.On("SetResultIfNull", suite.ctx, closed.VoteID, []float64{0, 0}).Return(false, nil).Once()
	stored := closed
	stored.Result = []float64{1, 0}
	suite.mockVoteRepo.On("FindVoteByID", suite.ctx, closed.VoteID).Return(&stored, nil).Once()
	suite.mockVoteRepo.On("FindPaper", suite.ctx, closed.VoteID, suite.citizen.ID).Return(nil, nil).Once()

	votes, err := suite.service.GetAllVotes(suite.ctx, suite.citizen)

	suite.Require().NoError(err)
	suite.Equal([]float64{1, 0}, votes[0].Result)
}

func (suite *VoteServiceTestSuite) TestGetAllVotes_PoliticsSeesNoPapers() {
	company := domain.UserSignature{Type: domain.UserCompany, ID: "company-1"}
	companyUser := &domain.User{UserID: company.ID, Type: domain.UserCompany, Roles: []domain.Role{domain.RolePolitics}}
	suite.mockIdentity.On("RequireType", suite.ctx, company, suite.allTypes()).Return(companyUser, nil).Once()

	open := *suite.openVote(domain.VoteRadio, "Pizza", "Pasta")
	suite.mockVoteRepo.On("ListVotes", suite.ctx).Return([]domain.Vote{open}, nil).Once()

	votes, err := suite.service.GetAllVotes(suite.ctx, company)

	suite.Require().NoError(err)
	suite.Nil(votes[0].OwnPaper)
	suite.mockVoteRepo.AssertNotCalled(suite.T(), "FindPaper", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoteServiceTestSuite) TestGetAllVotes_PlainGuestDenied() {
	guest := domain.UserSignature{Type: domain.UserGuest, ID: "guest-1"}
	guestUser := &domain.User{UserID: guest.ID, Type: domain.UserGuest}
	suite.mockIdentity.On("RequireType", suite.ctx, guest, suite.allTypes()).Return(guestUser, nil).Once()

	votes, err := suite.service.GetAllVotes(suite.ctx, guest)

	suite.Require().Error(err)
	suite.Nil(votes)
	suite.True(apperrors.IsCode(err, apperrors.CodePermissionDenied))
	suite.mockVoteRepo.AssertNotCalled(suite.T(), "ListVotes", mock.Anything)
}

func (suite *VoteServiceTestSuite) TestDeleteVote_Success() {
	suite.expectPolitics()
	suite.mockVoteRepo.On("FindVoteByID", suite.ctx, "vote-1").
		Return(suite.openVote(domain.VoteRadio, "Pizza", "Pasta"), nil).Once()
	suite.mockVoteRepo.On("DeleteVote", suite.ctx, "vote-1").Return(nil).Once()

	err := suite.service.DeleteVote(suite.ctx, suite.politician, "vote-1")

	suite.Require().NoError(err)
	suite.mockVoteRepo.AssertExpectations(suite.T())
}

func (suite *VoteServiceTestSuite) TestDeleteVote_NotFound() {
	suite.expectPolitics()
	suite.mockVoteRepo.On("FindVoteByID", suite.ctx, "vote-1").
		Return(nil, apperrors.New(apperrors.CodeVoteNotFound, "vote not found")).Once()

	err := suite.service.DeleteVote(suite.ctx, suite.politician, "vote-1")

	suite.Require().Error(err)
	suite.True(apperrors.IsCode(err, apperrors.CodeVoteNotFound))
	suite.mockVoteRepo.AssertNotCalled(suite.T(), "DeleteVote", mock.Anything, mock.Anything)
}

func TestVoteServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VoteServiceTestSuite))
}
