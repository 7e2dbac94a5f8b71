package service

import (
	"testing"

	"github.com/fakturo/fakturo/internal/api/dto"
	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/fakturo/fakturo/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type AuthServiceSuite struct {
	testutil.BaseServiceTestSuite
	service AuthService
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewAuthService(ServiceParams{
		Logger:         s.GetLogger(),
		Config:         s.GetConfig(),
		DB:             s.GetDB(),
		TenantRepo:     stores.TenantRepo,
		MembershipRepo: stores.MembershipRepo,
		SettingsRepo:   stores.SettingsRepo,
		CustomerRepo:   stores.CustomerRepo,
		DocumentRepo:   stores.DocumentRepo,
		AuthProvider:   s.GetAuthProvider(),
	})
}

func (s *AuthServiceSuite) TestSignUpProvisionsTenant() {
	resp, err := s.service.SignUp(s.GetContext(), dto.SignUpRequest{
		Email:      "founder@startup.test",
		Password:   "correct horse",
		TenantName: "Startup GmbH",
	})
	s.NoError(err)
	s.NotEmpty(resp.Token)
	s.NotEmpty(resp.UserID)
	s.NotEmpty(resp.TenantID)
	s.Equal("admin", resp.Role)
	s.True(resp.IsOwner)

	t, err := s.GetStores().TenantRepo.GetByID(s.GetContext(), resp.TenantID)
	s.NoError(err)
	s.Equal("Startup GmbH", t.Name)
}

func (s *AuthServiceSuite) TestLoginResolvesExistingTenant() {
	signUp, err := s.service.SignUp(s.GetContext(), dto.SignUpRequest{
		Email:    "founder@startup.test",
		Password: "correct horse",
	})
	s.Require().NoError(err)

	login, err := s.service.Login(s.GetContext(), dto.LoginRequest{
		Email:    "founder@startup.test",
		Password: "correct horse",
	})
	s.NoError(err)
	s.Equal(signUp.TenantID, login.TenantID)
	s.Equal(signUp.UserID, login.UserID)
	s.Equal("admin", login.Role)
	s.True(login.IsOwner)
}

func (s *AuthServiceSuite) TestLoginUnknownUserFails() {
	_, err := s.service.Login(s.GetContext(), dto.LoginRequest{
		Email:    "nobody@nowhere.test",
		Password: "whatever1",
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *AuthServiceSuite) TestSignUpValidatesRequest() {
	_, err := s.service.SignUp(s.GetContext(), dto.SignUpRequest{
		Email:    "not-an-email",
		Password: "correct horse",
	})
	s.Error(err)
}
