package auth_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/adrianhartanto/timebill/internal"
	"github.com/adrianhartanto/timebill/internal/auth"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Service Suite")
}

type mockUserRepository struct {
	byEmail map[string]*auth.UserAccount
	byID    map[int64]*auth.UserAccount
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		byEmail: make(map[string]*auth.UserAccount),
		byID:    make(map[int64]*auth.UserAccount),
	}
}

func (m *mockUserRepository) add(account *auth.UserAccount) {
	m.byEmail[account.Email] = account
	m.byID[account.ID] = account
}

func (m *mockUserRepository) GetByEmail(email string) (*auth.UserAccount, error) {
	account, ok := m.byEmail[email]
	if !ok {
		return nil, internal.ErrInvalidCredentials
	}
	return account, nil
}

func (m *mockUserRepository) GetByID(id int64) (*auth.UserAccount, error) {
	account, ok := m.byID[id]
	if !ok {
		return nil, internal.ErrInvalidToken
	}
	return account, nil
}

var _ = Describe("Auth Service", func() {
	const (
		accessSecret  = "test-access-secret-at-least-32-chars!!"
		refreshSecret = "test-refresh-secret-at-least-32-chars!"
	)

	var (
		repo     *mockUserRepository
		tokenGen *auth.JWTTokenGenerator
		service  *auth.Service
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo = newMockUserRepository()
		tokenGen = auth.NewJWTTokenGenerator(accessSecret, refreshSecret, 15*time.Minute, 7*24*time.Hour)
		service = auth.NewService(repo, tokenGen, logger)

		hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())
		repo.add(&auth.UserAccount{
			ID:           1,
			Email:        "dina@mail.com",
			PasswordHash: string(hash),
			IsActive:     true,
		})
	})

	Describe("Authenticate", func() {
		It("returns a token pair for valid credentials", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Email: "dina@mail.com", Password: "correct horse"})
			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())
			Expect(tokens.RefreshToken).NotTo(BeEmpty())
		})

		It("rejects a wrong password", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "dina@mail.com", Password: "wrong"})
			Expect(err).To(MatchError(internal.ErrInvalidCredentials))
		})

		It("rejects an unknown email", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "nobody@mail.com", Password: "x"})
			Expect(err).To(MatchError(internal.ErrInvalidCredentials))
		})

		It("rejects an inactive account", func() {
			repo.byEmail["dina@mail.com"].IsActive = false
			_, err := service.Authenticate(auth.LoginDTO{Email: "dina@mail.com", Password: "correct horse"})
			Expect(err).To(MatchError(internal.ErrUserInactive))
		})
	})

	Describe("token round trip", func() {
		It("resolves the user from a fresh access token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Email: "dina@mail.com", Password: "correct horse"})
			Expect(err).NotTo(HaveOccurred())

			user, err := service.ResolveUser(tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).To(Equal(int64(1)))
		})

		It("refreshes a token pair", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Email: "dina@mail.com", Password: "correct horse"})
			Expect(err).NotTo(HaveOccurred())

			fresh, err := service.RefreshTokens(tokens.RefreshToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(fresh.AccessToken).NotTo(BeEmpty())
		})

		It("rejects a refresh token used as an access token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Email: "dina@mail.com", Password: "correct horse"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ResolveUser(tokens.RefreshToken)
			Expect(err).To(HaveOccurred())
		})

		It("rejects a tampered token", func() {
			_, err := service.ResolveUser("eyJhbGciOiJIUzI1NiJ9.garbage.signature")
			Expect(err).To(HaveOccurred())
		})
	})
})
