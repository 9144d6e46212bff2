package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	domainErrors "github.com/scandent/orline/internal/domain/errors"
	"github.com/scandent/orline/internal/domain/model"
	"github.com/scandent/orline/internal/domain/repository"
	pkgAuth "github.com/scandent/orline/internal/pkg/auth"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthUseCase handles account lifecycle and token management.
type AuthUseCase struct {
	users   repository.UserRepository
	invites repository.InviteRepository
	hasher  pkgAuth.PasswordHasher
	tokens  pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, invites repository.InviteRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, invites: invites, hasher: hasher, tokens: strategy}
}

// Register creates a doctor account from an invitation code and returns an
// auth token. Registration is invitation-only; employees and the admin are
// provisioned out of band.
func (u *AuthUseCase) Register(ctx context.Context, name, email, password, inviteCode string) (*model.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	inviteCode = strings.ToUpper(strings.TrimSpace(inviteCode))

	if utf8.RuneCountInString(name) < 2 {
		return nil, "", domainErrors.NewValidation("Pon tu nombre (mínimo 2 letras).")
	}
	if !emailRe.MatchString(email) {
		return nil, "", domainErrors.NewValidation("Pon un correo válido.")
	}
	if utf8.RuneCountInString(password) < 6 {
		return nil, "", domainErrors.NewValidation("Contraseña mínima: 6 caracteres.")
	}
	if inviteCode == "" {
		return nil, "", domainErrors.NewValidation("Necesitas un código de invitación.")
	}

	invite, err := u.invites.GetByCode(ctx, inviteCode)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInviteInvalid
		}
		return nil, "", err
	}
	if invite.Used() {
		return nil, "", domainErrors.ErrInviteUsed
	}
	if invite.Expired(time.Now()) {
		return nil, "", domainErrors.ErrInviteExpired
	}
	if invite.DoctorEmail != "" && invite.DoctorEmail != email {
		return nil, "", domainErrors.ErrInviteInvalid
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, &model.User{
		Role:         model.RoleDoctor,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		TeamID:       invite.TeamID,
	})
	if err != nil {
		return nil, "", err
	}

	if err := u.invites.MarkUsed(ctx, invite.ID, usr.ID, time.Now()); err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// Authenticate validates credentials (email or username) and returns an auth
// token. Blocked accounts never authenticate.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if usr.Blocked {
		return nil, "", domainErrors.ErrBlockedUser
	}
	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// ParseToken extracts user ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// ListDoctors returns all doctor accounts for the admin oversight table.
func (u *AuthUseCase) ListDoctors(ctx context.Context, actor Actor) ([]model.User, error) {
	if actor.Role != model.RoleAdmin {
		return nil, domainErrors.ErrReadOnlyRole
	}
	return u.users.ListByRole(ctx, model.RoleDoctor)
}
