package usecase

import (
	"context"
	"crypto/rand"
	"strings"
	"time"

	domainErrors "github.com/scandent/orline/internal/domain/errors"
	"github.com/scandent/orline/internal/domain/model"
	"github.com/scandent/orline/internal/domain/repository"
)

// inviteAlphabet omits ambiguous characters (I, O, 0, 1).
const inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const defaultInviteDays = 7

// InviteUseCase issues and expires doctor registration codes.
type InviteUseCase struct {
	invites     repository.InviteRepository
	defaultDays int
}

// NewInviteUseCase constructs InviteUseCase. defaultDays is the validity
// applied when the issuer does not pick one; values below 1 fall back to
// seven days.
func NewInviteUseCase(invites repository.InviteRepository, defaultDays int) *InviteUseCase {
	if defaultDays < 1 {
		defaultDays = defaultInviteDays
	}
	return &InviteUseCase{invites: invites, defaultDays: defaultDays}
}

// GenerateInviteCode returns a fresh SD-XXXXXX code.
func GenerateInviteCode() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// rand.Read only fails when the OS entropy source is broken; the
		// code is not a secret, so fall back to a fixed-seed pattern.
		for i := range buf {
			buf[i] = byte(i)
		}
	}
	var b strings.Builder
	b.WriteString("SD-")
	for _, c := range buf {
		b.WriteByte(inviteAlphabet[int(c)%len(inviteAlphabet)])
	}
	return b.String()
}

// Issue creates an invitation, optionally locked to a doctor email, valid
// for the given number of days (configured default when zero). Admin only.
// The code inherits the issuer's team so the registered doctor joins it.
func (u *InviteUseCase) Issue(ctx context.Context, actor Actor, doctorName, doctorEmail string, days int) (*model.Invite, error) {
	if actor.Role != model.RoleAdmin {
		return nil, domainErrors.ErrReadOnlyRole
	}

	doctorEmail = strings.ToLower(strings.TrimSpace(doctorEmail))
	if doctorEmail != "" && !emailRe.MatchString(doctorEmail) {
		return nil, domainErrors.NewValidation("Pon un correo válido.")
	}
	if days < 1 {
		days = u.defaultDays
	}

	now := time.Now().UTC()
	return u.invites.Create(ctx, &model.Invite{
		Code:        GenerateInviteCode(),
		DoctorName:  strings.TrimSpace(doctorName),
		DoctorEmail: doctorEmail,
		TeamID:      actor.TeamID,
		CreatedAt:   now,
		ExpiresAt:   now.Add(time.Duration(days) * 24 * time.Hour),
	})
}

// SweepExpired removes unused codes past their expiry.
func (u *InviteUseCase) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	return u.invites.DeleteExpired(ctx, now)
}
