package dashboard

import (
	"context"
	"strings"

	"github.com/kbteutonia/mitgliederbereich/internal/domain"
)

// canManageMembers gates the member administration view. Both the system
// admin and the treasury may manage the roster.
func (d *Dashboard) canManageMembers() bool {
	return d.IsSystemAdmin() || d.IsAktivenkasse()
}

// CreateMember adds a member to the roster. New members default to fux and
// get their full name derived when it is not supplied.
func (d *Dashboard) CreateMember(ctx context.Context, m domain.Member) (domain.Member, error) {
	if !d.canManageMembers() {
		return domain.Member{}, ErrPermissionDenied
	}
	if strings.TrimSpace(m.FirstName) == "" {
		return domain.Member{}, ErrFirstNameMissing
	}
	if m.MemberType == "" {
		m.MemberType = domain.MemberTypeFux
	}
	if !m.MemberType.Valid() {
		return domain.Member{}, ErrValidation
	}
	if !m.AdminRole.Valid() {
		return domain.Member{}, ErrValidation
	}
	if strings.TrimSpace(m.FullName) == "" {
		m.FullName = m.DisplayName()
	}

	created, err := d.backend.CreateMember(ctx, m)
	if err != nil {
		return domain.Member{}, err
	}
	return created, d.LoadMembers(ctx)
}

// UpdateMember patches roster fields of a member.
func (d *Dashboard) UpdateMember(ctx context.Context, id string, fields map[string]any) error {
	if !d.canManageMembers() {
		return ErrPermissionDenied
	}
	if _, ok := d.memberByID(id); !ok {
		return ErrUnknownMember
	}
	if _, err := d.backend.UpdateMember(ctx, id, fields); err != nil {
		return err
	}
	return d.LoadMembers(ctx)
}

// ResetPassword clears a member's credential so their next login runs the
// first-time password-creation flow again.
func (d *Dashboard) ResetPassword(ctx context.Context, id string) error {
	if !d.canManageMembers() {
		return ErrPermissionDenied
	}
	if _, ok := d.memberByID(id); !ok {
		return ErrUnknownMember
	}
	_, err := d.backend.UpdateMember(ctx, id, map[string]any{"password_hash": nil})
	if err != nil {
		return err
	}
	return d.LoadMembers(ctx)
}

// DeleteMember removes a member from the roster. Removing yourself is
// refused; log out instead.
func (d *Dashboard) DeleteMember(ctx context.Context, id string) error {
	if !d.canManageMembers() {
		return ErrPermissionDenied
	}
	if d.user != nil && d.user.ID == id {
		return ErrValidation
	}
	if _, ok := d.memberByID(id); !ok {
		return ErrUnknownMember
	}
	if err := d.backend.DeleteMember(ctx, id); err != nil {
		return err
	}
	if d.debugUser != nil && d.debugUser.ID == id {
		d.debugUser = nil
	}
	return d.LoadMembers(ctx)
}
