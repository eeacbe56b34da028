package dashboard

import "github.com/kbteutonia/mitgliederbereich/internal/domain"

// Roles is the resolved permission set of a member: the membership tier plus
// the optional admin role.
type Roles struct {
	MemberType domain.MemberType
	AdminRole  domain.AdminRole
}

// RolesOf resolves a member's roles. A nil member or a legacy row without a
// type resolves to a plain bursche with no admin role.
func RolesOf(m *domain.Member) Roles {
	if m == nil {
		return Roles{MemberType: domain.MemberTypeBursche}
	}
	return Roles{MemberType: m.Type(), AdminRole: m.AdminRole}
}

// Has reports whether the role set carries the given admin role. The system
// admin role implies every other admin role.
func (r Roles) Has(role domain.AdminRole) bool {
	if r.AdminRole == domain.RoleSystemAdmin {
		return true
	}
	return r.AdminRole == role && role != domain.RoleNone
}

// User returns the authenticated member, nil when logged out.
func (d *Dashboard) User() *domain.Member { return d.user }

// ActiveUser returns the identity permission checks run against: the
// impersonated member while impersonating, the real user otherwise.
func (d *Dashboard) ActiveUser() *domain.Member {
	if d.debugUser != nil {
		return d.debugUser
	}
	return d.user
}

// Impersonating reports whether a debug identity is active.
func (d *Dashboard) Impersonating() bool { return d.debugUser != nil }

// Impersonate switches the active identity to another member so a system
// admin can see the dashboard through their eyes. The gate checks the REAL
// user, never the current impersonation, so impersonating a plain member
// cannot lock the admin out of switching back. An empty id clears the
// impersonation.
func (d *Dashboard) Impersonate(memberID string) error {
	if d.user == nil {
		return ErrNotLoggedIn
	}
	if !RolesOf(d.user).Has(domain.RoleSystemAdmin) {
		return ErrPermissionDenied
	}
	if memberID == "" || memberID == d.user.ID {
		d.debugUser = nil
		return nil
	}
	member, ok := d.memberByID(memberID)
	if !ok {
		return ErrUnknownMember
	}
	d.debugUser = &member
	return nil
}

func (d *Dashboard) activeRoles() Roles {
	return RolesOf(d.ActiveUser())
}

// IsSystemAdmin reports whether the active identity may administer members
// and impersonate.
func (d *Dashboard) IsSystemAdmin() bool {
	return d.activeRoles().Has(domain.RoleSystemAdmin)
}

// IsVA reports whether the active identity may manage events.
func (d *Dashboard) IsVA() bool {
	return d.activeRoles().Has(domain.RoleVA)
}

// IsKoch reports whether the active identity may edit the meal plan.
func (d *Dashboard) IsKoch() bool {
	return d.activeRoles().Has(domain.RoleKoch)
}

// IsAktivenkasse reports whether the active identity may see the expense
// report and administer members.
func (d *Dashboard) IsAktivenkasse() bool {
	return d.activeRoles().Has(domain.RoleAktivenkasse)
}
