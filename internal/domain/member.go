package domain

import (
	"strings"
	"time"
)

// MemberType is the membership tier of a house member. It decides the
// default attendance status for events the member has not confirmed yet.
type MemberType string

const (
	MemberTypeBursche  MemberType = "bursche"
	MemberTypeFux      MemberType = "fux"
	MemberTypeInaktiv  MemberType = "inaktiv"
	MemberTypeEmployee MemberType = "employee"
)

func (t MemberType) Valid() bool {
	switch t {
	case MemberTypeBursche, MemberTypeFux, MemberTypeInaktiv, MemberTypeEmployee:
		return true
	}
	return false
}

func (t MemberType) Label() string {
	switch t {
	case MemberTypeBursche:
		return "Aktiver Bursche"
	case MemberTypeFux:
		return "Fux"
	case MemberTypeInaktiv:
		return "Inaktiver Bursche"
	case MemberTypeEmployee:
		return "Angestellter"
	}
	return "Mitglied"
}

// DefaultEventStatus returns the attendance status assumed for a member of
// this type before they confirm. Employees have no default; they do not
// appear in attendance lists at all.
func (t MemberType) DefaultEventStatus() (RegistrationStatus, bool) {
	switch t {
	case MemberTypeBursche, MemberTypeFux:
		return StatusYes, true
	case MemberTypeInaktiv:
		return StatusNo, true
	}
	return "", false
}

// MustConfirm reports whether members of this type are expected to confirm
// their attendance explicitly.
func (t MemberType) MustConfirm() bool {
	return t != MemberTypeEmployee
}

// AdminRole is an optional privileged role on top of the member type.
// The empty value means no admin role.
type AdminRole string

const (
	RoleNone         AdminRole = ""
	RoleSystemAdmin  AdminRole = "systemadmin"
	RoleVA           AdminRole = "va"
	RoleKoch         AdminRole = "koch"
	RoleAktivenkasse AdminRole = "aktivenkasse"
)

func (r AdminRole) Valid() bool {
	switch r {
	case RoleNone, RoleSystemAdmin, RoleVA, RoleKoch, RoleAktivenkasse:
		return true
	}
	return false
}

func (r AdminRole) Label() string {
	switch r {
	case RoleSystemAdmin:
		return "Systemadmin"
	case RoleVA:
		return "Veranstaltungsleiter"
	case RoleKoch:
		return "Koch"
	case RoleAktivenkasse:
		return "Aktivenkasse"
	}
	return ""
}

type Member struct {
	ID           string     `json:"id"`
	FirstName    string     `json:"first_name"`
	Surname      string     `json:"surname"`
	FullName     string     `json:"full_name"`
	MemberType   MemberType `json:"member_type"`
	AdminRole    AdminRole  `json:"admin_role,omitempty"`
	PasswordHash string     `json:"password_hash,omitempty"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at,omitempty"`
}

// DisplayName is the name shown in attendance lists and headers.
func (m Member) DisplayName() string {
	name := strings.TrimSpace(m.FirstName + " " + m.Surname)
	if name == "" {
		return m.Surname
	}
	return name
}

// Type returns the member type, falling back to bursche for legacy rows
// that never had one set.
func (m Member) Type() MemberType {
	if m.MemberType == "" {
		return MemberTypeBursche
	}
	return m.MemberType
}

// HasPassword reports whether the member finished the first-login
// password-creation flow.
func (m Member) HasPassword() bool {
	return m.PasswordHash != ""
}
