package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
)

// passwordRegexPattern needs lookahead groups, which the standard regexp
// package cannot compile.
const passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{6,}$`

var (
	errInvalidPassword         = errors.New("the password must be at least 6 characters and contain a letter and a number")
	errConfirmPasswordMismatch = errors.New("confirm password doesn't match the password")
)

var passwordExp = regexp2.MustCompile(passwordRegexPattern, regexp2.None)

type CreateMemberRequest struct {
	Surname    string `json:"surname"`
	FirstName  string `json:"first_name"`
	FullName   string `json:"full_name"`
	MemberType string `json:"member_type"`
	AdminRole  string `json:"admin_role"`
}

func (req *CreateMemberRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Surname, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.FirstName, validation.Length(0, 100)),
		validation.Field(&req.MemberType, validation.In("bursche", "fux", "inaktiv", "employee")),
		validation.Field(&req.AdminRole, validation.In("systemadmin", "va", "koch", "aktivenkasse")),
	)
}

type LoginLookupRequest struct {
	Name string `json:"name"`
}

func (req *LoginLookupRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 200)),
	)
}

type SetPasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (req *SetPasswordRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.ConfirmPassword, validation.Required),
	)
	if err != nil {
		return err
	}

	if ok, _ := passwordExp.MatchString(req.Password); !ok {
		return errInvalidPassword
	}

	if req.Password != req.ConfirmPassword {
		return errConfirmPasswordMismatch
	}

	return nil
}
