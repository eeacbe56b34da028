package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateMemberRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateMemberRequest
		wantErr bool
	}{
		{
			name: "valid full request",
			req: CreateMemberRequest{
				Surname:    "Reichert",
				FirstName:  "Theo",
				MemberType: "bursche",
				AdminRole:  "koch",
			},
			wantErr: false,
		},
		{
			name:    "surname only is enough",
			req:     CreateMemberRequest{Surname: "Weber"},
			wantErr: false,
		},
		{
			name:    "missing surname",
			req:     CreateMemberRequest{FirstName: "Theo"},
			wantErr: true,
		},
		{
			name:    "unknown member type",
			req:     CreateMemberRequest{Surname: "Weber", MemberType: "gast"},
			wantErr: true,
		},
		{
			name:    "unknown admin role",
			req:     CreateMemberRequest{Surname: "Weber", AdminRole: "chef"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetPasswordRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     SetPasswordRequest
		wantErr error
	}{
		{
			name:    "valid password",
			req:     SetPasswordRequest{Password: "geheim123", ConfirmPassword: "geheim123"},
			wantErr: nil,
		},
		{
			name:    "too short",
			req:     SetPasswordRequest{Password: "ab1", ConfirmPassword: "ab1"},
			wantErr: errInvalidPassword,
		},
		{
			name:    "letters only",
			req:     SetPasswordRequest{Password: "geheimnis", ConfirmPassword: "geheimnis"},
			wantErr: errInvalidPassword,
		},
		{
			name:    "digits only",
			req:     SetPasswordRequest{Password: "123456789", ConfirmPassword: "123456789"},
			wantErr: errInvalidPassword,
		},
		{
			name:    "confirmation mismatch",
			req:     SetPasswordRequest{Password: "geheim123", ConfirmPassword: "geheim124"},
			wantErr: errConfirmPasswordMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("missing confirmation", func(t *testing.T) {
		req := SetPasswordRequest{Password: "geheim123"}
		assert.Error(t, req.Validate())
	})
}

func TestLoginLookupRequestValidate(t *testing.T) {
	valid := LoginLookupRequest{Name: "Theo Reichert"}
	assert.NoError(t, valid.Validate())

	empty := LoginLookupRequest{}
	assert.Error(t, empty.Validate())
}
