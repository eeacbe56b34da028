package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kbteutonia/mitgliederbereich/internal/domain"
	"github.com/kbteutonia/mitgliederbereich/internal/repository"
)

var (
	ErrMemberNotFound    = repository.ErrMemberNotFound
	ErrInvalidMemberType = errors.New("unknown member type")
	ErrInvalidAdminRole  = errors.New("unknown admin role")
)

type MemberRepository interface {
	Create(ctx context.Context, member domain.Member) (domain.Member, error)
	FindByID(ctx context.Context, id string) (domain.Member, error)
	FindByFullName(ctx context.Context, name string) ([]domain.Member, error)
	List(ctx context.Context) ([]domain.Member, error)
	Update(ctx context.Context, id string, fields map[string]any) (domain.Member, error)
	Delete(ctx context.Context, id string) error
}

type MemberService struct {
	repo MemberRepository
}

func NewMemberService(repo MemberRepository) *MemberService {
	return &MemberService{
		repo: repo,
	}
}

func (s *MemberService) ListMembers(ctx context.Context) ([]domain.Member, error) {
	members, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return members, nil
}

func (s *MemberService) GetMember(ctx context.Context, id string) (domain.Member, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Member{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return member, nil
}

// LookupByName returns every member matching the full name, case
// insensitively, and stamps their last login. The client decides what zero
// or multiple matches mean.
func (s *MemberService) LookupByName(ctx context.Context, name string) ([]domain.Member, error) {
	matches, err := s.repo.FindByFullName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByFullName -> %w", err)
	}

	if len(matches) == 1 {
		now := time.Now()
		if _, err := s.repo.Update(ctx, matches[0].ID, map[string]any{"last_login": now}); err == nil {
			matches[0].LastLogin = &now
		}
	}

	return matches, nil
}

func (s *MemberService) CreateMember(ctx context.Context, member domain.Member) (domain.Member, error) {
	if member.MemberType == "" {
		member.MemberType = domain.MemberTypeFux
	}
	if !member.MemberType.Valid() {
		return domain.Member{}, ErrInvalidMemberType
	}
	if !member.AdminRole.Valid() {
		return domain.Member{}, ErrInvalidAdminRole
	}
	if strings.TrimSpace(member.FullName) == "" {
		member.FullName = member.DisplayName()
	}

	created, err := s.repo.Create(ctx, member)
	if err != nil {
		return domain.Member{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *MemberService) UpdateMember(ctx context.Context, id string, fields map[string]any) (domain.Member, error) {
	if v, ok := fields["member_type"].(string); ok && !domain.MemberType(v).Valid() {
		return domain.Member{}, ErrInvalidMemberType
	}
	if v, ok := fields["admin_role"].(string); ok && !domain.AdminRole(v).Valid() {
		return domain.Member{}, ErrInvalidAdminRole
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return domain.Member{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *MemberService) DeleteMember(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
