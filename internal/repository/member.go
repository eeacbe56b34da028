package repository

import (
	"context"
	"fmt"

	"github.com/kbteutonia/mitgliederbereich/internal/domain"
	"github.com/kbteutonia/mitgliederbereich/internal/repository/dao"
)

var ErrMemberNotFound = dao.ErrMemberNotFound

type MemberDAO interface {
	Insert(ctx context.Context, member dao.Member) (dao.Member, error)
	FindByID(ctx context.Context, id string) (dao.Member, error)
	FindByFullName(ctx context.Context, name string) ([]dao.Member, error)
	List(ctx context.Context) ([]dao.Member, error)
	Update(ctx context.Context, id string, fields map[string]any) (dao.Member, error)
	Delete(ctx context.Context, id string) error
}

type MemberRepository struct {
	dao MemberDAO
}

func NewMemberRepository(dao MemberDAO) *MemberRepository {
	return &MemberRepository{
		dao: dao,
	}
}

func (r *MemberRepository) Create(ctx context.Context, member domain.Member) (domain.Member, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(member))
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *MemberRepository) FindByID(ctx context.Context, id string) (domain.Member, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *MemberRepository) FindByFullName(ctx context.Context, name string) ([]domain.Member, error) {
	found, err := r.dao.FindByFullName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByFullName -> %w", err)
	}

	members := make([]domain.Member, len(found))
	for i, m := range found {
		members[i] = r.daoToDomain(m)
	}

	return members, nil
}

func (r *MemberRepository) List(ctx context.Context) ([]domain.Member, error) {
	found, err := r.dao.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	members := make([]domain.Member, len(found))
	for i, m := range found {
		members[i] = r.daoToDomain(m)
	}

	return members, nil
}

func (r *MemberRepository) Update(ctx context.Context, id string, fields map[string]any) (domain.Member, error) {
	updated, err := r.dao.Update(ctx, id, fields)
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *MemberRepository) Delete(ctx context.Context, id string) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *MemberRepository) daoToDomain(m dao.Member) domain.Member {
	member := domain.Member{
		ID:         m.ID,
		FirstName:  m.FirstName,
		Surname:    m.Surname,
		FullName:   m.FullName,
		MemberType: domain.MemberType(m.MemberType),
		LastLogin:  m.LastLogin,
		CreatedAt:  m.CreatedAt,
	}
	if m.AdminRole != nil {
		member.AdminRole = domain.AdminRole(*m.AdminRole)
	}
	if m.PasswordHash != nil {
		member.PasswordHash = *m.PasswordHash
	}

	return member
}

func (r *MemberRepository) domainToDAO(m domain.Member) dao.Member {
	member := dao.Member{
		ID:         m.ID,
		FirstName:  m.FirstName,
		Surname:    m.Surname,
		FullName:   m.FullName,
		MemberType: string(m.MemberType),
	}
	if m.AdminRole != domain.RoleNone {
		role := string(m.AdminRole)
		member.AdminRole = &role
	}
	if m.PasswordHash != "" {
		hash := m.PasswordHash
		member.PasswordHash = &hash
	}

	return member
}
