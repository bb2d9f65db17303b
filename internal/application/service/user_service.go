package service

import (
	"context"

	"github.com/ancarat/orderdesk/internal/domain/entity"
	"github.com/ancarat/orderdesk/internal/domain/enum"
	"github.com/ancarat/orderdesk/internal/domain/repository"
	"github.com/ancarat/orderdesk/pkg/apperror"
	"github.com/ancarat/orderdesk/pkg/pagination"
	"github.com/ancarat/orderdesk/pkg/utils"
	"github.com/google/uuid"
)

// UserService handles operator account administration
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents the create user input
type CreateUserInput struct {
	Username string
	Password string
	FullName string
	Role     enum.Role
}

// CreateUser creates a new operator account
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	existing, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Username already taken")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = enum.RoleUser
	}

	user := &entity.User{
		Username: input.Username,
		Password: hashed,
		FullName: input.FullName,
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers lists operator accounts with pagination
func (s *UserService) ListUsers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.User], error) {
	users, total, err := s.userRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(users, pag), nil
}

// DeleteUser removes an operator account
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}
	return s.userRepo.Delete(ctx, id)
}
