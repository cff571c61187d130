package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// UserService provides profile business logic.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetUser returns a user by id.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetUserByHandle returns a user by handle.
func (s *UserService) GetUserByHandle(ctx context.Context, handle string) (*models.User, error) {
	return s.userRepo.GetByHandle(ctx, handle)
}

// UpdateProfile applies the allow-listed profile fields. Flipping a
// private account to public does not auto-approve pending requests;
// they stay pending until the owner decides.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, req models.UpdateProfileRequest) (*models.User, error) {
	if err := models.Validate.Struct(req); err != nil {
		return nil, models.NewValidationError("invalid profile fields")
	}

	fields := map[string]interface{}{}
	if req.Handle != nil {
		fields["handle"] = *req.Handle
	}
	if req.DisplayName != nil {
		fields["display_name"] = *req.DisplayName
	}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.AvatarURL != nil {
		fields["avatar_url"] = *req.AvatarURL
	}
	if req.Visibility != nil {
		fields["visibility"] = *req.Visibility
	}

	if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}
