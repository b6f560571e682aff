package mockapi

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/freddy-le-go/mockauth/internal/common"
	"github.com/freddy-le-go/mockauth/internal/models"
)

// GetProfile returns the account record for a handle.
func (s *Service) GetProfile(ctx context.Context, userID string) (*models.APIResponse[models.User], error) {
	if err := s.sleep(ctx, getProfileDelay); err != nil {
		return nil, err
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	user := findUser(users, userID)
	if user == nil {
		return nil, common.NewAuthError(common.CodeUserNotFound)
	}
	return models.OK(*user, "Profile retrieved successfully"), nil
}

// UpdateProfile applies a partial update to the account. Nil request fields
// are left untouched. Changing the email re-checks uniqueness against every
// other account.
func (s *Service) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.APIResponse[models.UpdateProfileResponse], error) {
	if err := s.sleep(ctx, updateProfileDelay); err != nil {
		return nil, err
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	user := findUser(users, userID)
	if user == nil {
		return nil, common.NewAuthError(common.CodeUserNotFound)
	}

	if req.Email != nil && *req.Email != "" {
		for i := range users {
			if users[i].Email == *req.Email && users[i].UserID != userID {
				return nil, common.NewAuthError(common.CodeEmailExists)
			}
		}
	}

	if req.Salutation != nil {
		user.Salutation = *req.Salutation
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	user.UpdatedAt = s.now().UTC().Format(time.RFC3339)

	if err := s.saveUsers(ctx, users); err != nil {
		return nil, err
	}

	return models.OK(models.UpdateProfileResponse{User: *user}, "Profile updated successfully"), nil
}

// UploadAvatar assigns a fresh generated avatar URL to the account. The mock
// never stores image bytes; it only fabricates a stable-looking URL.
func (s *Service) UploadAvatar(ctx context.Context, userID string) (*models.APIResponse[models.AvatarData], error) {
	if err := s.sleep(ctx, uploadAvatarDelay); err != nil {
		return nil, err
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	user := findUser(users, userID)
	if user == nil {
		return nil, common.NewAuthError(common.CodeUserNotFound)
	}

	suffix, err := common.MakeRandHexString(5)
	if err != nil {
		return nil, common.ErrorInternal
	}
	user.Avatar = fmt.Sprintf("https://images.unsplash.com/photo-%s?w=150&h=150&fit=crop&crop=face", suffix)

	if err := s.saveUsers(ctx, users); err != nil {
		return nil, err
	}
	return models.OK(models.AvatarData{AvatarURL: user.Avatar}, "Avatar uploaded successfully"), nil
}

// DeleteAvatar clears the account's avatar URL.
func (s *Service) DeleteAvatar(ctx context.Context, userID string) (*models.APIResponse[models.LogoutData], error) {
	if err := s.sleep(ctx, deleteAvatarDelay); err != nil {
		return nil, err
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	user := findUser(users, userID)
	if user == nil {
		return nil, common.NewAuthError(common.CodeUserNotFound)
	}

	user.Avatar = ""
	if err := s.saveUsers(ctx, users); err != nil {
		return nil, err
	}
	return models.OK(models.LogoutData{Message: "Avatar deleted successfully"}, "Avatar deleted successfully"), nil
}

// GetUserStats fabricates activity counters for the profile screen.
func (s *Service) GetUserStats(ctx context.Context, userID string) (*models.APIResponse[models.UserStats], error) {
	if err := s.sleep(ctx, statsDelay); err != nil {
		return nil, err
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	if findUser(users, userID) == nil {
		return nil, common.NewAuthError(common.CodeUserNotFound)
	}

	stats := models.UserStats{
		PostsCount:     rand.IntN(50) + 5,
		FollowersCount: rand.IntN(1000) + 50,
		FollowingCount: rand.IntN(500) + 20,
	}
	return models.OK(stats, "User statistics retrieved successfully"), nil
}
