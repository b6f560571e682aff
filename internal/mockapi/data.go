package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/freddy-le-go/mockauth/internal/common"
	"github.com/freddy-le-go/mockauth/internal/kvstore"
	"github.com/freddy-le-go/mockauth/internal/models"
)

// defaultUsers seed the store on first run so login works out of the box.
// Their passwords are deliberately legacy plaintext records, exercising the
// migration path for pre-hashing data.
var defaultUsers = []models.User{
	{
		ID:        "1",
		UserID:    "john_doe",
		Email:     "john.doe@example.com",
		FirstName: "John",
		LastName:  "Doe",
		Avatar:    "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=face",
	},
	{
		ID:        "2",
		UserID:    "jane_smith",
		Email:     "jane.smith@example.com",
		FirstName: "Jane",
		LastName:  "Smith",
		Avatar:    "https://images.unsplash.com/photo-1494790108755-2616b612b786?w=150&h=150&fit=crop&crop=face",
	},
	{
		ID:        "3",
		UserID:    "mike_wilson",
		Email:     "mike.wilson@example.com",
		FirstName: "Mike",
		LastName:  "Wilson",
		Avatar:    "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150&h=150&fit=crop&crop=face",
	},
}

var defaultCredentials = map[string]string{
	"john_doe":    "Password123",
	"jane_smith":  "SecurePass456",
	"mike_wilson": "StrongPass789",
}

var defaultTokens = map[string]string{
	"john_doe":    "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.mock_token_john",
	"jane_smith":  "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.mock_token_jane",
	"mike_wilson": "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.mock_token_mike",
}

// Init seeds any collection that is absent from the backing store. Each key
// is seeded independently, so a partially populated store keeps its data.
func (s *Service) Init(ctx context.Context) error {
	if _, err := s.kv.Get(ctx, kvstore.KeyUsers); errors.Is(err, common.ErrorNotFound) {
		if err := s.saveUsers(ctx, defaultUsers); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	} else if err != nil {
		return err
	}

	if _, err := s.kv.Get(ctx, kvstore.KeyPasswords); errors.Is(err, common.ErrorNotFound) {
		creds := make(map[string]Credential, len(defaultCredentials))
		for userID, pw := range defaultCredentials {
			creds[userID] = ParseCredential(pw)
		}
		if err := s.saveCredentials(ctx, creds); err != nil {
			return fmt.Errorf("seed passwords: %w", err)
		}
	} else if err != nil {
		return err
	}

	if _, err := s.kv.Get(ctx, kvstore.KeyTokens); errors.Is(err, common.ErrorNotFound) {
		tokens := make(map[string]string, len(defaultTokens))
		for userID, tok := range defaultTokens {
			tokens[userID] = tok
		}
		if err := s.saveTokens(ctx, tokens); err != nil {
			return fmt.Errorf("seed tokens: %w", err)
		}
	} else if err != nil {
		return err
	}

	return nil
}

func (s *Service) loadUsers(ctx context.Context) ([]models.User, error) {
	data, err := s.kv.Get(ctx, kvstore.KeyUsers)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load users: %w", err)
	}
	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (s *Service) saveUsers(ctx context.Context, users []models.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, kvstore.KeyUsers, data)
}

func (s *Service) loadCredentials(ctx context.Context) (map[string]Credential, error) {
	data, err := s.kv.Get(ctx, kvstore.KeyPasswords)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return map[string]Credential{}, nil
		}
		return nil, fmt.Errorf("load passwords: %w", err)
	}
	creds := map[string]Credential{}
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("decode passwords: %w", err)
	}
	return creds, nil
}

func (s *Service) saveCredentials(ctx context.Context, creds map[string]Credential) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, kvstore.KeyPasswords, data)
}

func (s *Service) loadTokens(ctx context.Context) (map[string]string, error) {
	data, err := s.kv.Get(ctx, kvstore.KeyTokens)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("load tokens: %w", err)
	}
	tokens := map[string]string{}
	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, fmt.Errorf("decode tokens: %w", err)
	}
	return tokens, nil
}

func (s *Service) saveTokens(ctx context.Context, tokens map[string]string) error {
	data, err := json.Marshal(tokens)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, kvstore.KeyTokens, data)
}

// findUser returns a pointer into users for the record with the given
// handle, or nil. Lookup is a case-sensitive exact match.
func findUser(users []models.User, userID string) *models.User {
	for i := range users {
		if users[i].UserID == userID {
			return &users[i]
		}
	}
	return nil
}
