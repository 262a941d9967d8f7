package auth

import "errors"

type LoginDTO struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

func (dto LoginDTO) Validate() error {
	if dto.UserName == "" {
		return errors.New("user_name is required")
	}
	if dto.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
	Role        string `json:"role"`
}
