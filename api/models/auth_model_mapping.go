package models

import (
	user_service "github.com/PartnerPortal/PartnerPortal-Backend/services/user"
	"github.com/PartnerPortal/PartnerPortal-Backend/utils"
)

func (u UserResponse) ToUserResponse(user *user_service.PortalUser) *UserResponse {
	return &UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}
}

func ToSessionResponse(token string, session utils.TokenObject) *SessionResponse {
	return &SessionResponse{
		User: UserResponse{
			ID:    session.UserID,
			Email: session.Email,
			Name:  session.Name,
			Role:  session.Role,
		},
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	}
}
