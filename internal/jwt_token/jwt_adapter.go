package jwttoken

import (
	id "mediaconsole/pkg/domain"
	dErrors "mediaconsole/pkg/domain-errors"
	authmw "mediaconsole/pkg/platform/middleware/auth"
)

// JWTServiceAdapter exposes JWTService through the middleware's validator port.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*authmw.Session, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	userID, err := id.ParseUserID(claims.UserID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid token subject")
	}
	return &authmw.Session{
		UserID:    userID,
		PartnerID: id.PartnerID(claims.PartnerID),
		TokenID:   claims.ID,
	}, nil
}
