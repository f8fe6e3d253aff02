package utils

import (
	"context"
	"errors"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// GoogleUser là danh tính lấy ra từ token Google đã xác minh.
type GoogleUser struct {
	Email string
	Name  string
}

// VerifyGoogleIDToken xác minh ID token Google (audience = GOOGLE_CLIENT_ID)
// và lấy email + tên hiển thị.
func VerifyGoogleIDToken(ctx context.Context, rawToken string) (*GoogleUser, error) {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	if clientID == "" {
		return nil, errors.New("GOOGLE_CLIENT_ID không được thiết lập")
	}

	payload, err := idtoken.Validate(ctx, rawToken, clientID)
	if err != nil {
		return nil, err
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		return nil, errors.New("token Google không chứa email")
	}

	return &GoogleUser{Email: email, Name: name}, nil
}

// GoogleOAuthConfig dựng config cho luồng redirect (authorization code).
func GoogleOAuthConfig() (*oauth2.Config, error) {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	redirectURL := os.Getenv("GOOGLE_REDIRECT_URL")
	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil, errors.New("thiếu GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET / GOOGLE_REDIRECT_URL")
	}

	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}, nil
}

// ExchangeGoogleCode đổi authorization code lấy token rồi xác minh id_token bên trong.
func ExchangeGoogleCode(ctx context.Context, code string) (*GoogleUser, error) {
	conf, err := GoogleOAuthConfig()
	if err != nil {
		return nil, err
	}

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, errors.New("Google không trả về id_token")
	}

	return VerifyGoogleIDToken(ctx, rawIDToken)
}
