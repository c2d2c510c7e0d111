package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/MarinusJvRe/TrophyVault/internal/config"
	"github.com/MarinusJvRe/TrophyVault/pkg/logger"
	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

var ErrOIDCDisabled = errors.New("oidc login is not configured")

// OIDCService drives the authorization code flow against a discovered
// OpenID Connect provider.
type OIDCService struct {
	oauth    *oauth2.Config
	verifier *oidc.IDTokenVerifier
}

// NewOIDCService performs provider discovery, so it needs network access to
// the issuer at startup.
func NewOIDCService(ctx context.Context, cfg config.OIDCConfig) (*OIDCService, error) {
	if !cfg.Enabled() {
		return nil, ErrOIDCDisabled
	}

	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("discover oidc provider: %w", err)
	}

	scopes := cfg.ScopeList()
	if len(scopes) == 0 {
		scopes = []string{oidc.ScopeOpenID}
	}

	return &OIDCService{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       scopes,
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

func (s *OIDCService) AuthCodeURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

// Exchange trades the callback code for a verified identity.
func (s *OIDCService) Exchange(ctx context.Context, code string) (*Identity, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		logger.Warn("oidc_exchange_failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, errors.New("failed to exchange code for token")
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, errors.New("token response has no id_token")
	}

	idToken, err := s.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}

	var claims struct {
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
		FirstName  string `json:"first_name"`
		LastName   string `json:"last_name"`
		Picture    string `json:"picture"`
		ProfileURL string `json:"profile_image_url"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("decode id token claims: %w", err)
	}

	identity := &Identity{
		Subject:         idToken.Subject,
		Email:           claims.Email,
		FirstName:       firstNonEmpty(claims.GivenName, claims.FirstName),
		LastName:        firstNonEmpty(claims.FamilyName, claims.LastName),
		ProfileImageURL: firstNonEmpty(claims.Picture, claims.ProfileURL),
	}
	return identity, nil
}

// GenerateState returns a random value for the OAuth state parameter.
func GenerateState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
