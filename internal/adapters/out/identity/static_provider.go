// Package identity resolves bearer tokens to users.
package identity

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

var _ ports.IdentityProvider = (*StaticProvider)(nil)

// StaticProvider checks tokens against a fixed table, for deployments that
// sit behind a gateway issuing long-lived service tokens.
type StaticProvider struct {
	tokens map[string]kernel.ID
}

// ParseStaticProvider reads "token:userId" pairs separated by commas.
//
// Example:
//
//	provider, err := identity.ParseStaticProvider("s3cr3t:7,0th3r:8")
func ParseStaticProvider(raw string) (*StaticProvider, error) {
	tokens := make(map[string]kernel.ID)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		token, rawUserID, ok := strings.Cut(pair, ":")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			return nil, errs.NewValueIsInvalidErrorWithCause("IDENTITY_TOKENS", fmt.Errorf("malformed pair %q", pair))
		}

		userID, err := kernel.ParseID("IDENTITY_TOKENS", rawUserID)
		if err != nil {
			return nil, err
		}
		tokens[token] = userID
	}

	if len(tokens) == 0 {
		return nil, errs.NewValueIsRequiredError("IDENTITY_TOKENS")
	}
	return &StaticProvider{tokens: tokens}, nil
}

// ValidateToken returns the identity bound to token, or ports.ErrUnauthenticated.
func (p *StaticProvider) ValidateToken(_ context.Context, token string) (ports.Identity, error) {
	for known, userID := range p.tokens {
		if subtle.ConstantTimeCompare([]byte(known), []byte(token)) == 1 {
			return ports.Identity{UserID: userID}, nil
		}
	}
	return ports.Identity{}, ports.ErrUnauthenticated
}
