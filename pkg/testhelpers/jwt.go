package testhelpers

import (
	"encoding/base64"
	"fmt"
)

// GenerateTestJWT creates a test JWT for use when verification is disabled.
// The token has a valid structure but no signature (alg: none). The subject
// is the user's UUID; membership is never carried in the token.
func GenerateTestJWT(sub, username, email string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))

	payload := fmt.Sprintf(`{"sub":"%s"`, sub)
	if username != "" {
		payload += fmt.Sprintf(`,"username":"%s"`, username)
	}
	if email != "" {
		payload += fmt.Sprintf(`,"email":"%s"`, email)
	}
	payload += "}"

	encodedPayload := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return fmt.Sprintf("%s.%s.", header, encodedPayload)
}

// GenerateTestJWTWithBearer returns the token with a "Bearer " prefix for
// the Authorization header.
func GenerateTestJWTWithBearer(sub, username, email string) string {
	return "Bearer " + GenerateTestJWT(sub, username, email)
}
