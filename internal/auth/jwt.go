package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

// DecodeJWTPayload returns the unverified payload of a JWT, or ok=false for opaque tokens.
func DecodeJWTPayload(token string) (payload string, ok bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", false
	}
	p, err := decodeB64URL(parts[1])
	if err != nil {
		return "", false
	}
	return p, true
}

func decodeB64URL(s string) (string, error) {
	dec, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		dec2, err2 := base64.URLEncoding.DecodeString(s)
		if err2 != nil {
			return "", err
		}
		return string(dec2), nil
	}
	return string(dec), nil
}

func expiryFromJWT(token string) *time.Time {
	payload, ok := DecodeJWTPayload(token)
	if !ok {
		return nil
	}
	var claims struct {
		Exp int64 `json:"exp"`
	}
	if err := json.Unmarshal([]byte(payload), &claims); err != nil || claims.Exp == 0 {
		return nil
	}
	t := time.Unix(claims.Exp, 0).UTC()
	return &t
}
