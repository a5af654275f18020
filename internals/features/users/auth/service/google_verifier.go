package service

import (
	"errors"
	"strings"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
)

var (
	ErrGoogleDisabled      = errors.New("login Google tidak aktif")
	ErrGoogleTokenInvalid  = errors.New("google ID token tidak valid")
	ErrGoogleNotRegistered = errors.New("email Google belum terdaftar")
)

type GoogleIdentity struct {
	Email   string
	Name    string
	Subject string
}

type GoogleVerifier interface {
	Verify(idToken string) (*GoogleIdentity, error)
}

type idTokenVerifier struct {
	clientID string
	verifier *googleAuthIDTokenVerifier.Verifier
}

// NewGoogleVerifier mengembalikan nil kalau GOOGLE_CLIENT_ID kosong (login Google dimatikan).
func NewGoogleVerifier(clientID string) GoogleVerifier {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil
	}
	return idTokenVerifier{clientID: clientID, verifier: &googleAuthIDTokenVerifier.Verifier{}}
}

func (v idTokenVerifier) Verify(idToken string) (*GoogleIdentity, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, ErrGoogleTokenInvalid
	}
	if err := v.verifier.VerifyIDToken(idToken, []string{v.clientID}); err != nil {
		return nil, ErrGoogleTokenInvalid
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, ErrGoogleTokenInvalid
	}
	return &GoogleIdentity{Email: claimSet.Email, Name: claimSet.Name, Subject: claimSet.Sub}, nil
}
