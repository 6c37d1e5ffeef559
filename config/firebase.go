package config

import (
	"encoding/json"
	"errors"
)

// ServiceAccount holds the fields of a Google service account key needed to
// reach Firestore.
type ServiceAccount struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri"`
}

// ErrNoFirebaseCredentials is returned when neither inline credentials nor a
// credentials file are configured.
var ErrNoFirebaseCredentials = errors.New("no firebase credentials configured")

// FirebaseCredentialsJSON renders the inline FIREBASE_* settings as a service
// account key. It returns ErrNoFirebaseCredentials when they are incomplete.
func (c *Config) FirebaseCredentialsJSON() ([]byte, error) {
	if c.FirebaseProjectID == "" || c.FirebaseClientEmail == "" || c.FirebasePrivateKey == "" {
		return nil, ErrNoFirebaseCredentials
	}
	return json.Marshal(ServiceAccount{
		Type:        "service_account",
		ProjectID:   c.FirebaseProjectID,
		ClientEmail: c.FirebaseClientEmail,
		PrivateKey:  c.FirebasePrivateKey,
		TokenURI:    "https://oauth2.googleapis.com/token",
	})
}
