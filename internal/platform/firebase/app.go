// Package firebase initializes the Admin SDK clients shared by the service.
package firebase

import (
	"context"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Config selects the Firebase project and, optionally, an explicit service
// account. With no credentials path the SDK falls back to application
// default credentials (or the emulator, when its env vars are set).
type Config struct {
	ProjectID                    string
	GoogleApplicationCredentials string
}

// Clients bundles the initialized Admin SDK handles. Auth is the identity
// provider (token verification, profile field writes); Firestore holds the
// extended profile documents.
type Clients struct {
	Auth      *auth.Client
	Firestore *firestore.Client
}

// InitializeClients builds the Firebase app and both clients.
func InitializeClients(ctx context.Context, cfg Config) (*Clients, error) {
	var opts []option.ClientOption
	if cfg.GoogleApplicationCredentials != "" {
		creds, err := os.ReadFile(cfg.GoogleApplicationCredentials)
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithCredentialsJSON(creds))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, err
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, err
	}

	return &Clients{Auth: authClient, Firestore: firestoreClient}, nil
}

// Close releases the Firestore connection. The auth client holds no
// long-lived resources.
func (c *Clients) Close() error {
	if c.Firestore != nil {
		return c.Firestore.Close()
	}
	return nil
}
