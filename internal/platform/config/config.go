package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Settings holds process configuration resolved from the environment.
type Settings struct {
	// Port the HTTP server listens on.
	Port string
	// FirebaseProjectID identifies the Firebase project for Auth and Firestore.
	FirebaseProjectID string
	// GoogleApplicationCredentials is an optional path to a service account JSON file.
	GoogleApplicationCredentials string
	// CloudinaryCloudName identifies the upload endpoint account.
	CloudinaryCloudName string
	// CloudinaryUploadPreset authorizes unsigned uploads.
	CloudinaryUploadPreset string
	// CloudinaryUploadFolder is the destination folder for stored avatars.
	CloudinaryUploadFolder string
}

// Load reads settings from the environment, merging a .env file when present.
// Missing upload-endpoint values are not an error here; the storage client
// reports them as a configuration failure before any network attempt.
func Load() Settings {
	// .env is a local development convenience; absence is expected in production.
	_ = godotenv.Load()

	s := Settings{
		Port:                         os.Getenv("PORT"),
		FirebaseProjectID:            firstNonEmpty(os.Getenv("FIREBASE_PROJECT_ID"), os.Getenv("GOOGLE_CLOUD_PROJECT")),
		GoogleApplicationCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		CloudinaryCloudName:          os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryUploadPreset:       os.Getenv("CLOUDINARY_UPLOAD_PRESET"),
		CloudinaryUploadFolder:       os.Getenv("CLOUDINARY_UPLOAD_FOLDER"),
	}
	if s.Port == "" {
		s.Port = "8080"
	}
	if s.CloudinaryUploadFolder == "" {
		s.CloudinaryUploadFolder = "profile-avatars"
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
