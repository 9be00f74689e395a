package sheets

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const spreadsheetsScope = "https://www.googleapis.com/auth/spreadsheets"

func newService(ctx context.Context, credBytes []byte) (*sheets.Service, error) {
	config, err := google.JWTConfigFromJSON(credBytes, spreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to get config from json: %w", err)
	}

	client := config.Client(ctx)

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, err
	}

	return srv, nil
}

func credentialsFromBase64Env() ([]byte, error) {
	encoded := os.Getenv("GOOGLE_SECURITY_KEY_JSON_BASE64")
	if encoded == "" {
		return nil, fmt.Errorf("GOOGLE_SECURITY_KEY_JSON_BASE64 not set")
	}

	credBytes, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to base64 decode GOOGLE_SECURITY_KEY_JSON_BASE64: %w", err)
	}

	return credBytes, nil
}

func credentialsFromJSONEnv() ([]byte, error) {
	raw := os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON")
	if raw == "" {
		return nil, fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_JSON not set")
	}

	return []byte(raw), nil
}

func credentialsFromFile() ([]byte, error) {
	path := os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE")
	if path == "" {
		path = "service_account.json"
	}

	credBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return credBytes, nil
}

// NewClientFromEnv resolves service account credentials by trying each known
// source in rank order: base64 env var, raw JSON env var, local key file.
// Each attempt is independently failable and logged; if every source fails
// the caller gets no handle and the session runs as a local scratchpad.
func NewClientFromEnv(ctx context.Context) (*sheets.Service, error) {
	sources := []struct {
		name string
		load func() ([]byte, error)
	}{
		{"env:GOOGLE_SECURITY_KEY_JSON_BASE64", credentialsFromBase64Env},
		{"env:GOOGLE_SERVICE_ACCOUNT_JSON", credentialsFromJSONEnv},
		{"file:service_account", credentialsFromFile},
	}

	var lastErr error
	for _, source := range sources {
		credBytes, err := source.load()
		if err != nil {
			log.Warnf("credential source %s unavailable: %v", source.name, err)
			lastErr = err
			continue
		}

		srv, err := newService(ctx, credBytes)
		if err != nil {
			log.Warnf("credential source %s rejected: %v", source.name, err)
			lastErr = err
			continue
		}

		log.Infof("authorized sheets client via %s", source.name)
		return srv, nil
	}

	return nil, fmt.Errorf("no usable service account credentials: %w", lastErr)
}
