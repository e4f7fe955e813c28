package mambo

import (
	"context"
	"fmt"
	"os"
	"sync"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// SetupGCP makes sure application-default credentials are reachable before
// any Secret Manager or Storage client is created.
func SetupGCP() error {
	if os.Getenv("ENV") != "production" && os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
		defaultCredFile := "mambo-gcp-credentials.json"
		if _, err := os.Stat(defaultCredFile); err == nil {
			os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", defaultCredFile)
		} else {
			return fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS env variable not set and default (%s) not found", defaultCredFile)
		}
	}
	return nil
}

var (
	secretCache   = map[string]string{}
	secretCacheMu sync.Mutex
)

// accessSecret fetches the latest version of a secret, caching the payload
// for the lifetime of the process.
func accessSecret(project, name string) (string, error) {
	key := project + "/" + name
	secretCacheMu.Lock()
	if cached, ok := secretCache[key]; ok {
		secretCacheMu.Unlock()
		return cached, nil
	}
	secretCacheMu.Unlock()

	ctx := context.Background()
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("creating secret manager client: %w", err)
	}
	defer client.Close()

	req := &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", project, name),
	}
	result, err := client.AccessSecretVersion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("accessing secret %s: %w", name, err)
	}
	payload := string(result.Payload.Data)

	secretCacheMu.Lock()
	secretCache[key] = payload
	secretCacheMu.Unlock()
	return payload, nil
}

// GetServerSecrets returns the TLS certificate and key for the master's
// listener.
func GetServerSecrets(cfg *Config) (string, string, error) {
	crt, err := accessSecret(cfg.GCP.Project, cfg.Security.TLSCertSecretName)
	if err != nil {
		return "", "", err
	}
	key, err := accessSecret(cfg.GCP.Project, cfg.Security.TLSKeySecretName)
	if err != nil {
		return "", "", err
	}
	return crt, key, nil
}

func getJWTSecret(cfg *Config) (string, error) {
	return accessSecret(cfg.GCP.Project, cfg.Security.JWTSecretName)
}
