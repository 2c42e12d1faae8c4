package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const oauthFileStem = "oauthClient"

// OAuthClientConfig is a Google OAuth client file as downloaded from the Cloud console.
// Desktop clients carry an "installed" section, web clients a "web" section.
type OAuthClientConfig struct {
	Installed *OAuthClientSecrets `json:"installed,omitempty" validate:"required_without=Web"`
	Web       *OAuthClientSecrets `json:"web,omitempty" validate:"required_without=Installed"`
}

// OAuthClientSecrets holds the client credentials and endpoints of one client section
type OAuthClientSecrets struct {
	ClientID                string   `json:"client_id" validate:"required"`
	ProjectID               string   `json:"project_id" validate:"required"`
	AuthURI                 string   `json:"auth_uri" validate:"required,url"`
	TokenURI                string   `json:"token_uri" validate:"required,url"`
	AuthProviderX509CertURL string   `json:"auth_provider_x509_cert_url,omitempty" validate:"omitempty,url"`
	ClientSecret            string   `json:"client_secret" validate:"required"`
	RedirectURIs            []string `json:"redirect_uris" validate:"required,min=1,dive,uri"`
}

// Secrets returns whichever client section is present
func (c *OAuthClientConfig) Secrets() *OAuthClientSecrets {
	if c.Installed != nil {
		return c.Installed
	}
	return c.Web
}

// LoadOAuthClientWithEnv loads and validates the OAuth client configuration with an environment suffix
// For example, env="test" will look for "oauthClient.test.json"
func LoadOAuthClientWithEnv(env string) (*OAuthClientConfig, error) {
	oauthPath, err := findOAuthFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find oauth client file: %w", err)
	}

	return LoadOAuthClientFromPath(oauthPath)
}

// LoadOAuthClientFromPath loads and validates the OAuth client configuration from a specific path
func LoadOAuthClientFromPath(path string) (*OAuthClientConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth client file: %w", err)
	}

	var oauthCfg OAuthClientConfig
	if err := json.Unmarshal(data, &oauthCfg); err != nil {
		return nil, fmt.Errorf("failed to parse oauth client file: %w", err)
	}

	if err := ValidateOAuthClient(&oauthCfg); err != nil {
		return nil, err
	}

	return &oauthCfg, nil
}

// ValidateOAuthClient validates the OAuth client configuration
func ValidateOAuthClient(cfg *OAuthClientConfig) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("oauth client validation failed: %w", err)
	}

	return nil
}

func findOAuthFile(env string) (string, error) {
	oauthFileName := oauthFileStem + ".json"
	if env != "" {
		oauthFileName = oauthFileStem + "." + env + ".json"
	}

	if _, err := os.Stat(oauthFileName); err == nil {
		return oauthFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeOAuthPath := filepath.Join(homeDir, oauthFileName)
	if _, err := os.Stat(homeOAuthPath); err == nil {
		return homeOAuthPath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", oauthFileName)
}
