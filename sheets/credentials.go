// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sheets

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/danielhkuo/allotdesk/models"
)

// CredentialsLoader returns service account JSON.
type CredentialsLoader func(ctx context.Context) ([]byte, error)

// SecretsAPI is the subset of the Secrets Manager client used here.
type SecretsAPI interface {
	GetSecretValue(
		ctx context.Context,
		params *secretsmanager.GetSecretValueInput,
		optFns ...func(*secretsmanager.Options),
	) (*secretsmanager.GetSecretValueOutput, error)
}

// CredentialsConfig selects where the service account JSON comes from.
// Inline JSON wins over a secret id.
type CredentialsConfig struct {
	JSON      string
	SecretID  string
	AWSRegion string
}

// NewSecretsClient builds a Secrets Manager client from the default AWS chain.
func NewSecretsClient(ctx context.Context, region string) (*secretsmanager.Client, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, models.ConfigError("failed to load AWS config: %v", err)
	}
	return secretsmanager.NewFromConfig(cfg), nil
}

// Loader returns a CredentialsLoader for cfg. api may be nil, in which case a
// Secrets Manager client is created on demand when SecretID is set.
func Loader(cfg CredentialsConfig, api SecretsAPI) CredentialsLoader {
	return func(ctx context.Context) ([]byte, error) {
		if raw := strings.TrimSpace(cfg.JSON); raw != "" {
			return validJSON([]byte(raw), "GOOGLE_SERVICE_ACCOUNT_JSON")
		}
		if cfg.SecretID == "" {
			return nil, models.ConfigError("missing GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_SECRET_ID")
		}

		client := api
		if client == nil {
			c, err := NewSecretsClient(ctx, cfg.AWSRegion)
			if err != nil {
				return nil, err
			}
			client = c
		}

		out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
			SecretId: aws.String(cfg.SecretID),
		})
		if err != nil {
			return nil, models.UpstreamError("failed to fetch service account secret", err)
		}
		if out.SecretString != nil {
			return validJSON([]byte(*out.SecretString), "secret "+cfg.SecretID)
		}
		if len(out.SecretBinary) > 0 {
			return validJSON(out.SecretBinary, "secret "+cfg.SecretID)
		}
		return nil, models.ConfigError("secret %s has no value", cfg.SecretID)
	}
}

func validJSON(b []byte, source string) ([]byte, error) {
	if !json.Valid(b) {
		return nil, models.ConfigError("%s is not valid JSON", source)
	}
	return b, nil
}
