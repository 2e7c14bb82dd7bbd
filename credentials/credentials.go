// Package credentials sources a sigv2.Credential from the environments an
// operator already has: process env vars, the AWS shared config, or any SDK
// credentials provider. The SDK is used only to resolve keys; signing and
// transport stay in this module.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"tasnim.dev/s3browse/sigv2"
)

// ErrMissingEnv is returned by FromEnv when either variable is unset.
var ErrMissingEnv = errors.New("AWS_ACCESS_KEY_ID or AWS_SECRET_ACCESS_KEY not set")

// FromEnv reads AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY.
func FromEnv() (sigv2.Credential, error) {
	access := os.Getenv("AWS_ACCESS_KEY_ID")
	secret := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if access == "" || secret == "" {
		return sigv2.Credential{}, ErrMissingEnv
	}
	return sigv2.Credential{AccessKey: access, SecretKey: secret}, nil
}

// FromProvider resolves a credential from any SDK provider.
func FromProvider(ctx context.Context, p aws.CredentialsProvider) (sigv2.Credential, error) {
	v, err := p.Retrieve(ctx)
	if err != nil {
		return sigv2.Credential{}, fmt.Errorf("retrieving credentials: %w", err)
	}
	return sigv2.Credential{AccessKey: v.AccessKeyID, SecretKey: v.SecretAccessKey}, nil
}

// FromSharedConfig loads the AWS shared config (env, ~/.aws/credentials,
// ~/.aws/config) with an optional profile override and resolves a credential
// from it.
func FromSharedConfig(ctx context.Context, profile string) (sigv2.Credential, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return sigv2.Credential{}, fmt.Errorf("loading AWS config: %w", err)
	}
	return FromProvider(ctx, cfg.Credentials)
}
