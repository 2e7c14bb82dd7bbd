package credentials

import (
	"context"
	"testing"

	awscreds "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIDEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "topsecret")

	cred, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "AKIDEXAMPLE", cred.AccessKey)
	assert.Equal(t, "topsecret", cred.SecretKey)
}

func TestFromEnv_Missing(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")

	_, err := FromEnv()
	assert.ErrorIs(t, err, ErrMissingEnv)
}

func TestFromProvider(t *testing.T) {
	p := awscreds.NewStaticCredentialsProvider("AKIDEXAMPLE", "topsecret", "")

	cred, err := FromProvider(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "AKIDEXAMPLE", cred.AccessKey)
	assert.Equal(t, "topsecret", cred.SecretKey)
}
