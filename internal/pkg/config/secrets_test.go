package config

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecretsClient struct {
	secret string
	err    error
	calls  int
}

func (f *fakeSecretsClient) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(f.secret)}, nil
}

func testSecretsManager(client secretValueGetter) *AWSSecretsManager {
	return newAWSSecretsManager(client, "swifttrack/test", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAWSSecretsManager_GetSecretsCaches(t *testing.T) {
	client := &fakeSecretsClient{secret: `{"DB_PASSWORD":"pg-pass","REDIS_PASSWORD":"redis-pass"}`}
	sm := testSecretsManager(client)
	ctx := context.Background()

	got, err := sm.GetSecrets(ctx, []string{SecretDBPassword, SecretRedisPassword})
	require.NoError(t, err)
	assert.Equal(t, "pg-pass", got[SecretDBPassword])

	val, err := sm.GetSecret(ctx, SecretRedisPassword)
	require.NoError(t, err)
	assert.Equal(t, "redis-pass", val)
	assert.Equal(t, 1, client.calls)

	require.NoError(t, sm.RefreshSecrets(ctx))
	assert.Equal(t, 2, client.calls)
}

func TestAWSSecretsManager_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("client_error", func(t *testing.T) {
		sm := testSecretsManager(&fakeSecretsClient{err: errors.New("access denied")})
		_, err := sm.GetSecrets(ctx, []string{SecretDBPassword})
		assert.ErrorContains(t, err, "access denied")
	})

	t.Run("bad_json", func(t *testing.T) {
		sm := testSecretsManager(&fakeSecretsClient{secret: "not json"})
		_, err := sm.GetSecrets(ctx, []string{SecretDBPassword})
		assert.ErrorContains(t, err, "failed to parse secret JSON")
	})

	t.Run("missing_key", func(t *testing.T) {
		sm := testSecretsManager(&fakeSecretsClient{secret: `{}`})
		_, err := sm.GetSecret(ctx, SecretDBPassword)
		assert.ErrorIs(t, err, ErrMissingRequired)
	})
}

func TestApplySecrets(t *testing.T) {
	cfg := &Config{}
	cfg.Database.Password = "from-env"
	cfg.AWS.AccessKeyID = "env-key"

	sm := testSecretsManager(&fakeSecretsClient{secret: `{"DB_PASSWORD":"from-store","REDIS_PASSWORD":"r"}`})
	require.NoError(t, ApplySecrets(context.Background(), cfg, sm))

	assert.Equal(t, "from-store", cfg.Database.Password)
	assert.Equal(t, "r", cfg.Redis.Password)
	assert.Equal(t, "r", cfg.Asynq.RedisPassword)
	assert.Equal(t, "env-key", cfg.AWS.AccessKeyID)
}

func TestEnvSecretsManager(t *testing.T) {
	t.Setenv("DB_PASSWORD", "env-pass")
	sm := NewEnvSecretsManager()

	val, err := sm.GetSecret(context.Background(), "DB_PASSWORD")
	require.NoError(t, err)
	assert.Equal(t, "env-pass", val)

	_, err = sm.GetSecret(context.Background(), "SWIFTTRACK_UNSET_SECRET")
	assert.ErrorIs(t, err, ErrMissingRequired)
}
