package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/digital-guidance/guidance-api/internal/auth"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs(args)
	err := root.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestHashPassword(t *testing.T) {
	out, err := run(t, "hash-password", "--password", "secret1", "--cost", "4")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(out), []byte("secret1")))

	_, err = run(t, "hash-password")
	assert.Error(t, err)
}

func TestMintTokenRoundTrip(t *testing.T) {
	out, err := run(t, "mint-token", "--secret", "cli-test-secret", "--sub", "7", "--role", "admin")
	require.NoError(t, err)

	codec, err := auth.NewTokenCodec([]byte("cli-test-secret"))
	require.NoError(t, err)
	claims, err := codec.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.SubjectID())
	assert.Equal(t, "admin", claims.Role)
}

func TestMintTokenRejectsBadInput(t *testing.T) {
	_, err := run(t, "mint-token", "--secret", "cli-test-secret")
	assert.Error(t, err)

	_, err = run(t, "mint-token", "--secret", "cli-test-secret", "--sub", "7", "--role", "root")
	assert.Error(t, err)

	_, err = run(t, "mint-token", "--secret", "", "--sub", "7")
	assert.Error(t, err)
}

func TestSeedAdminRequiresCredentials(t *testing.T) {
	_, err := run(t, "seed-admin", "--email", "ops@example.com")
	assert.Error(t, err)
}

func TestCommandTree(t *testing.T) {
	root := NewRootCommand()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"hash-password", "mint-token", "ping-db", "migrate", "seed-admin"})
}
