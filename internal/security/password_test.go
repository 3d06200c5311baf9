package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fastParams = Argon2Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

func TestHashPasswordRoundTrip(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(digest, "$argon2id$v=19$"))

	assert.True(t, VerifyPassword("correct horse battery staple", digest))
	assert.False(t, VerifyPassword("correct horse battery stapler", digest))
}

func TestHashPasswordFreshSalt(t *testing.T) {
	t.Parallel()

	first, err := HashPasswordWithParams("testpass123", fastParams)
	require.NoError(t, err)
	second, err := HashPasswordWithParams("testpass123", fastParams)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, VerifyPassword("testpass123", first))
	assert.True(t, VerifyPassword("testpass123", second))
}

func TestVerifyPasswordMalformedDigest(t *testing.T) {
	t.Parallel()

	good, err := HashPasswordWithParams("pw", fastParams)
	require.NoError(t, err)
	parts := strings.Split(good, "$")

	digests := []string{
		"",
		"plaintext",
		"$argon2id$",
		"$argon2i$v=19$t=1,m=8192,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$" + strings.Join(parts[3:], "$"),
		"$argon2id$v=19$t=0,m=8192,p=1$" + parts[4] + "$" + parts[5],
		"$argon2id$v=19$t=x,m=8192,p=1$" + parts[4] + "$" + parts[5],
		"$argon2id$v=19$" + parts[3] + "$!!!$" + parts[5],
		"$argon2id$v=19$" + parts[3] + "$" + parts[4] + "$",
		"$2b$10$notreallyabcrypthash",
	}
	for _, d := range digests {
		assert.False(t, VerifyPassword("pw", d), "digest %q", d)
	}
}

func TestVerifyPasswordLegacyBcrypt(t *testing.T) {
	t.Parallel()

	legacy, err := bcrypt.GenerateFromPassword([]byte("testpass123"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, VerifyPassword("testpass123", string(legacy)))
	assert.False(t, VerifyPassword("wrongpass", string(legacy)))
}
