package tokens

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-jwt-secret")

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCodec_SignVerify(t *testing.T) {
	t.Parallel()

	now := time.Now().Truncate(time.Second)
	codec := NewCodec(testSecret).WithClock(fixedClock(now))

	token, err := codec.Sign("alice", map[string]any{RoleClaim: RoleUser}, 15*time.Minute)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, RoleUser, claims.Role)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, now.Add(15*time.Minute).Unix(), claims.ExpiresAt.Unix())
}

func TestCodec_Sign_RequiresRole(t *testing.T) {
	t.Parallel()

	codec := NewCodec(testSecret)

	_, err := codec.Sign("alice", nil, time.Minute)
	assert.ErrorIs(t, err, ErrMissingRole)

	_, err = codec.Sign("alice", map[string]any{RoleClaim: ""}, time.Minute)
	assert.ErrorIs(t, err, ErrMissingRole)
}

func TestCodec_Verify_Errors(t *testing.T) {
	t.Parallel()

	now := time.Now()
	codec := NewCodec(testSecret).WithClock(fixedClock(now))

	alice, err := codec.Sign("alice", map[string]any{RoleClaim: RoleUser}, time.Minute)
	require.NoError(t, err)
	admin, err := codec.Sign("mallory", map[string]any{RoleClaim: RoleAdmin}, time.Minute)
	require.NoError(t, err)

	a := strings.Split(alice, ".")
	m := strings.Split(admin, ".")
	swapped := a[0] + "." + m[1] + "." + a[2]

	otherKey, err := NewCodec([]byte("another-secret")).Sign("alice", map[string]any{RoleClaim: RoleUser}, time.Minute)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":  "alice",
		"role": RoleAdmin,
		"exp":  now.Add(time.Minute).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "empty", token: "", want: ErrMalformed},
		{name: "two segments", token: a[0] + "." + a[1], want: ErrMalformed},
		{name: "garbage", token: "not.a.jwt", want: ErrMalformed},
		{name: "payload swapped", token: swapped, want: ErrInvalidSignature},
		{name: "foreign secret", token: otherKey, want: ErrInvalidSignature},
		{name: "alg none", token: none, want: ErrInvalidSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := codec.Verify(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

const base64URLAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// Every character of the signature segment matters, including the last one
// whose low bits carry no MAC data.
func TestCodec_Verify_MutatedSignature(t *testing.T) {
	t.Parallel()

	codec := NewCodec(testSecret)
	token, err := codec.Sign("alice", map[string]any{RoleClaim: RoleUser}, time.Minute)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	sig := parts[2]
	require.Len(t, sig, 43)

	for i := range len(sig) {
		pos := strings.IndexByte(base64URLAlphabet, sig[i])
		require.GreaterOrEqual(t, pos, 0)

		mutated := []byte(sig)
		mutated[i] = base64URLAlphabet[pos^1]
		forged := parts[0] + "." + parts[1] + "." + string(mutated)

		claims, err := codec.Verify(forged)
		assert.Nil(t, claims, "char %d", i)
		assert.ErrorIs(t, err, ErrInvalidSignature, "char %d", i)
	}
}

func TestCodec_Sign_UniquePerCall(t *testing.T) {
	t.Parallel()

	codec := NewCodec(testSecret).WithClock(fixedClock(time.Now()))

	first, err := codec.Sign("alice", map[string]any{RoleClaim: RoleUser}, time.Minute)
	require.NoError(t, err)
	second, err := codec.Sign("alice", map[string]any{RoleClaim: RoleUser}, time.Minute)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	c1, err := codec.Verify(first)
	require.NoError(t, err)
	c2, err := codec.Verify(second)
	require.NoError(t, err)
	assert.NotEmpty(t, c1.ID)
	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestCodec_Verify_Expiry(t *testing.T) {
	t.Parallel()

	issued := time.Now()
	token, err := NewCodec(testSecret).WithClock(fixedClock(issued)).
		Sign("alice", map[string]any{RoleClaim: RoleUser}, time.Minute)
	require.NoError(t, err)

	_, err = NewCodec(testSecret).WithClock(fixedClock(issued.Add(30 * time.Second))).Verify(token)
	assert.NoError(t, err)

	_, err = NewCodec(testSecret).WithClock(fixedClock(issued.Add(2 * time.Minute))).Verify(token)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestExtractSubject(t *testing.T) {
	t.Parallel()

	token, err := NewCodec(testSecret).Sign("alice", map[string]any{RoleClaim: RoleUser}, time.Minute)
	require.NoError(t, err)

	sub, err := ExtractSubject(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", sub)

	foreign, err := NewCodec([]byte("unknown")).Sign("bob", map[string]any{RoleClaim: RoleUser}, time.Minute)
	require.NoError(t, err)
	sub, err = ExtractSubject(foreign)
	require.NoError(t, err)
	assert.Equal(t, "bob", sub)

	_, err = ExtractSubject("garbage")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestFromBearer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{header: "Bearer abc", token: "abc", ok: true},
		{header: "", ok: false},
		{header: "Bearer ", ok: false},
		{header: "bearer abc", ok: false},
		{header: "Basic xyz", ok: false},
	}
	for _, tt := range tests {
		token, ok := FromBearer(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}

func TestSignatureAndExpiresAt(t *testing.T) {
	t.Parallel()

	now := time.Now()
	token, err := NewCodec(testSecret).WithClock(fixedClock(now)).
		Sign("alice", map[string]any{RoleClaim: RoleUser}, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, strings.Split(token, ".")[2], Signature(token))
	assert.Empty(t, Signature("a.b"))

	exp, err := ExpiresAt(token)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour).Unix(), exp.Unix())
}
