package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndVerifyPassword(t *testing.T) {
	var u User

	require.NoError(t, u.SetPassword("secret1"))
	assert.NotEqual(t, "secret1", u.Password, "stored hash must not equal the plaintext")
	assert.True(t, u.VerifyPassword("secret1"))
	assert.False(t, u.VerifyPassword("wrong"))
}

func TestSetPasswordTooShort(t *testing.T) {
	var u User

	err := u.SetPassword("short")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Empty(t, u.Password)
}

func TestVerifyPasswordWithoutHash(t *testing.T) {
	// Google-only accounts carry no hash and must never authenticate locally.
	var u User
	assert.False(t, u.VerifyPassword(""))
	assert.False(t, u.VerifyPassword("anything"))
}

func TestSetPasswordUnchangedDoesNotRehash(t *testing.T) {
	var u User
	require.NoError(t, u.SetPassword("secret1"))

	before := u.Password
	require.NoError(t, u.SetPassword("secret1"))
	assert.Equal(t, before, u.Password, "re-saving the same password must keep the stored hash")

	require.NoError(t, u.SetPassword("different1"))
	assert.NotEqual(t, before, u.Password)
}

func TestPasswordResetTokenSingleUse(t *testing.T) {
	var u User

	raw, err := u.CreatePasswordResetToken()
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	assert.NotEqual(t, raw, u.PasswordResetToken, "only the digest may be stored")

	require.NoError(t, u.ConsumePasswordResetToken(raw))
	assert.Empty(t, u.PasswordResetToken)
	assert.Nil(t, u.PasswordResetExpires)

	err = u.ConsumePasswordResetToken(raw)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestPasswordResetTokenExpired(t *testing.T) {
	var u User

	raw, err := u.CreatePasswordResetToken()
	require.NoError(t, err)

	past := time.Now().Add(-time.Minute)
	u.PasswordResetExpires = &past

	err = u.ConsumePasswordResetToken(raw)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestPasswordResetTokenWrongGuessKeepsPending(t *testing.T) {
	var u User

	raw, err := u.CreatePasswordResetToken()
	require.NoError(t, err)

	digest := u.PasswordResetToken
	err = u.ConsumePasswordResetToken("not-the-token")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
	assert.Equal(t, digest, u.PasswordResetToken, "a wrong guess must not invalidate the pending token")

	require.NoError(t, u.ConsumePasswordResetToken(raw))
}

func TestPasswordResetReissueInvalidatesPrevious(t *testing.T) {
	var u User

	t1, err := u.CreatePasswordResetToken()
	require.NoError(t, err)
	t2, err := u.CreatePasswordResetToken()
	require.NoError(t, err)
	require.NotEqual(t, t1, t2)

	assert.ErrorIs(t, u.ConsumePasswordResetToken(t1), ErrInvalidOrExpiredToken)
	assert.NoError(t, u.ConsumePasswordResetToken(t2))
}

func TestEmailVerificationToken(t *testing.T) {
	var u User

	raw, err := u.CreateEmailVerificationToken()
	require.NoError(t, err)
	require.NotNil(t, u.EmailVerificationExpires)
	assert.WithinDuration(t, time.Now().Add(EmailVerificationTTL), *u.EmailVerificationExpires, 5*time.Second)

	require.NoError(t, u.ConsumeEmailVerificationToken(raw))
	assert.True(t, u.IsEmailVerified)
	assert.Empty(t, u.EmailVerificationToken)

	assert.ErrorIs(t, u.ConsumeEmailVerificationToken(raw), ErrInvalidOrExpiredToken)
}

func TestTokenPurposesAreIndependent(t *testing.T) {
	var u User

	reset, err := u.CreatePasswordResetToken()
	require.NoError(t, err)
	verify, err := u.CreateEmailVerificationToken()
	require.NoError(t, err)

	// A token for one purpose never consumes the other.
	assert.ErrorIs(t, u.ConsumePasswordResetToken(verify), ErrInvalidOrExpiredToken)
	assert.ErrorIs(t, u.ConsumeEmailVerificationToken(reset), ErrInvalidOrExpiredToken)

	assert.NoError(t, u.ConsumePasswordResetToken(reset))
	assert.NoError(t, u.ConsumeEmailVerificationToken(verify))
}

func TestRecomputeStatsBadgeCount(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		var u User
		for i := 0; i < n; i++ {
			u.Badges = append(u.Badges, UserBadge{BadgeID: uint(i + 1), EarnedAt: time.Now()})
		}
		u.RecomputeStats()
		assert.Equal(t, n, u.Stats.BadgesEarned)
	}
}

func TestIsLeadership(t *testing.T) {
	cases := map[string]bool{
		RoleMember:     false,
		RoleLeader:     true,
		RoleAmbassador: true,
		RoleAdmin:      true,
		RoleSuperAdmin: true,
	}
	for role, want := range cases {
		u := User{Role: role}
		assert.Equal(t, want, u.IsLeadership(), role)
	}
}

func TestFullName(t *testing.T) {
	u := User{FirstName: "Ada", LastName: "Obi"}
	assert.Equal(t, "Ada Obi", u.FullName())
}
