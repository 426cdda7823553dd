package models

import (
	"time"

	"amthub/internal/utils"
)

// Roles, ordered from least to most privileged.
const (
	RoleMember     = "Member"
	RoleLeader     = "Leader"
	RoleAmbassador = "Ambassador"
	RoleAdmin      = "Admin"
	RoleSuperAdmin = "Super Admin"
)

// LeadershipRoles are the roles surfaced by the leaders directory.
var LeadershipRoles = []string{RoleLeader, RoleAmbassador, RoleAdmin, RoleSuperAdmin}

// Auth providers
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// Token lifetimes per purpose.
const (
	PasswordResetTTL     = 10 * time.Minute
	EmailVerificationTTL = 24 * time.Hour
)

type Preferences struct {
	EmailNotifications   bool   `gorm:"default:true" json:"email_notifications"`
	PushNotifications    bool   `gorm:"default:true" json:"push_notifications"`
	DesktopNotifications bool   `gorm:"default:true" json:"desktop_notifications"`
	TwoFactorAuth        bool   `gorm:"default:false" json:"two_factor_auth"`
	Language             string `gorm:"size:30;default:'English'" json:"language"`
}

// Stats are denormalized projections, never sources of truth.
type Stats struct {
	EventsAttended    int `gorm:"default:0" json:"events_attended"`
	BadgesEarned      int `gorm:"default:0" json:"badges_earned"`
	ContributionScore int `gorm:"default:0" json:"contribution_score"`
}

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"size:50;not null" json:"first_name"`
	LastName  string `gorm:"size:50;not null" json:"last_name"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `gorm:"size:100" json:"-"` // bcrypt hash, empty for google-only accounts

	Avatar         string `gorm:"default:''" json:"avatar"`
	Bio            string `gorm:"size:500" json:"bio"`
	Country        string `gorm:"index:idx_users_location" json:"country"`
	City           string `gorm:"index:idx_users_location" json:"city"`
	Profession     string `gorm:"size:100" json:"profession"`
	Institution    string `gorm:"size:100" json:"institution"`
	Specialization string `gorm:"size:100" json:"specialization"`
	LinkedIn       string `gorm:"default:''" json:"linked_in"`
	Twitter        string `gorm:"default:''" json:"twitter"`

	Role      string      `gorm:"size:20;default:'Member';not null;index" json:"role"`
	ChapterID *uint       `gorm:"index" json:"chapter_id"`
	Chapter   *Chapter    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"chapter,omitempty"`
	Badges    []UserBadge `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"badges,omitempty"`

	AuthProvider    string `gorm:"size:10;default:'local'" json:"auth_provider"`
	GoogleID        string `gorm:"index" json:"-"`
	IsEmailVerified bool   `gorm:"default:false" json:"is_email_verified"`

	// Token digests, one pending token per purpose. Raw tokens are never stored.
	EmailVerificationToken   string     `gorm:"size:64" json:"-"`
	EmailVerificationExpires *time.Time `json:"-"`
	PasswordResetToken       string     `gorm:"size:64" json:"-"`
	PasswordResetExpires     *time.Time `json:"-"`

	IsActive   bool      `gorm:"default:true;index" json:"is_active"`
	JoinedAt   time.Time `json:"joined_at"`
	LastActive time.Time `json:"last_active"`

	Preferences Preferences `gorm:"embedded;embeddedPrefix:pref_" json:"preferences"`
	Stats       Stats       `gorm:"embedded;embeddedPrefix:stat_" json:"stats"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserBadge is one entry of the append-only badge ledger.
type UserBadge struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;index:idx_user_badge,unique" json:"user_id"`
	BadgeID  uint      `gorm:"not null;index:idx_user_badge,unique" json:"badge_id"`
	Badge    Badge     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"badge"`
	EarnedAt time.Time `json:"earned_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// SetPassword validates and hashes a new plaintext password. Re-saving a
// password that already matches the stored hash leaves the hash untouched,
// so an unchanged credential is never re-hashed.
func (u *User) SetPassword(plain string) error {
	if len(plain) < 6 {
		return NewValidationError("password", "password must be at least 6 characters")
	}
	if u.Password != "" && utils.CheckPasswordHash(plain, u.Password) {
		return nil
	}
	hash, err := utils.HashPassword(plain)
	if err != nil {
		return err
	}
	u.Password = hash
	return nil
}

// VerifyPassword reports whether the candidate matches the stored hash.
// Accounts without a stored hash (google-only) always fail verification.
func (u *User) VerifyPassword(candidate string) bool {
	if u.Password == "" {
		return false
	}
	return utils.CheckPasswordHash(candidate, u.Password)
}

// CreatePasswordResetToken issues a fresh reset token, overwriting any pending
// one, and returns the raw token for out-of-band delivery. Only the sha256
// digest and the expiry are kept on the record.
func (u *User) CreatePasswordResetToken() (string, error) {
	raw, err := utils.GenerateToken()
	if err != nil {
		return "", err
	}
	expires := time.Now().Add(PasswordResetTTL)
	u.PasswordResetToken = utils.HashToken(raw)
	u.PasswordResetExpires = &expires
	return raw, nil
}

// CreateEmailVerificationToken issues a fresh verification token, overwriting
// any pending one, and returns the raw token.
func (u *User) CreateEmailVerificationToken() (string, error) {
	raw, err := utils.GenerateToken()
	if err != nil {
		return "", err
	}
	expires := time.Now().Add(EmailVerificationTTL)
	u.EmailVerificationToken = utils.HashToken(raw)
	u.EmailVerificationExpires = &expires
	return raw, nil
}

// ConsumePasswordResetToken validates the candidate against the stored digest
// and expiry. On success the pending token is cleared (single use); a wrong
// guess leaves a differing stored token untouched.
func (u *User) ConsumePasswordResetToken(raw string) error {
	if u.PasswordResetToken == "" || u.PasswordResetExpires == nil {
		return ErrInvalidOrExpiredToken
	}
	if utils.HashToken(raw) != u.PasswordResetToken || time.Now().After(*u.PasswordResetExpires) {
		return ErrInvalidOrExpiredToken
	}
	u.PasswordResetToken = ""
	u.PasswordResetExpires = nil
	return nil
}

// ConsumeEmailVerificationToken validates and clears the pending verification
// token, marking the email verified on success.
func (u *User) ConsumeEmailVerificationToken(raw string) error {
	if u.EmailVerificationToken == "" || u.EmailVerificationExpires == nil {
		return ErrInvalidOrExpiredToken
	}
	if utils.HashToken(raw) != u.EmailVerificationToken || time.Now().After(*u.EmailVerificationExpires) {
		return ErrInvalidOrExpiredToken
	}
	u.EmailVerificationToken = ""
	u.EmailVerificationExpires = nil
	u.IsEmailVerified = true
	return nil
}

// RecomputeStats refreshes counters derived from loaded associations.
// BadgesEarned must equal the ledger length after every mutation.
func (u *User) RecomputeStats() {
	u.Stats.BadgesEarned = len(u.Badges)
}

// IsLeadership reports whether the role grants listing in the leaders directory.
func (u *User) IsLeadership() bool {
	for _, r := range LeadershipRoles {
		if u.Role == r {
			return true
		}
	}
	return false
}
