package walletprobe

import (
	"time"

	"walletprobe/wallet"
)

// Session holds the authenticated state of one probe user. The caller owns
// the session and passes it explicitly to every operation; nothing is cached
// globally.
type Session struct {
	Auth   wallet.AuthSession
	User   wallet.User
	Info   wallet.UserInfo
	Wallet *wallet.Wallet

	refreshedAt time.Time
}

// Token returns the bearer token of the session.
func (s *Session) Token() string {
	return s.Auth.Token
}

// WalletID returns the wallet identifier of the session's user.
func (s *Session) WalletID() string {
	return s.Info.WalletID
}

// Expired reports whether the auth token has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return s.Auth.Expired(now)
}

// RefreshedAt returns when the wallet snapshot was last fetched.
func (s *Session) RefreshedAt() time.Time {
	return s.refreshedAt
}
