package model

import "time"

// AdminUser represents an administrator account as stored in the
// `admin_users` table.  Only admins can manage guests and the event
// document; there are no other roles.
//
// Fields:
//  ID           – primary key identifier.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password.
//  IsActive     – whether the account may log in.
//  CreatedAt    – timestamp of creation.
type AdminUser struct {
    ID           uint64    // admin_users.id
    Username     string    // admin_users.username
    PasswordHash string    // admin_users.password_hash
    IsActive     bool      // admin_users.is_active
    CreatedAt    time.Time // admin_users.created_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to an admin and contains metadata for expiry
// and revocation.  The plain token is not stored; only its SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  AdminID   – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    AdminID   uint64     // refresh_tokens.admin_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}
