package entity

// Account is the aggregate root for the account domain.
// The id is assigned by the store and immutable once set; email is the
// natural key and unique across all accounts. Role may be absent on input
// (the store assigns the default role), but when present it must carry an
// id. The paired credential record never travels with the account.
type Account struct {
	AccountID int64  `json:"accountid,omitempty" validate:"omitempty,min=1"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Role      *Role  `json:"role,omitempty" validate:"omitempty"`
}

// Credential is the 1:1 companion of an Account holding the bcrypt hash.
// It is read and written only by the account lifecycle service.
type Credential struct {
	AccountID      int64
	HashedPassword string
}

// CredentialsInput is the email/password bundle presented at login.
// It is not an Account; the password here is raw, never stored.
type CredentialsInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=3"`
}
