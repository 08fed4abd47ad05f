package domain

// Profile names a mailbox account and where to reach it. The secret
// store holds its credentials under SecretRef.
type Profile struct {
	Name      string
	Address   string
	BaseURL   string
	SecretRef string
}
