package domain

// Storage keys under which a LoginResult is persisted.
const (
	StorageKeyToken  = "token"
	StorageKeyUserID = "userId"
	StorageKeyEmail  = "email"
	StorageKeyRole   = "role"
)

// LoginResult is returned by the login endpoint and stored verbatim.
type LoginResult struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// StorageItems returns the four fields keyed for client storage.
func (r LoginResult) StorageItems() map[string]string {
	return map[string]string{
		StorageKeyToken:  r.Token,
		StorageKeyUserID: r.UserID,
		StorageKeyEmail:  r.Email,
		StorageKeyRole:   r.Role,
	}
}

// LoginResultFromItems rebuilds a LoginResult from stored items.
// ok is false when no token is stored.
func LoginResultFromItems(items map[string]string) (LoginResult, bool) {
	token := items[StorageKeyToken]
	if token == "" {
		return LoginResult{}, false
	}
	return LoginResult{
		Token:  token,
		UserID: items[StorageKeyUserID],
		Email:  items[StorageKeyEmail],
		Role:   items[StorageKeyRole],
	}, true
}
