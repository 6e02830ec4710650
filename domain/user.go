package domain

// TokenPair is the access/refresh credential pair issued on login,
// registration verification, and password-reset confirmation. Both are
// opaque bearer strings; the access token is replaced in place on
// refresh.
type TokenPair struct {
	Access  string
	Refresh string
}

func (t TokenPair) IsZero() bool {
	return t.Access == "" && t.Refresh == ""
}

type Profile struct {
	Name    string
	Email   string
	Phone   string
	Address string
}
