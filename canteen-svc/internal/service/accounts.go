package service

// AccountStore keeps plain-text credentials keyed by login id.
type AccountStore struct {
	accounts map[string]string
}

func NewAccountStore() *AccountStore {
	return &AccountStore{accounts: make(map[string]string)}
}

// Register overwrites the password of an existing login id without complaint.
func (s *AccountStore) Register(loginID, password string) {
	s.accounts[loginID] = password
}

func (s *AccountStore) Authenticate(loginID, password string) bool {
	stored, ok := s.accounts[loginID]
	return ok && stored == password
}

func (s *AccountStore) Snapshot() map[string]string {
	out := make(map[string]string, len(s.accounts))
	for k, v := range s.accounts {
		out[k] = v
	}
	return out
}
