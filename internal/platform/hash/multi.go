package hash

// MultiHasher hashes with its primary hasher and verifies with whichever
// hasher recognizes the stored format. Existing bcrypt hashes keep working
// after switching the primary to argon2, and the other way around.
type MultiHasher struct {
	primary Hasher
	all     []Hasher
}

var _ Hasher = (*MultiHasher)(nil)

func NewMultiHasher(primary Hasher, fallbacks ...Hasher) *MultiHasher {
	return &MultiHasher{
		primary: primary,
		all:     append([]Hasher{primary}, fallbacks...),
	}
}

func (m *MultiHasher) Hash(plain string) (string, error) {
	return m.primary.Hash(plain)
}

func (m *MultiHasher) Verify(plain, hashed string) (bool, error) {
	for _, h := range m.all {
		if r, ok := h.(recognizer); ok && r.Supports(hashed) {
			return h.Verify(plain, hashed)
		}
	}
	return false, ErrUnsupportedHash
}
