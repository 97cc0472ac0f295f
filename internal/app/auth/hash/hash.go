package hash

import "github.com/alexedwards/argon2id"

// Params pin the argon2id work factor. Fixed for every digest the process
// produces, but kept as a variable so deployments can tune cost.
var Params = &argon2id.Params{
	Memory:      64 * 1024, // 64 MiB
	Iterations:  2,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

// Password hashes plaintext with a fresh random salt. Two calls on the same
// plaintext yield different digests; both verify.
func Password(plaintext string) (string, error) {
	return argon2id.CreateHash(plaintext, Params)
}

// Verify reports whether plaintext reproduces digest. A malformed digest is
// not an error, it simply does not verify.
func Verify(plaintext, digest string) bool {
	ok, err := argon2id.ComparePasswordAndHash(plaintext, digest)
	if err != nil {
		return false
	}
	return ok
}
