package hash

import "testing"

func TestPassword_VerifyRoundTrip(t *testing.T) {
	digest, err := Password("Aa1aaaaa")
	if err != nil {
		t.Fatal(err)
	}
	if !Verify("Aa1aaaaa", digest) {
		t.Fatal("digest must verify original plaintext")
	}
	if Verify("other", digest) {
		t.Fatal("digest must not verify a different plaintext")
	}
}

func TestPassword_FreshSaltPerCall(t *testing.T) {
	d1, err := Password("Aa1aaaaa")
	if err != nil {
		t.Fatal(err)
	}
	d2, err := Password("Aa1aaaaa")
	if err != nil {
		t.Fatal(err)
	}
	if d1 == d2 {
		t.Fatal("two hashes of the same plaintext must differ")
	}
	if !Verify("Aa1aaaaa", d1) || !Verify("Aa1aaaaa", d2) {
		t.Fatal("both digests must verify")
	}
}

func TestVerify_MalformedDigest(t *testing.T) {
	if Verify("whatever", "not-an-argon2id-digest") {
		t.Fatal("malformed digest must not verify")
	}
}
