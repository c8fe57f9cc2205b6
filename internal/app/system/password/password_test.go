package password

import "testing"

func TestHashVerify(t *testing.T) {
	hash, err := Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal plaintext")
	}
	if !Verify(hash, "s3cret-pass") {
		t.Error("expected correct password to verify")
	}
	if Verify(hash, "wrong-pass") {
		t.Error("expected wrong password to fail")
	}
}

func TestVerify_GarbageHash(t *testing.T) {
	if Verify("not-a-bcrypt-hash", "anything") {
		t.Error("expected garbage hash to fail verification")
	}
}
