package utils

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	controller := NewJWTToken(&Config{SigningKey: "test-signing-key"})

	token, err := controller.CreateToken(TokenObject{UserID: 42, Role: RoleAdmin})
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	got, err := controller.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if got.UserID != 42 || got.Role != RoleAdmin {
		t.Fatalf("claims mismatch: %+v", got)
	}
}

func TestTokenWrongKeyRejected(t *testing.T) {
	signer := NewJWTToken(&Config{SigningKey: "key-one"})
	verifier := NewJWTToken(&Config{SigningKey: "key-two"})

	token, err := signer.CreateToken(TokenObject{UserID: 1, Role: RoleUser})
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	if _, err := verifier.VerifyToken(token); err == nil {
		t.Fatal("token signed with a different key must not verify")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	controller := NewJWTToken(&Config{SigningKey: "test-signing-key"})

	if _, err := controller.VerifyToken("not.a.token"); err == nil {
		t.Fatal("garbage token must not verify")
	}
}

func TestHashRoundTrip(t *testing.T) {
	hash, err := GenerateHashValue("s3cret-passphrase")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret-passphrase" {
		t.Fatal("hash must not equal the original")
	}

	if err := VerifyHashValue("s3cret-passphrase", hash); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := VerifyHashValue("wrong", hash); err == nil {
		t.Fatal("wrong passphrase must not verify")
	}
}
