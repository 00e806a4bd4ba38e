package authutil

import "testing"

func TestCredentialsValidate(t *testing.T) {
	tests := []struct {
		name    string
		creds   Credentials
		wantErr bool
	}{
		{"username and password", Credentials{Username: "admin", Password: "s3cret"}, false},
		{"username and hash", Credentials{Username: "admin", PasswordHash: "$2a$12$abcdefghijklmnopqrstuv"}, false},
		{"missing username", Credentials{Password: "s3cret"}, true},
		{"missing password and hash", Credentials{Username: "admin"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCredentialsVerifyPlain(t *testing.T) {
	creds := Credentials{Username: "admin", Password: "s3cret"}

	if !creds.Verify("admin", "s3cret") {
		t.Fatal("correct credentials rejected")
	}
	if creds.Verify("admin", "wrong") {
		t.Fatal("wrong password accepted")
	}
	if creds.Verify("other", "s3cret") {
		t.Fatal("wrong username accepted")
	}
}

func TestCredentialsVerifyHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatal(err)
	}

	// The hash wins even when a plain password is also set.
	creds := Credentials{Username: "admin", Password: "ignored", PasswordHash: hash}

	if !creds.Verify("admin", "s3cret") {
		t.Fatal("correct credentials rejected against hash")
	}
	if creds.Verify("admin", "ignored") {
		t.Fatal("plain password accepted when hash is configured")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPassword("correct horse", hash) {
		t.Fatal("matching password rejected")
	}
	if CheckPassword("battery staple", hash) {
		t.Fatal("non-matching password accepted")
	}
	if CheckPassword("correct horse", "not-a-hash") {
		t.Fatal("malformed hash accepted")
	}
}
