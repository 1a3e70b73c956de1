package helpers

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/authorizerdev/authorizer-go"
)

// Portal role names, mirrored in the ROLES env of the authorizer container.
const (
	RoleApplicant = "applicant"
	RoleOfficer   = "officer"
	RoleStaff     = "staff"
)

func randInt(max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64())
}

// GeneratePassword generates a 10 character password with a capital and special char
func GeneratePassword() string {
	const (
		lower   = "abcdefghijklmnopqrstuvwxyz"
		upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
		special = "!@#$%^&*"
		numbers = "0123456789"
		all     = lower + upper + special + numbers
	)

	password := make([]byte, 10)
	password[0] = upper[randInt(len(upper))]
	password[1] = special[randInt(len(special))]
	password[2] = numbers[randInt(len(numbers))]

	for i := 3; i < 10; i++ {
		password[i] = all[randInt(len(all))]
	}

	for i := range password {
		j := randInt(len(password))
		password[i], password[j] = password[j], password[i]
	}

	return string(password)
}

// AcquireSession signs up (or reuses) an account with the given roles and
// logs in. The returned access token doubles as the cookie_session value the
// portal's auth middleware validates.
func AcquireSession(t *testing.T, authzURL, email, password string, roles ...string) string {
	client, err := authorizer.NewAuthorizerClient("test_client", authzURL, "", nil)
	if err != nil {
		t.Fatalf("Failed to create authorizer client: %v", err)
	}

	rolesPtrs := make([]*string, len(roles))
	for i := range roles {
		rolesPtrs[i] = &roles[i]
	}

	signupReq := &authorizer.SignUpInput{
		Email:           &email,
		Password:        password,
		ConfirmPassword: password,
		Roles:           rolesPtrs,
	}
	if _, err = client.SignUp(signupReq); err != nil {
		// Account may already exist from an earlier subtest; login decides
		t.Logf("Signup failed (might already exist): %v", err)
	}

	loginReq := &authorizer.LoginInput{
		Email:    &email,
		Password: password,
	}
	res, err := client.Login(loginReq)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if res.AccessToken == nil {
		t.Fatal("Access token is nil")
	}

	return *res.AccessToken
}

// AcquireApplicantSession creates an applicant account session.
func AcquireApplicantSession(t *testing.T, authzURL, email, password string) string {
	return AcquireSession(t, authzURL, email, password, RoleApplicant)
}

// AcquireOfficerSession creates an officer account session.
func AcquireOfficerSession(t *testing.T, authzURL, email, password string) string {
	return AcquireSession(t, authzURL, email, password, RoleOfficer)
}

// AcquireStaffSession creates a staff account session. Staff carry the
// officer role too so they can use the review queue.
func AcquireStaffSession(t *testing.T, authzURL, email, password string) string {
	return AcquireSession(t, authzURL, email, password, RoleOfficer, RoleStaff)
}
