package main

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/crypto/bcrypt"
)

const (
	passwordMinLen        = 10
	passwordMaxSimilarity = 0.7
)

var (
	errPasswordTooShort   = fmt.Errorf("password must contain at least %d characters", passwordMinLen)
	errPasswordNumeric    = errors.New("password cannot be entirely numeric")
	errPasswordComplexity = errors.New("password must contain at least 1 uppercase character, 1 lowercase character, 1 digit and 1 special character")
	errPasswordTooSimilar = errors.New("password is too similar to the username")
)

// checkPassword applies the admin password policy.
func checkPassword(uname, pwd string) error {
	if len([]rune(pwd)) < passwordMinLen {
		return errPasswordTooShort
	}
	if strings.IndexFunc(pwd, func(r rune) bool { return !unicode.IsDigit(r) }) == -1 {
		return errPasswordNumeric
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range pwd {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	if !(hasUpper && hasLower && hasDigit && hasSpecial) {
		return errPasswordComplexity
	}

	// no similarity with the username
	if uname != "" {
		u, p := strings.ToLower(uname), strings.ToLower(pwd)
		ratio := difflib.NewMatcher(strings.Split(u, ""), strings.Split(p, "")).QuickRatio()
		if ratio >= passwordMaxSimilarity || strings.Contains(p, u) {
			return errPasswordTooSimilar
		}
	}
	return nil
}

func (cli *commandLine) hashPassword(uname, pwd string) error {
	if err := checkPassword(uname, pwd); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, string(hash))
	return nil
}
