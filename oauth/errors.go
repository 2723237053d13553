package oauth

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ErrorAbsentCredential    = "ABSENT_CREDENTIAL"
	ErrorInvalidCredential   = "INVALID_CREDENTIAL"
	ErrorPersistenceFailure  = "PERSISTENCE_FAILURE"
	ErrorProviderUnavailable = "PROVIDER_UNAVAILABLE"
	ErrorNothingToPersist    = "NOTHING_TO_PERSIST"
	ErrorAuthorizationFailed = "AUTHORIZATION_FAILED"
)

// ErrAbsentCredential is returned by Load when the store holds no refresh token. It is
// the normal first-run condition and is recovered from by running Authorize.
var ErrAbsentCredential = goerrors.New("no refresh token in store", goerrors.CategoryNotFound).
	WithTextCode(ErrorAbsentCredential)

// ErrNothingToPersist is returned by Save and Persist when there is no credential to store.
var ErrNothingToPersist = goerrors.New("no credential to persist", goerrors.CategoryBadInput).
	WithTextCode(ErrorNothingToPersist)

// Kind returns the error code of a credential error, or "" for any other error.
func Kind(err error) string {
	var e *goerrors.Error
	if goerrors.As(err, &e) {
		return e.TextCode
	}

	return ""
}

// IsInvalidCredential returns true if the identity provider rejected the stored refresh token.
func IsInvalidCredential(err error) bool {
	return Kind(err) == ErrorInvalidCredential
}

// NeedsAuthorization returns true for errors that are only recovered from by running the
// interactive authorization flow again.
func NeedsAuthorization(err error) bool {
	switch Kind(err) {
	case ErrorAbsentCredential, ErrorInvalidCredential:
		return true
	}

	return errors.Is(err, ErrAbsentCredential)
}

func invalidCredential(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryAuth, "refresh token rejected by identity provider").
		WithTextCode(ErrorInvalidCredential)
}

func persistenceFailure(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, "credential store transaction failed").
		WithTextCode(ErrorPersistenceFailure)
}

func providerUnavailable(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryExternal, "identity provider unavailable").
		WithTextCode(ErrorProviderUnavailable)
}

func authorizationFailed(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryAuth, "authorization failed").
		WithTextCode(ErrorAuthorizationFailed)
}
