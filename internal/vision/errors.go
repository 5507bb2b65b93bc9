package vision

import "errors"

// Failure taxonomy shared by the provider clients and the fallback analyzer.
// Every one of these is consumed internally and converted into a fallback
// substitution; none propagate past the analyzer.
var (
	// ErrNoCredential means no usable provider key is configured. Expected,
	// not exceptional.
	ErrNoCredential = errors.New("no provider credential configured")
	// ErrProviderAuth means the provider rejected the credential.
	ErrProviderAuth = errors.New("provider rejected credential")
	// ErrProviderBilling means quota or balance is exhausted.
	ErrProviderBilling = errors.New("provider quota or balance exhausted")
	// ErrProviderUnavailable means a named model variant is not served.
	ErrProviderUnavailable = errors.New("provider model unavailable")
	// ErrNetwork marks a transport-level failure.
	ErrNetwork = errors.New("provider transport failure")
)

// Terminal reports whether an error must stop a model-variant cascade:
// credential-class failures never improve with another variant.
func Terminal(err error) bool {
	return errors.Is(err, ErrProviderAuth) || errors.Is(err, ErrProviderBilling)
}
