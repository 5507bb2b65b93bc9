package analysis

import (
	"errors"

	"visionboard/internal/vision"
)

// Categorize names an error's taxonomy bucket for log output. The category is
// the only user-visible signal that a result was substituted.
func Categorize(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, vision.ErrNoCredential):
		return "no_credential"
	case errors.Is(err, vision.ErrProviderAuth):
		return "provider_auth"
	case errors.Is(err, vision.ErrProviderBilling):
		return "provider_billing"
	case errors.Is(err, vision.ErrProviderUnavailable):
		return "provider_unavailable"
	case errors.Is(err, vision.ErrResponseParse):
		return "response_parse"
	case errors.Is(err, vision.ErrNetwork):
		return "network"
	default:
		return "internal"
	}
}
