package errors

import "regexp"

// rootKeyRegex matches "action" and "Model.action" root keys.
var rootKeyRegex = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*\.)?[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateRootKey validates a root entry key.
//
// Keys take the form "action" or "Model.action"; both parts are identifiers.
// The check runs on graphs read from source documents and on keys received
// over HTTP, never inside the binary codec.
func ValidateRootKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidRootKey, "root key cannot be empty")
	}

	if len(key) > 256 {
		return New(ErrCodeInvalidRootKey, "root key too long (max 256 characters)")
	}

	if !rootKeyRegex.MatchString(key) {
		return New(ErrCodeInvalidRootKey, "invalid root key: %q", key)
	}

	return nil
}
