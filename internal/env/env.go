package env

import "errors"

var ErrKeyNotFound = errors.New("not found")

// Get returns the value of key as reported by f, or ErrKeyNotFound when it
// is empty.
func Get(key string, f func(key string) (val string)) (string, error) {
	v := f(key)
	if v == "" {
		return "", ErrKeyNotFound
	}

	return v, nil
}

// GetOr is Get with a fallback for optional settings.
func GetOr(key, fallback string, f func(key string) (val string)) string {
	v, err := Get(key, f)
	if err != nil {
		return fallback
	}
	return v
}
