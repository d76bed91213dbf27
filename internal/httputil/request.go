package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/schema"
)

// maxBodyBytes limits request bodies
const maxBodyBytes = 1 << 20

// formDecoder is safe for concurrent use and caches struct metadata
var formDecoder = newFormDecoder()

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	// OAuth2 password forms carry grant_type, scope, client_id we don't use
	d.IgnoreUnknownKeys(true)
	return d
}

// ParseJSON decodes JSON from the request body into the given destination.
// It limits the request body size to prevent abuse and provides clear error messages.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}

// ParseForm decodes an application/x-www-form-urlencoded body into dest
// using `schema` struct tags.
func ParseForm(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("invalid form: %w", err)
	}
	if err := formDecoder.Decode(dest, r.PostForm); err != nil {
		return fmt.Errorf("invalid form: %w", err)
	}
	return nil
}

// ParseQuery decodes URL query parameters into dest using `schema` struct tags.
func ParseQuery(r *http.Request, dest interface{}) error {
	if err := formDecoder.Decode(dest, r.URL.Query()); err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}
	return nil
}
