package config

const (
	// MaxSessionTitleLength is the maximum length, in characters, of a generated session title.
	MaxSessionTitleLength = 30

	// MaxQueryLength bounds a single chat message. The whole history is replayed
	// to the model on every turn, so very long messages get expensive fast.
	MaxQueryLength = 8000

	// MaxClinicalTextLength bounds the text sent to the analysis endpoint.
	MaxClinicalTextLength = 8000

	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength = 8

	// MaxPasswordLength matches bcrypt's 72 byte input limit.
	MaxPasswordLength = 72

	// MaxEmailLength follows RFC 5321 path limits.
	MaxEmailLength = 254
)
