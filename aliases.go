package qs

// Loads is an alias for Decode, matching the reference library's naming.
func Loads(input string, opts ...DecodeOption) (*OrderedMap, error) {
	return Decode(input, opts...)
}

// Load is an alias for DecodeMap.
func Load(input map[string][]string, opts ...DecodeOption) (*OrderedMap, error) {
	return DecodeMap(input, opts...)
}

// Dumps is an alias for Encode, matching the reference library's naming.
func Dumps(value any, opts ...EncodeOption) (string, error) {
	return Encode(value, opts...)
}

// Dump is an alias for Encode, kept distinct from Dumps only for parity
// with the reference library's dump/dumps pairing; both behave identically
// in this port since there is no separate stream-writing form.
func Dump(value any, opts ...EncodeOption) (string, error) {
	return Encode(value, opts...)
}
