package wsdl

import "bytes"

// DefaultMessageLimit is the number of leading bytes inspected in a response
const DefaultMessageLimit = 1024

// Keywords are checked in order; the namespace declarations usually appear first.
var Keywords = [][]byte{
	[]byte("xmlns:soap"),
	[]byte("xmlns:wsoap"),
	[]byte("xmlns:wsdl"),
	[]byte("<wsdl:"),
	[]byte("<soap:"),
}

// MatchedKeyword returns the first keyword found within the first limit bytes of payload.
// A limit of zero or less falls back to DefaultMessageLimit.
func MatchedKeyword(payload []byte, limit int) (string, bool) {
	if limit <= 0 {
		limit = DefaultMessageLimit
	}
	if len(payload) > limit {
		payload = payload[:limit]
	}
	for _, keyword := range Keywords {
		if bytes.Contains(payload, keyword) {
			return string(keyword), true
		}
	}
	return "", false
}

// LooksLikeWSDL reports whether payload looks like a WSDL or SOAP definition
func LooksLikeWSDL(payload []byte, limit int) bool {
	_, ok := MatchedKeyword(payload, limit)
	return ok
}
