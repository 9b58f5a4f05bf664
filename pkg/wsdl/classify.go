package wsdl

import "strings"

const (
	// QuerySuffix is appended to candidate URLs when probing
	QuerySuffix = "?wsdl"
	extension   = ".wsdl"
)

// Classification is the result of classifying a single URL
type Classification struct {
	IsWSDL     bool   `json:"is_wsdl"`
	Normalized string `json:"normalized"`
}

// NormalizeURL lower-cases the last four characters of rawURL, leaving the rest untouched.
// Only the extension casing is normalized, path casing elsewhere is significant.
func NormalizeURL(rawURL string) string {
	if len(rawURL) <= 4 {
		return strings.ToLower(rawURL)
	}
	cut := len(rawURL) - 4
	return rawURL[:cut] + strings.ToLower(rawURL[cut:])
}

// ClassifyURL reports whether rawURL already denotes a WSDL resource, using
// a plain substring test for "?wsdl" or ".wsdl" on the lower-cased URL.
func ClassifyURL(rawURL string) Classification {
	lower := strings.ToLower(rawURL)
	return Classification{
		IsWSDL:     strings.Contains(lower, QuerySuffix) || strings.Contains(lower, extension),
		Normalized: NormalizeURL(rawURL),
	}
}

// ProbeURL builds the URL probed for a candidate
func ProbeURL(candidate string) string {
	return candidate + QuerySuffix
}
