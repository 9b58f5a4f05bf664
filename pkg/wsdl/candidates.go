package wsdl

import (
	"strings"

	"github.com/pyneda/wsdlwizard/lib"
	"github.com/rs/zerolog/log"
)

// Add feeds one observed URL into the reducer. URLs already classified as
// WSDL, or already present in found, are ignored. Parameterized URLs
// (containing "=") contribute only scheme://host/path. It returns the
// candidate that was added, or an empty string when nothing was added.
func (c *CandidateSet) Add(rawURL string, found *FoundSet) string {
	if ClassifyURL(rawURL).IsWSDL {
		return ""
	}
	if found != nil && found.Contains(rawURL) {
		return ""
	}

	candidate := rawURL
	if strings.Contains(rawURL, "=") {
		stripped, err := lib.GetURLWithoutQueryString(rawURL)
		if err != nil {
			log.Debug().Err(err).Str("url", rawURL).Msg("Skipping url that could not be stripped of parameters")
			return ""
		}
		candidate = stripped
	}

	if c.add(candidate) {
		return candidate
	}
	return ""
}

// ReduceCandidates builds the candidate set for a sequence of observed URLs
func ReduceCandidates(urls []string, found *FoundSet) *CandidateSet {
	candidates := NewCandidateSet()
	for _, u := range urls {
		candidates.Add(u, found)
	}
	return candidates
}
