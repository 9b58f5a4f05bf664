package db

import (
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// enhanceHistoryItem fills derived fields and drops response bodies the configuration asks to ignore
func enhanceHistoryItem(record *History) {
	ignoredExtensions := viper.GetStringSlice("history.responses.ignored.extensions")
	ignoredContentTypes := viper.GetStringSlice("history.responses.ignored.content_types")
	maxSize := viper.GetInt("history.responses.ignored.max_size")

	if record.RequestBodySize == 0 {
		record.RequestBodySize = len(record.RequestBody)
	}
	if record.ResponseBodySize == 0 {
		record.ResponseBodySize = len(record.ResponseBody)
	}

	if parsedURL, err := url.Parse(record.URL); err != nil {
		log.Error().Str("url", record.URL).Err(err).Msg("Error parsing URL")
	} else {
		if record.ParametersCount == 0 {
			record.ParametersCount = len(parsedURL.Query())
		}
		if record.Depth == 0 {
			record.Depth = urlDepth(parsedURL.Path)
		}
	}

	for _, extension := range ignoredExtensions {
		if strings.HasSuffix(strings.ToLower(record.URL), extension) {
			record.ResponseBody = []byte("")
			record.Note = "Response body was removed due to ignored file extension: " + extension
			log.Debug().Str("url", record.URL).Msg("Response body was removed due to ignored file extension")
			return
		}
	}

	for _, contentType := range ignoredContentTypes {
		if record.ResponseContentType != "" && strings.Contains(record.ResponseContentType, contentType) {
			record.ResponseBody = []byte("")
			record.Note = "Response body was removed due to ignored content type: " + contentType
			log.Debug().Str("url", record.URL).Msg("Response body was removed due to ignored content type")
			return
		}
	}

	if maxSize > 0 && record.ResponseBodySize > maxSize {
		log.Debug().Str("url", record.URL).Int("size", record.ResponseBodySize).Msg("Response body was removed due to exceeding max size limit.")
		record.ResponseBody = []byte("")
		record.Note = "Response body was removed due to exceeding max size limit."
	}
}

func urlDepth(path string) int {
	depth := 0
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			depth++
		}
	}
	return depth
}
