package http_utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httputil"

	"github.com/pyneda/wsdlwizard/db"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// HistoryCreationOptions describes where a recorded transaction comes from
type HistoryCreationOptions struct {
	Source      string
	WorkspaceID uint
	Note        string
}

// BuildHistory converts a captured exchange into an unsaved history record
func BuildHistory(response *http.Response, responseData FullResponseData, requestDump []byte, options HistoryCreationOptions) *db.History {
	requestHeaders, err := json.Marshal(response.Request.Header)
	if err != nil {
		log.Error().Err(err).Msg("Error converting request headers to json")
	}
	responseHeaders, err := json.Marshal(response.Header)
	if err != nil {
		log.Error().Err(err).Msg("Error converting response headers to json")
	}
	if requestDump == nil {
		requestDump, _ = httputil.DumpRequestOut(response.Request, false)
	}

	record := &db.History{
		URL:                  response.Request.URL.String(),
		StatusCode:           response.StatusCode,
		RequestHeaders:       datatypes.JSON(requestHeaders),
		RequestContentLength: response.Request.ContentLength,
		RequestContentType:   response.Request.Header.Get("Content-Type"),
		ResponseHeaders:      datatypes.JSON(responseHeaders),
		ResponseBody:         responseData.Body,
		ResponseBodySize:     responseData.BodySize,
		ResponseContentType:  response.Header.Get("Content-Type"),
		Method:               response.Request.Method,
		Evaluated:            false,
		Source:               options.Source,
		Note:                 options.Note,
		RawRequest:           requestDump,
		RawResponse:          responseData.Raw,
	}
	if options.WorkspaceID > 0 {
		workspaceID := options.WorkspaceID
		record.WorkspaceID = &workspaceID
	}
	if responseData.Truncated && record.Note == "" {
		record.Note = "Response body was truncated"
	}
	return record
}

// ReadHttpResponseAndCreateHistory stores a response seen in transit, leaving its body readable for the caller
func ReadHttpResponseAndCreateHistory(response *http.Response, options HistoryCreationOptions) (*db.History, error) {
	if response == nil || response.Request == nil {
		return nil, errors.New("response has no associated request")
	}
	var bodyBytes []byte
	if response.Body != nil {
		var err error
		bodyBytes, err = io.ReadAll(response.Body)
		response.Body.Close()
		if err != nil {
			log.Error().Err(err).Msg("Error reading response body")
		}
		response.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	}

	headerDump, err := httputil.DumpResponse(response, false)
	if err != nil {
		log.Error().Err(err).Msg("Error dumping response")
	}
	raw := append(headerDump, bodyBytes...)

	var requestDump []byte
	if response.Request != nil {
		requestDump, _ = httputil.DumpRequest(response.Request, false)
	}

	record := BuildHistory(response, FullResponseData{
		Body:     bodyBytes,
		BodySize: len(bodyBytes),
		Raw:      raw,
		RawSize:  len(raw),
	}, requestDump, options)
	return db.Connection().CreateHistory(record)
}
