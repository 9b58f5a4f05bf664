package db

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/fatih/color"
	"github.com/pyneda/wsdlwizard/lib"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// History holds an observed request/response pair
type History struct {
	BaseModel
	StatusCode           int            `gorm:"index" json:"status_code"`
	URL                  string         `gorm:"index" json:"url"`
	Depth                int            `gorm:"index" json:"depth"`
	RequestHeaders       datatypes.JSON `json:"request_headers"`
	RequestBody          []byte         `json:"request_body"`
	RequestBodySize      int            `json:"request_body_size"`
	RequestContentLength int64          `json:"request_content_length"`
	ResponseHeaders      datatypes.JSON `json:"response_headers"`
	ResponseBody         []byte         `json:"response_body"`
	RequestContentType   string         `json:"request_content_type"`
	ResponseBodySize     int            `json:"response_body_size"`
	ResponseContentType  string         `json:"response_content_type"`
	RawRequest           []byte         `json:"raw_request"`
	RawResponse          []byte         `json:"raw_response"`
	Method               string         `gorm:"index" json:"method"`
	ParametersCount      int            `json:"parameters_count"`
	Evaluated            bool           `json:"evaluated"`
	Note                 string         `json:"note"`
	Source               string         `gorm:"index" json:"source"`
	WorkspaceID          *uint          `gorm:"index" json:"workspace_id"`
	Workspace            Workspace      `json:"-" yaml:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

const (
	SourceProxy      = "Proxy"
	SourceWSDLWizard = "WSDLWizard"
	SourceImport     = "Import"
)

func (h History) String() string {
	return fmt.Sprintf("ID: %d, Method: %s, URL: %s, Status: %d, Source: %s", h.ID, h.Method, h.URL, h.StatusCode, h.Source)
}

func (h History) Pretty() string {
	status := color.GreenString("%d", h.StatusCode)
	if h.StatusCode >= 400 || h.StatusCode == 0 {
		status = color.RedString("%d", h.StatusCode)
	}
	return fmt.Sprintf("%s %s %s %s", color.CyanString("#%d", h.ID), status, h.Method, h.URL)
}

func (h History) TableHeaders() []string {
	return []string{"ID", "Method", "URL", "Status", "Size", "Source", "Workspace"}
}

func (h History) TableRow() []string {
	return []string{
		fmt.Sprintf("%d", h.ID),
		h.Method,
		h.URL,
		fmt.Sprintf("%d", h.StatusCode),
		fmt.Sprintf("%d", h.ResponseBodySize),
		h.Source,
		formatUintPointer(h.WorkspaceID),
	}
}

func headersToMap(raw datatypes.JSON) (map[string][]string, error) {
	stringMap := make(map[string][]string)
	if len(raw) == 0 {
		return stringMap, nil
	}
	intermediateMap := make(map[string]interface{})
	if err := json.Unmarshal([]byte(raw), &intermediateMap); err != nil {
		return nil, err
	}

	for key, value := range intermediateMap {
		switch v := value.(type) {
		case []interface{}:
			for _, item := range v {
				switch itemStr := item.(type) {
				case string:
					stringMap[key] = append(stringMap[key], itemStr)
				default:
					log.Warn().Interface("value", itemStr).Msg("value not a string")
				}
			}
		case string:
			stringMap[key] = append(stringMap[key], v)
		default:
			log.Warn().Interface("value", v).Msg("value not a []string")
		}
	}
	return stringMap, nil
}

func (h *History) GetRequestHeadersAsMap() (map[string][]string, error) {
	return headersToMap(h.RequestHeaders)
}

func (h *History) GetResponseHeadersAsMap() (map[string][]string, error) {
	return headersToMap(h.ResponseHeaders)
}

// GetRequestHeader returns the first value of a request header, matching the name case-insensitively
func (h *History) GetRequestHeader(name string) string {
	headers, err := h.GetRequestHeadersAsMap()
	if err != nil {
		return ""
	}
	for key, values := range headers {
		if strings.EqualFold(key, name) && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// HasResponse reports whether a response was captured for this request
func (h *History) HasResponse() bool {
	return h.StatusCode > 0 || len(h.RawResponse) > 0
}

// ConnectionClose reports whether the request asked the server to close the connection
func (h *History) ConnectionClose() bool {
	if bytes.Contains(h.RawRequest, []byte("Connection: close")) {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(h.GetRequestHeader("Connection")), "close")
}

// HistoryFilter represents available history filters
type HistoryFilter struct {
	WorkspaceID uint
	StatusCodes []int
	Methods     []string
	Sources     []string
	URLPrefix   string
	SortAsc     bool
	Pagination  Pagination
	AllRecords  bool
}

// ListHistory Lists history
func (d *DatabaseConnection) ListHistory(filter HistoryFilter) (items []*History, count int64, err error) {
	query := d.db.Model(&History{})

	if filter.WorkspaceID > 0 {
		query = query.Where("workspace_id = ?", filter.WorkspaceID)
	}
	if len(filter.StatusCodes) > 0 {
		query = query.Where("status_code IN ?", filter.StatusCodes)
	}
	if len(filter.Methods) > 0 {
		query = query.Where("method IN ?", filter.Methods)
	}
	if len(filter.Sources) > 0 {
		query = query.Where("source IN ?", filter.Sources)
	}
	if filter.URLPrefix != "" {
		query = query.Where("url LIKE ?", filter.URLPrefix+"%")
	}

	if err = query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	order := "id desc"
	if filter.SortAsc {
		order = "id asc"
	}
	query = query.Order(order)
	if !filter.AllRecords {
		query = query.Scopes(Paginate(&filter.Pagination))
	}
	err = query.Find(&items).Error

	log.Debug().Interface("filters", filter).Int("gathered", len(items)).Int64("count", count).Msg("Getting history items")
	return items, count, err
}

// ListHistoryForOrigin returns every transaction whose URL belongs to scheme://host[:port]
func (d *DatabaseConnection) ListHistoryForOrigin(workspaceID uint, origin string) ([]*History, error) {
	originURL, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("invalid origin %q: %w", origin, err)
	}
	prefix := originURL.Scheme + "://" + lib.BracketHost(originURL.Hostname())
	items, _, err := d.ListHistory(HistoryFilter{
		WorkspaceID: workspaceID,
		URLPrefix:   prefix,
		SortAsc:     true,
		AllRecords:  true,
	})
	if err != nil {
		return nil, err
	}

	matching := make([]*History, 0, len(items))
	for _, item := range items {
		if sameOrigin(originURL, item.URL) {
			matching = append(matching, item)
		}
	}
	return matching, nil
}

func sameOrigin(origin *url.URL, raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Scheme, origin.Scheme) &&
		strings.EqualFold(u.Hostname(), origin.Hostname()) &&
		effectivePort(u) == effectivePort(origin)
}

func effectivePort(u *url.URL) string {
	if port := u.Port(); port != "" {
		return port
	}
	switch strings.ToLower(u.Scheme) {
	case "https":
		return "443"
	case "http":
		return "80"
	}
	return ""
}

// CreateHistory saves an history item to the database
func (d *DatabaseConnection) CreateHistory(record *History) (*History, error) {
	record.ID = 0
	enhanceHistoryItem(record)
	result := d.db.Create(record)
	if result.Error != nil {
		log.Error().Err(result.Error).Str("url", record.URL).Msg("Failed to create web history record")
	}
	return record, result.Error
}

// GetHistory get a single history record by ID
func (d *DatabaseConnection) GetHistory(id uint) (*History, error) {
	var history History
	if err := d.db.First(&history, id).Error; err != nil {
		return nil, err
	}
	return &history, nil
}
