package http_utils

import (
	"net/http"
	"strings"
)

// ParseCookies is a helper function to parse multiple cookies from a string
func ParseCookies(cookieStr string) []*http.Cookie {
	cookies := []*http.Cookie{}
	parts := strings.Split(cookieStr, ";")
	for _, part := range parts {
		pair := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(pair) == 2 && pair[0] != "" {
			cookies = append(cookies, &http.Cookie{
				Name:  pair[0],
				Value: pair[1],
			})
		}
	}
	return cookies
}

// ParseSetCookies parses the Set-Cookie values of a response header map
func ParseSetCookies(headers map[string][]string) []*http.Cookie {
	header := http.Header{}
	for key, values := range headers {
		if strings.EqualFold(key, "Set-Cookie") {
			for _, value := range values {
				header.Add("Set-Cookie", value)
			}
		}
	}
	return (&http.Response{Header: header}).Cookies()
}

// JoinCookies is a helper function to join cookies into a string
func JoinCookies(cookies []*http.Cookie) string {
	cookieStrings := make([]string, 0, len(cookies))
	for _, cookie := range cookies {
		if cookie != nil {
			cookieStrings = append(cookieStrings, cookie.Name+"="+cookie.Value)
		}
	}
	return strings.Join(cookieStrings, "; ")
}

// CookieJar keeps the latest value per cookie name, preserving first-seen order.
// Cookies expired by the server (Max-Age < 0) are removed.
type CookieJar struct {
	order   []string
	ordered map[string]bool
	values  map[string]*http.Cookie
}

func NewCookieJar() *CookieJar {
	return &CookieJar{
		ordered: make(map[string]bool),
		values:  make(map[string]*http.Cookie),
	}
}

func (j *CookieJar) Set(cookies []*http.Cookie) {
	for _, cookie := range cookies {
		if cookie == nil || cookie.Name == "" {
			continue
		}
		if cookie.MaxAge < 0 {
			delete(j.values, cookie.Name)
			continue
		}
		if !j.ordered[cookie.Name] {
			j.ordered[cookie.Name] = true
			j.order = append(j.order, cookie.Name)
		}
		j.values[cookie.Name] = &http.Cookie{Name: cookie.Name, Value: cookie.Value}
	}
}

func (j *CookieJar) Cookies() []*http.Cookie {
	cookies := make([]*http.Cookie, 0, len(j.values))
	for _, name := range j.order {
		if cookie, ok := j.values[name]; ok {
			cookies = append(cookies, cookie)
		}
	}
	return cookies
}

func (j *CookieJar) Len() int {
	return len(j.values)
}
