package discovery

import "github.com/pyneda/wsdlwizard/db"

// ObservedTransaction is a read-only view of a corpus entry
type ObservedTransaction struct {
	ID              uint   `json:"id"`
	URL             string `json:"url"`
	Method          string `json:"method"`
	StatusCode      int    `json:"status_code"`
	RawRequest      []byte `json:"-"`
	RawResponse     []byte `json:"-"`
	HasResponse     bool   `json:"has_response"`
	ConnectionClose bool   `json:"connection_close"`
}

func NewObservedTransaction(history *db.History) ObservedTransaction {
	return ObservedTransaction{
		ID:              history.ID,
		URL:             history.URL,
		Method:          history.Method,
		StatusCode:      history.StatusCode,
		RawRequest:      history.RawRequest,
		RawResponse:     history.RawResponse,
		HasResponse:     history.HasResponse(),
		ConnectionClose: history.ConnectionClose(),
	}
}

// Reliable reports whether the transaction is used during scanning: it has a
// response, did not ask for the connection to be closed and got a 200.
func (t ObservedTransaction) Reliable() bool {
	return t.HasResponse && !t.ConnectionClose && t.StatusCode == 200
}
