package odoo

import (
	"bytes"
	"encoding/json"
	"strconv"
)

const (
	jsonRPCVersion = "2.0"
	rpcMethodCall  = "call"
)

// Endpoint paths on the backend.
const (
	PathAuthenticate   = "/web/session/authenticate"
	PathDestroySession = "/web/session/destroy"
	PathSessionInfo    = "/web/session/get_session_info"
)

// rpcRequest is the JSON-RPC envelope sent on every call.
type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	ID      int64  `json:"id"`
}

// rpcResponse is the envelope the backend answers with.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

// RPCError is the error object of a JSON-RPC response.
type RPCError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Data    RPCErrorData `json:"data"`
}

// RPCErrorData carries the backend's exception details.
type RPCErrorData struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Debug   string `json:"debug"`
}

// authenticateParams is the params object for /web/session/authenticate.
type authenticateParams struct {
	DB       string `json:"db"`
	Login    string `json:"login"`
	Password string `json:"password"`
}

// readParams is the model/method/args/kwargs params object for record reads.
type readParams struct {
	Model  string         `json:"model"`
	Method string         `json:"method"`
	Args   []any          `json:"args"`
	Kwargs map[string]any `json:"kwargs"`
}

// authenticateResult holds the fields of the authenticate result the client reads.
type authenticateResult struct {
	UID       flexInt `json:"uid"`
	SessionID string  `json:"session_id"`
	CompanyID flexInt `json:"company_id"`
	Name      string  `json:"name"`
	Username  string  `json:"username"`
}

// flexInt decodes backend integers that may be sent as a number, a numeric
// string, false or null. Anything that is not a number decodes to zero.
type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) || bytes.Equal(b, []byte("false")) {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexInt(n)
		return nil
	}
	if b[0] == '[' {
		// many2one values arrive as [id, "display name"]
		var pair []json.RawMessage
		if err := json.Unmarshal(b, &pair); err != nil {
			return err
		}
		if len(pair) == 0 {
			*f = 0
			return nil
		}
		return f.UnmarshalJSON(pair[0])
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		*f = 0
		return nil
	}
	v, err := n.Int64()
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexInt(v)
	return nil
}
