package api

import (
	"encoding/json"

	"github.com/clubaccess/zkauth-node/types"
)

// zkpLoginReq is the login request body. ZKPCode is kept raw because it is
// either a JSON string with the textual proof encoding or an
// already-structured proof object; the parser dispatches on its form.
type zkpLoginReq struct {
	ZKPCode json.RawMessage `json:"zkpCode"`
}

// loginResp is the successful login response body
type loginResp struct {
	Token   string           `json:"token"`
	User    types.PublicUser `json:"user"`
	Address string           `json:"address"`
	TxHash  string           `json:"txHash,omitempty"`
}

// errorMsg is the failure response body
type errorMsg struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// healthResp is the health endpoint response body
type healthResp struct {
	Status string `json:"status"`
	Club   string `json:"club"`
}
