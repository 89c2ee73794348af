package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"francoggm/paygw-wallet/internal/app/external"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

type serviceCall struct {
	Index      int             `json:"index"`
	MethodName string          `json:"methodname"`
	Args       json.RawMessage `json:"args"`
}

type serviceResponse struct {
	Error     bool                `json:"error"`
	Data      any                 `json:"data,omitempty"`
	Exception *external.Exception `json:"exception,omitempty"`
}

// CallServices runs a batch of remote function calls. Responses are ordered
// in request order; the first failing call stops the batch.
func (h *Handlers) CallServices(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, []serviceResponse{invalidRequest("failed to read request")})
		return
	}

	var calls []serviceCall
	if err := sonic.Unmarshal(body, &calls); err != nil || len(calls) == 0 {
		h.writeJSON(w, http.StatusBadRequest, []serviceResponse{invalidRequest("invalid json in request")})
		return
	}

	responses := make([]serviceResponse, 0, len(calls))
	for _, call := range calls {
		data, err := h.services.CallAjax(r.Context(), call.MethodName, call.Args)
		if err != nil {
			exception := external.NewException(err)
			h.logger.Warn("Service call failed",
				zap.String("method", call.MethodName),
				zap.Int("index", call.Index),
				zap.String("error_code", exception.ErrorCode),
				zap.Error(err),
			)
			responses = append(responses, serviceResponse{Error: true, Exception: exception})
			break
		}

		responses = append(responses, serviceResponse{Error: false, Data: data})
	}

	h.writeJSON(w, http.StatusOK, responses)
}

func invalidRequest(message string) serviceResponse {
	return serviceResponse{
		Error:     true,
		Exception: &external.Exception{Message: message, ErrorCode: "invalidjson"},
	}
}
