package apperr

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WriteError is the response boundary for failures: every error, whatever
// component raised it, leaves the process as {success:false, message} with
// the status its kind maps to.
func WriteError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(KindOf(err).Status())
	json.NewEncoder(w).Encode(errorBody{Success: false, Message: Message(err)})
}
