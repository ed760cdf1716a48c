package restapi

import (
	"encoding/json"
	"net/http"
)

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	setJSONResponseType(w)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		api.serverErrorResponse(w, r, err)
	}
}
