package handler

import "net/http"

// HandleHealthz responds with a 200 OK and a JSON body naming the
// service, so probes can tell kodomo apart from whatever else answers
// on the port.
func HandleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "kodomo",
	})
}
