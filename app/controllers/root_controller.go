package controllers

import "net/http"

// RootController serves the API index.
type RootController struct {
	endpoints map[string]string
}

// NewRootController creates a RootController listing endpoints by name.
func NewRootController(endpoints map[string]string) *RootController {
	return &RootController{endpoints: endpoints}
}

// Index returns the name -> path map of the listable endpoints.
func (rc *RootController) Index(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, rc.endpoints)
}
