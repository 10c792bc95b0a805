package controllers

import (
	"net/http"

	"blogapi/app/services"
)

// TestingController exposes data reset for end-to-end test suites.
type TestingController struct {
	dataService *services.DataService
}

func NewTestingController(dataService *services.DataService) *TestingController {
	return &TestingController{dataService: dataService}
}

// DeleteAllData removes every blog and post
func (tc *TestingController) DeleteAllData(w http.ResponseWriter, r *http.Request) {
	if err := tc.dataService.ClearAll(r.Context()); err != nil {
		sendError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
