package handler

import (
	"fmt"
	"net/http"
)

// Pages serves the minimal HTML entry points the route guard protects. The
// real UI lives elsewhere; these exist so page navigation has somewhere to
// land.
type Pages struct{}

// NewPages returns the page handler set.
func NewPages() *Pages { return &Pages{} }

func (p *Pages) Login(w http.ResponseWriter, r *http.Request) {
	writePage(w, "Sign in")
}

func (p *Pages) Dashboard(w http.ResponseWriter, r *http.Request) {
	writePage(w, "Dashboard")
}

func (p *Pages) Admin(w http.ResponseWriter, r *http.Request) {
	writePage(w, "Platform admin")
}

func (p *Pages) Home(w http.ResponseWriter, r *http.Request) {
	writePage(w, "Paperbase")
}

func writePage(w http.ResponseWriter, title string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!doctype html><title>%s</title><h1>%s</h1>", title, title)
}
