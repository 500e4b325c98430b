// Package server exposes synthdom rendering over HTTP.
//
// Routes:
//
//	POST /render   render a JSON or YAML tree document to markup
//	GET  /healthz  liveness check
//	GET  /metrics  Prometheus metrics (when a Gatherer is configured)
//
// The request body of /render is a tree document as read by the treefile
// package. Content-Type selects JSON or YAML. Query parameters:
//
//	xhtml=true     close self-closing elements with "/>"
//	document=true  prefix the configured doctype
//
// Malformed documents are answered with 400 and the error as JSON.
//
// The router is chi, so the handler can be mounted in an existing chi
// application:
//
//	r := chi.NewRouter()
//	r.Mount("/synthdom", server.New(cfg, render.RendererConfig{}).Handler())
package server
