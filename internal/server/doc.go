// Package server wires the HTTP surface: route registration, session
// resolution, request validation, and the JSON envelopes handlers respond
// with. Handlers stay thin; all orchestration lives in the app layer.
package server
