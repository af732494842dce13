// Package models defines the data structures shared by storage backends and
// the command surface.
package models

// Secret is a named Steam Guard shared secret.
type Secret struct {
	// Name is the user-chosen account label.
	Name string `json:"name"`
	// SharedSecret is the base64 shared secret exactly as entered.
	SharedSecret string `json:"shared_secret"`
}

// Document is the persisted form of the secret list.
type Document struct {
	Secrets []Secret `json:"secrets"`
}

// AccountCode is the current code of one stored secret.
type AccountCode struct {
	// Index is the position of the secret in the list.
	Index int `json:"index"`
	// Name is the account label.
	Name string `json:"name"`
	// Code is empty when Error is set.
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
	// Remaining is the number of seconds Code stays valid.
	Remaining uint64 `json:"remaining"`
}
