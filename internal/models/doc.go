// Package models maps the store tables onto Go types. Columns keep the names
// the desktop application has always used.
package models

//go:generate go run ../../tools/genregistry .
