//go:build tools

// Package tools pins the lint and formatting binaries used on pmctl to the
// versions recorded in go.mod.
package tools

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "mvdan.cc/gofumpt"
)
