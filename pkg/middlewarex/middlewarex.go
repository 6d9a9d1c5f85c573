// Package middlewarex holds the HTTP middlewares shared by the API servers.
package middlewarex

import "buyback/pkg/contextx"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals
