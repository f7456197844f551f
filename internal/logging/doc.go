// Package logging builds configured zap loggers for the client and for
// applications embedding it via the config package.
package logging
