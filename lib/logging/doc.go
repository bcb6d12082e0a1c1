// Package logging is the module's single logger factory: every core
// component asks it for a named, leveled logger backed by
// go.uber.org/zap.
package logging
