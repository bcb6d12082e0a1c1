// Package reclaim implements the lazy reclaimer: values expensive
// enough to free are hunted off the main goroutine and torn down by a
// background worker instead of blocking whichever command deleted
// them.
package reclaim
