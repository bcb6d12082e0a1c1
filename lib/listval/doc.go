// Package listval implements the segmented list collection value:
// elements are held in a doubly-linked chain of small segments so that
// push/pop at either end stay O(1) while a full scan or index lookup
// stays O(n) without ever needing a single contiguous allocation.
package listval
