// Package enginetest provides a table-driven test suite that runs
// the same set of behavioral checks against multiple construction
// options of lib/dict, lib/hashval and lib/listval. A component gets
// one RunXxxTests(t, name, factory) entry point per value type; the
// factory is called once per subtest so options like small-encoding
// thresholds or table sizes can be varied by the caller without
// duplicating the test bodies themselves.
package enginetest
