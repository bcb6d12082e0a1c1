// Package engine dispatches the fixed SET/GET/DEL/HSET/HGET/HDEL/
// RPUSH/LPUSH/LPOP/RPOP/BLPOP/SCAN command set onto a lib/keyspace
// Keyspace, translating its plain errors into the closed EngineError
// kind set that spec.md §7 promises callers.
package engine
