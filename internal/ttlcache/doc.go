// Package ttlcache fronts list fetches with an expiring key-value cache.
//
// Entries are stored as {"data": payload, "timestamp": epoch-ms} under keys
// of the form cache_{kind}_{id}. An entry older than the TTL (30 minutes by
// default) is a miss. Storage failures never reach the caller: a failed read
// is a miss and a failed write is dropped.
//
// Three stores are provided. MemoryStore is process-local and used in tests.
// FileStore keeps one JSON document guarded by a lock file. SQLiteStore is
// the default persistent store.
//
//	marquee cache list    # show entries with age and freshness
//	marquee cache clear   # remove all entries
package ttlcache
