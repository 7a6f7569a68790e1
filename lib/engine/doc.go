// Package engine is a small in-memory store that answers commands with the
// native reply shapes of package reply.
//
// It backs the interactive shell and the query server when no external
// store is configured, and it is the store used by the end-to-end tests of
// the dispatcher. It is not meant to replace a real redis server: there is no
// persistence, no expiry and no blocking (BLPOP and BZPOPMAX return nil
// immediately when all keys are empty).
//
// Data Types:
//
//   - strings, hashes, lists and sorted sets
//   - geo sets, stored as sorted sets scored by a 52 bit geohash
//   - streams with consumer groups (XADD, XRANGE, XREAD, XREADGROUP, XINFO)
//
// Server State:
//
//	CONFIG GET/SET work on a fixed parameter table, MODULE LIST reports the
//	modules passed via WithModules and the ACL commands manage users with
//	sha256 hashed passwords. Failed AUTH attempts are recorded in the ACL log,
//	equal failures within one minute are merged into one entry.
//
// Thread Safety:
//
//	The keyspace is an xsync.MapOf. Writes run inside MapOf.Compute and hold
//	the object lock, reads load the object and hold its read lock. Every
//	method of Engine is safe for concurrent use.
package engine
