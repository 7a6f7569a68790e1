// Package query turns free-form command lines into typed queries.
//
// A command line such as "cluster nodes" or "ZRANGE board 0 -1 WITHSCORES" is
// split on whitespace and resolved against a Vocabulary:
//
//   - Verb: the first token, matched case-insensitively against the closed set
//     of store commands (GET, HSET, CLUSTER, ...).
//
//   - SubVerb: some verbs (ACL, CLIENT, CLUSTER, CONFIG, MEMORY, MODULE, OBJECT,
//     PUBSUB, SCRIPT, SLOWLOG, XGROUP, XINFO) overload one command with disjoint
//     sub-commands. For these the second token must be a known sub-verb. For all
//     other verbs the second token is a plain parameter, even if it happens to
//     spell a sub-verb.
//
//   - Params: every remaining token, in order and with its case preserved.
//
// Normalization is a single pass that fails on the first invalid token with an
// *Error (EmptyQuery, UnknownCommand, MissingKeyword or UnknownKeyword). No
// arity or argument validation is done here; that is left to the dispatcher.
//
// Thread Safety:
//
//	Vocabulary and Normalizer are immutable after construction and may be
//	shared freely between goroutines.
//
// Usage:
//
//	q, err := query.Parse("CLUSTER NODES")
//	// q.Verb == query.VerbCluster, q.SubVerb == query.SubVerbNodes, q.Params == []string{}
package query
