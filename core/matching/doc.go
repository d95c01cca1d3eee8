// Package matching provides the pure reconciliation engine that pairs
// scanned baggage records with airline manifest items.
//
// The engine is side-effect free: it operates on in-memory snapshots of both
// collections and returns a result the caller persists. This keeps the
// matching policy testable in isolation from the store.
//
// # Scoring
//
// Every bag/item pair is scored on up to three criteria, each toggled
// independently through Options:
//
//  1. Bag id: exact match after normalization contributes 100; otherwise, with
//     fuzzy matching enabled, the Levenshtein similarity contributes if it
//     clears the configured threshold.
//  2. Passenger name: same policy with its own (lower) threshold.
//  3. PNR: exact, case-insensitive comparison only. A booking reference is
//     either right or it is not evidence.
//
// A pair is a candidate only if at least one criterion contributed. The pair
// score is the arithmetic mean of the contributing criteria; criteria that
// were skipped do not penalize the average.
//
// # Assignment
//
// Assignment is greedy and input-order dependent: bags are processed in the
// order given, each claiming its best-scoring unclaimed item when the score
// clears the acceptance floor. An earlier bag can therefore claim an item
// that would have scored higher against a later bag. This favours earlier
// scans and is the documented behaviour of the system; a globally optimal
// bipartite solver could replace the loop behind the same Reconcile contract.
//
// # Normalization
//
// Bag ids are uppercased, stripped of a known 2-letter carrier prefix and of
// all non-alphanumerics; passenger names are uppercased with whitespace runs
// collapsed. Normalization is idempotent.
package matching
