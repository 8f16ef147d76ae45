// Package batch parses many activity descriptions at once.
//
// Input lines are split into fixed-size batches that run sequentially or
// concurrently under a limit. Results keep input order regardless of which
// batch finishes first, and a Progress tracker reports completion after each
// batch.
package batch
