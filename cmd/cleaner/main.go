// cleaner: applicant data cleaning service
//
// Cleans Moroccan applicant CSV exports:
//   - run:        one batch clean of the input CSV
//   - serve:      scheduled (and optionally file-triggered) cleans behind
//     HTTP and gRPC health endpoints
//   - city <cin>: resolve national IDs to their issuing city
//
// Every run can also record its corrections in SQLite, copy the cleaned rows
// to PostgreSQL and announce itself on Redis (EVENT_APPLICANTS_CLEANED).
package main

import "os"

const version = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
