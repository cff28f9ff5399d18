// Package testutil provides deterministic random workloads for stgkit tests
// and the stgsim driver.
//
// # Random Identifiers
//
//	rng := testutil.NewRNG(seed)
//	names := rng.Identifiers(1000, 3, 12)
//
// # Operation Sequences
//
//	ops := rng.Ops(10_000, 512, 1.2) // Zipf-skewed keys in [0, 512)
//	for _, op := range ops {
//		switch op.Kind {
//		case testutil.OpInsert:
//			// ...
//		}
//	}
package testutil
