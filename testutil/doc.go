// Package testutil provides testing utilities for pvec.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, goroutine-safe RNG for generating reproducible
// index workloads.
//
// # Random Workloads
//
//	rng := testutil.NewRNG(seed)
//	i := rng.Intn(v.Len())      // random valid index
//	order := rng.Perm(v.Len())  // visit every index once, shuffled
//	xs := rng.Ints(1000, 100)   // 1000 values in [0, 100)
package testutil
