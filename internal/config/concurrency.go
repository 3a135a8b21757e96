package config

import "runtime"

// Concurrency resolution chain (highest priority first):
//   1. CLI flag (--concurrency)
//   2. Environment variable (HANDLEWATCH_CONCURRENCY)
//   3. YAML file (concurrency:)
//   4. Hardware estimation (this file)

// ApplyAdaptiveConcurrency fills in the per-pass read fan-out from the CPU
// count when it was left at zero.
func ApplyAdaptiveConcurrency(cfg AppConfig) AppConfig {
	if cfg.Concurrency == 0 {
		cfg.Concurrency = EstimateOptimalConcurrency()
	}
	return cfg
}

// EstimateOptimalConcurrency provides a heuristic bound on concurrent
// per-process OS queries. The queries mostly wait on the kernel, so the
// bound exceeds the core count, but it stays small enough not to flood the
// host with open process handles.
func EstimateOptimalConcurrency() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU <= 1:
		return 2
	case numCPU <= 4:
		return numCPU * 2
	case numCPU <= 16:
		return numCPU
	default:
		return 16
	}
}
