// Package lkh implements a Lin–Kernighan-style travelling salesman
// solver: a Held–Karp subgradient ascent builds the 1-tree lower bound
// and its α-nearness ranking, candidate lists restrict the search
// neighborhood, and sequential k-opt moves over a two-level tour
// representation drive the trial/run/population loop that
// original_source/SRC/LKHmain.c and original_source/SRC2/FindTour.c
// describe.
//
// Subpackages:
//
//	problem/   — cost oracle, node arena, TSPLIB constants
//	tsplib/    — TSPLIB95 problem- and tour-file I/O
//	params/    — parameter-file parser and solver defaults
//	tour/      — two-level doubly linked tour representation
//	ascent/    — Held–Karp 1-tree, subgradient ascent, α-nearness
//	candidate/ — per-node candidate lists and backbone promotion
//	lk/        — sequential k-opt local search
//	hashset/   — duplicate-tour rejection
//	construct/ — initial tour constructors
//	rng/       — shared deterministic seeding
//	merge/     — alternating-cycle tour recombination
//	genetic/   — population maintenance and edge-recombination crossover
//	solver/    — the trial driver and outer run driver
//	metrics/   — Prometheus-backed run statistics
//	cmd/lkh/   — the command-line entry point
package lkh
