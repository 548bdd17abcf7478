// Package automation runs many scenarios without a front end: scripted
// batches from YAML, one-parameter sweeps, grid searches that optimize a
// metric, and seed ensembles that run concurrently.
package automation
