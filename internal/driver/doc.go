// Package driver runs the per-file lint pipeline (load, scan, rules) and the
// parallel batch over a file set. It owns input discovery, the result cache
// and progress events; rendering is left to package report.
package driver
