// Package giro reconstructs portfolio performance from raw brokerage
// exports.
//
// The package is the pure computation core of the tracker: it replays a
// chronological stream of trade and cash events into per-instrument
// position state with weighted-average cost accounting, realized and
// unrealized profit/loss, time-series valuation snapshots and periodic
// return reports. It performs no I/O; ingestion, persistence and price
// fetching live in the surrounding packages and hand the engine plain
// slices and maps.
package giro
