// Package extract drives the per-item export pipeline.
//
// Each item moves through Pending, Opened, Planned and Exporting to Done, or
// stops in Failed. Items are independent: a failure is recorded on its
// ItemResult and never aborts sibling items or the remaining roles of the
// same item. Only a usage error or a missing library authorization stops a
// whole run, and both are reported before any item is processed.
package extract
