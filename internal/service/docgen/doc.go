// Package docgen orchestrates one documentation-generation request: it stages
// the uploaded video on local disk, detects its media type, hands it to the
// generator, and guarantees the staging file is removed whatever the outcome.
package docgen
