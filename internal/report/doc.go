// Package report turns extracted build trees into finished reports and
// writes them out in various formats.
//
// The Generator runs the extraction stage over a build session and
// wraps the resulting tree in a Report. Writers then render that report
// as colored terminal text, JSON, or GitHub Flavored Markdown. Batch
// runs the generator over many record files concurrently.
package report
