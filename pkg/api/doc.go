// Package api defines the wire types shared by the aibackend HTTP surface.
//
// The package covers the item catalog ([Item], [ItemInput]), the AI
// pass-through shapes ([TextAnalysisRequest], [CodeGenerationRequest],
// [StatusResponse] and their responses), the structured [APIError] used for
// every error body, and request validation.
//
// All types produce JSON using snake_case field names. The package performs
// no I/O.
package api
