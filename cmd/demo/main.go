// Command demo walks through the aibackend wire types offline: building
// and validating requests, applying defaults, and the error envelope
// returned to clients.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/rhuss/aibackend/pkg/api"
)

func main() {
	fmt.Println("=== aibackend wire types demo ===")
	fmt.Println()

	// 1. Build and validate an item body.
	desc := "Adjustable desk lamp"
	price := 24.5
	in := &api.ItemInput{Name: "Lamp", Description: &desc, Price: &price}
	if err := api.ValidateItemInput(in); err != nil {
		fmt.Printf("Validation FAILED: %v\n", err)
		return
	}
	fmt.Println("[1] Item body validated successfully")

	// 2. Convert to a stored item and serialize it.
	item := in.ToItem(3)
	printJSON("[2] Stored item JSON", item)

	// 3. An invalid body reports every failing field.
	bad := api.ValidateItemInput(&api.ItemInput{Name: " "})
	printJSON("[3] Validation error envelope", api.ErrorResponse{Error: bad})

	// 4. AI requests fill in defaults before validation.
	analysis := &api.TextAnalysisRequest{Text: ptr("The new release is fantastic")}
	analysis.ApplyDefaults()
	printJSON("[4] Text analysis request after defaults", analysis)

	code := &api.CodeGenerationRequest{Description: ptr("reverse a linked list")}
	code.ApplyDefaults()
	printJSON("[5] Code generation request after defaults", code)

	// 5. Unknown analysis types, including an explicit "", are rejected
	// before any backend call.
	unknown := &api.TextAnalysisRequest{Text: ptr("hi"), AnalysisType: ptr(api.AnalysisType("translation"))}
	printJSON("[6] Unknown analysis type", api.ErrorResponse{Error: api.ValidateTextAnalysisRequest(unknown)})

	// 6. Missing items map to not_found.
	printJSON("[7] Missing item", api.ErrorResponse{Error: api.ItemNotFound(99)})

	fmt.Println()
	fmt.Println("=== demo complete ===")
}

func ptr[T any](v T) *T { return &v }

func printJSON(title string, v any) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Printf("\n%s:\n%s\n", title, data)
}
