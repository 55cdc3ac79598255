package api

// Item is a priced catalog entry. The ID is assigned by the store and is
// unique among the items currently held.
type Item struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
}

// ItemInput is the request body for creating or replacing an item.
// Price is a pointer so that an absent price can be told apart from zero.
type ItemInput struct {
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price"`
}

// ToItem builds an Item with the given id from the input fields.
// The input must have passed ValidateItemInput.
func (in *ItemInput) ToItem(id int) Item {
	item := Item{
		ID:   id,
		Name: in.Name,
	}
	if in.Description != nil {
		desc := *in.Description
		item.Description = &desc
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	return item
}

// DeleteResult confirms the removal of an item.
type DeleteResult struct {
	Message string `json:"message"`
}

// Info is the body returned by the root endpoint.
type Info struct {
	Message string `json:"message"`
	Docs    string `json:"docs"`
}

// AnalysisType selects the instruction used for text analysis.
type AnalysisType string

const (
	AnalysisSentiment AnalysisType = "sentiment"
	AnalysisSummary   AnalysisType = "summary"
	AnalysisKeywords  AnalysisType = "keywords"
)

// TextAnalysisRequest asks for an analysis of Text. Fields are pointers so
// that an absent field can be told apart from an empty one: Text must be
// present but may be empty, and AnalysisType defaults to sentiment only
// when absent.
type TextAnalysisRequest struct {
	Text         *string       `json:"text"`
	AnalysisType *AnalysisType `json:"analysis_type,omitempty"`
}

// TextAnalysisResponse carries the model output for a text analysis.
//
// Confidence is a fixed placeholder; it is not derived from the model.
type TextAnalysisResponse struct {
	OriginalText string       `json:"original_text"`
	AnalysisType AnalysisType `json:"analysis_type"`
	Result       string       `json:"result"`
	Confidence   float64      `json:"confidence"`
}

// CodeGenerationRequest asks for code implementing Description in
// Language. Description must be present but may be empty. Language
// defaults to python only when absent; an explicit empty value is kept.
type CodeGenerationRequest struct {
	Description *string `json:"description"`
	Language    *string `json:"language,omitempty"`
}

// CodeGenerationResponse carries the generated code and a separate
// explanation of it.
type CodeGenerationResponse struct {
	Description string `json:"description"`
	Language    string `json:"language"`
	Code        string `json:"code"`
	Explanation string `json:"explanation"`
}

// Availability of the completion backend as reported by the status check.
const (
	StatusAvailable   = "available"
	StatusUnavailable = "unavailable"
)

// StatusResponse reports whether the completion backend is reachable.
// Model is set when available, Error when unavailable.
type StatusResponse struct {
	Status  string `json:"status"`
	Model   string `json:"model,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message"`
}

// RouteInfo describes one HTTP route in the docs listing.
type RouteInfo struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// Docs is the body returned by the docs endpoint.
type Docs struct {
	Title   string      `json:"title"`
	Version string      `json:"version"`
	Routes  []RouteInfo `json:"routes"`
}
