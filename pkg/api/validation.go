package api

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Request defaults applied before validation.
const (
	DefaultAnalysisType = AnalysisSentiment
	DefaultLanguage     = "python"
)

var notBlank = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
})

// ValidateItemInput checks a create or update body. Name must be non-blank
// and price must be present; price sign and range are not constrained.
func ValidateItemInput(in *ItemInput) *APIError {
	return toAPIError(validation.ValidateStruct(in,
		validation.Field(&in.Name, validation.Required, notBlank),
		validation.Field(&in.Price, validation.NotNil),
	))
}

// knownAnalysisType accepts only the defined analysis types. Unlike
// validation.In it also rejects an explicit empty value.
var knownAnalysisType = validation.By(func(value interface{}) error {
	t, _ := value.(*AnalysisType)
	if t == nil {
		return nil
	}
	switch *t {
	case AnalysisSentiment, AnalysisSummary, AnalysisKeywords:
		return nil
	}
	return errors.New("Invalid analysis type")
})

// ApplyDefaults fills in the analysis type when the client omitted the
// field. An explicit value, including "", is left for validation.
func (r *TextAnalysisRequest) ApplyDefaults() {
	if r.AnalysisType == nil {
		kind := DefaultAnalysisType
		r.AnalysisType = &kind
	}
}

// ValidateTextAnalysisRequest checks a text analysis request. Text must be
// present but may be empty. It must be called after ApplyDefaults so that
// an omitted type is accepted.
func ValidateTextAnalysisRequest(r *TextAnalysisRequest) *APIError {
	return toAPIError(validation.ValidateStruct(r,
		validation.Field(&r.Text, validation.NotNil),
		validation.Field(&r.AnalysisType, validation.NotNil, knownAnalysisType),
	))
}

// ApplyDefaults fills in the target language when the client omitted the
// field.
func (r *CodeGenerationRequest) ApplyDefaults() {
	if r.Language == nil {
		lang := DefaultLanguage
		r.Language = &lang
	}
}

// ValidateCodeGenerationRequest checks a code generation request. The
// description must be present; its content is not constrained.
func ValidateCodeGenerationRequest(r *CodeGenerationRequest) *APIError {
	return toAPIError(validation.ValidateStruct(r,
		validation.Field(&r.Description, validation.NotNil),
		validation.Field(&r.Language, validation.NotNil),
	))
}

// toAPIError converts an ozzo-validation result into an invalid request
// error. The first failing field (in name order) becomes the param.
func toAPIError(err error) *APIError {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return NewInvalidRequestError("", err.Error())
	}

	fields := make([]string, 0, len(fieldErrs))
	for f := range fieldErrs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fieldErrs[f].Error())
	}
	return NewInvalidRequestError(fields[0], strings.Join(parts, "; "))
}
