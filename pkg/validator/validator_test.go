package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type reviewResponsePayload struct {
	ReviewID string `json:"review_id" validate:"required,uuid4"`
	Body     string `json:"body" validate:"required,min=2,max=2000"`
}

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	err := ValidateStruct(&reviewResponsePayload{Body: "x"})
	require.Error(t, err)

	failures, ok := err.(ValidationErrors)
	require.True(t, ok)
	require.Len(t, failures, 2)

	fields := []string{failures[0].Field, failures[1].Field}
	require.Contains(t, fields, "review_id")
	require.Contains(t, fields, "body")
}

func TestValidateStructPasses(t *testing.T) {
	payload := reviewResponsePayload{
		ReviewID: "2f9c43a1-5a6b-4c7d-9e8f-0a1b2c3d4e5f",
		Body:     "Thanks for the detailed feedback!",
	}
	require.NoError(t, ValidateStruct(&payload))
}
