package filter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type companyRef struct {
	CompanyID   string
	CompanyName string
}

func TestOptionsPreserveFirstSeenOrder(t *testing.T) {
	records := []companyRef{
		{CompanyID: "b", CompanyName: "Bravo"},
		{CompanyID: "a", CompanyName: "Alpha"},
		{CompanyID: "b", CompanyName: "Bravo2"},
	}

	opts := Options(records,
		func(r companyRef) string { return r.CompanyID },
		func(r companyRef) string { return r.CompanyName },
	)

	require.Equal(t, []Option{
		{Value: "b", Label: "Bravo"},
		{Value: "a", Label: "Alpha"},
	}, opts)
}

func TestOptionsSkipEmptyValues(t *testing.T) {
	records := []companyRef{
		{CompanyID: "", CompanyName: "Ghost"},
		{CompanyID: "a", CompanyName: "Alpha"},
	}

	opts := Options(records,
		func(r companyRef) string { return r.CompanyID },
		func(r companyRef) string { return r.CompanyName },
	)
	require.Equal(t, []Option{{Value: "a", Label: "Alpha"}}, opts)
}

func TestOptionsEmptyInput(t *testing.T) {
	require.Empty(t, Options(nil,
		func(r companyRef) string { return r.CompanyID },
		func(r companyRef) string { return r.CompanyName },
	))
}
