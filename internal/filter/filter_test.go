package filter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type reviewRow struct {
	ID          string
	CompanyID   string
	CompanyName string
	CreatorName string
	Body        *string
	Rating      int
	Responded   bool
	Hidden      bool
}

func body(s string) *string { return &s }

func reviewDefinition() *Definition[reviewRow] {
	return NewDefinition[reviewRow]().
		Search(
			func(r reviewRow) *string { return r.Body },
			func(r reviewRow) *string { return &r.CreatorName },
			func(r reviewRow) *string { return &r.CompanyName },
		).
		Facet("company", Equals(func(r reviewRow) string { return r.CompanyID })).
		Facet("rating", Rating(func(r reviewRow) int { return r.Rating })).
		Facet("responded", Tristate(func(r reviewRow) bool { return r.Responded }, "responded", "awaiting")).
		Facet("visibility", Tristate(func(r reviewRow) bool { return r.Hidden }, "hidden", "visible"))
}

func sampleReviews() []reviewRow {
	return []reviewRow{
		{ID: "r1", CompanyID: "c1", CompanyName: "Bravo Labs", CreatorName: "Ada", Body: body("Hello World"), Rating: 5, Responded: true},
		{ID: "r2", CompanyID: "c2", CompanyName: "Alpha Gear", CreatorName: "Ben", Body: body("slow payouts"), Rating: 2},
		{ID: "r3", CompanyID: "c1", CompanyName: "Bravo Labs", CreatorName: "Cleo", Body: nil, Rating: 4, Hidden: true},
		{ID: "r4", CompanyID: "c3", CompanyName: "Corsair Media", CreatorName: "Dee", Body: body("great team"), Rating: 3, Responded: true},
		{ID: "r5", CompanyID: "c2", CompanyName: "Alpha Gear", CreatorName: "Eli", Body: body("WORLD class support"), Rating: 1},
	}
}

func ids(rows []reviewRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestIdentityFilterReturnsAllRecords(t *testing.T) {
	def := reviewDefinition()
	rows := sampleReviews()

	got := def.Apply(rows, def.State())
	require.Equal(t, ids(rows), ids(got))
}

func TestTextSearchIsCaseInsensitive(t *testing.T) {
	def := reviewDefinition()
	state := def.State()

	state.Search = "hello"
	require.Equal(t, []string{"r1"}, ids(def.Apply(sampleReviews(), state)))

	state.Search = "world"
	require.Equal(t, []string{"r1", "r5"}, ids(def.Apply(sampleReviews(), state)))

	state.Search = "xyz"
	require.Empty(t, def.Apply(sampleReviews(), state))
}

func TestTextSearchSkipsNilFields(t *testing.T) {
	def := NewDefinition[reviewRow]().
		Search(func(r reviewRow) *string { return r.Body })
	state := def.State()

	// record r3 has a nil body and a search for "" after trim is the identity
	state.Search = "   "
	require.Len(t, def.Apply(sampleReviews(), state), 5)

	// a nil field must not match as an empty string
	state.Search = "cleo"
	require.Empty(t, def.Apply(sampleReviews(), state))
}

func TestRatingBuckets(t *testing.T) {
	def := reviewDefinition()
	rows := sampleReviews() // ratings 5,2,4,3,1

	state := def.State()
	state.Set("rating", "4plus")
	require.Equal(t, []string{"r1", "r3"}, ids(def.Apply(rows, state)))

	state.Set("rating", "3orless")
	require.Equal(t, []string{"r2", "r4", "r5"}, ids(def.Apply(rows, state)))

	state.Set("rating", "5")
	require.Equal(t, []string{"r1"}, ids(def.Apply(rows, state)))

	// unknown bucket names are permissive failures: zero matches, no error
	state.Set("rating", "superb")
	require.Empty(t, def.Apply(rows, state))
}

func TestTristateFacets(t *testing.T) {
	def := reviewDefinition()
	rows := sampleReviews()

	state := def.State()
	state.Set("responded", "responded")
	require.Equal(t, []string{"r1", "r4"}, ids(def.Apply(rows, state)))

	state.Set("responded", "awaiting")
	require.Equal(t, []string{"r2", "r3", "r5"}, ids(def.Apply(rows, state)))

	state = def.State()
	state.Set("visibility", "hidden")
	require.Equal(t, []string{"r3"}, ids(def.Apply(rows, state)))
}

func TestFacetsCombineWithLogicalAND(t *testing.T) {
	def := reviewDefinition()
	rows := sampleReviews()

	state := def.State()
	state.Set("company", "c1")
	state.Set("rating", "4plus")
	state.Set("visibility", "visible")
	require.Equal(t, []string{"r1"}, ids(def.Apply(rows, state)))
}

func TestNarrowingAFacetNeverGrowsTheResult(t *testing.T) {
	def := reviewDefinition()
	rows := sampleReviews()

	base := def.State()
	baseline := len(def.Apply(rows, base))

	for _, facet := range []struct{ name, value string }{
		{"company", "c1"},
		{"company", "c2"},
		{"company", "unobserved"},
		{"rating", "4plus"},
		{"rating", "3orless"},
		{"responded", "responded"},
		{"visibility", "hidden"},
	} {
		narrowed := def.State()
		narrowed.Set(facet.name, facet.value)
		require.LessOrEqual(t, len(def.Apply(rows, narrowed)), baseline,
			"facet %s=%s must not grow the result", facet.name, facet.value)
	}
}

func TestUnobservedFacetValueYieldsEmptyNotError(t *testing.T) {
	def := reviewDefinition()
	state := def.State()
	state.Set("company", "c999")
	require.Empty(t, def.Apply(sampleReviews(), state))
}

func TestHasActiveAndClear(t *testing.T) {
	def := reviewDefinition()
	state := def.State()
	require.False(t, state.HasActive())

	state.Search = "  "
	require.False(t, state.HasActive(), "whitespace-only search is not an active filter")

	state.Search = "gear"
	require.True(t, state.HasActive())

	state.Clear()
	require.False(t, state.HasActive())

	state.Set("rating", "5")
	require.True(t, state.HasActive())

	state.Clear()
	require.False(t, state.HasActive())
	require.Equal(t, All, state.Facet("rating"))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	def := reviewDefinition()
	rows := sampleReviews()
	state := def.State()
	state.Set("company", "c2")

	_ = def.Apply(rows, state)
	require.Equal(t, ids(sampleReviews()), ids(rows))
}

func TestEmptyInput(t *testing.T) {
	def := reviewDefinition()
	require.Empty(t, def.Apply(nil, def.State()))
}
