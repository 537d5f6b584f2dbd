package service

import "testing"

func TestMoviesByTypeKey_NormalizesAbsentFilters(t *testing.T) {
	withoutFilters := moviesByTypeKey("phim-le", 1, "", "", 0)
	want := "movies:type:phim-le:p:1:cat:all:co:all:y:all"

	if withoutFilters != want {
		t.Errorf("expected %q, got %q", want, withoutFilters)
	}
}

func TestMoviesByTypeKey_DistinctFiltersDistinctKeys(t *testing.T) {
	base := moviesByTypeKey("phim-le", 1, "", "", 0)
	withCategory := moviesByTypeKey("phim-le", 1, "hanh-dong", "", 0)
	withCountry := moviesByTypeKey("phim-le", 1, "", "han-quoc", 0)
	withYear := moviesByTypeKey("phim-le", 1, "", "", 2024)
	otherPage := moviesByTypeKey("phim-le", 2, "", "", 0)

	keys := map[string]bool{base: true, withCategory: true, withCountry: true, withYear: true, otherPage: true}
	if len(keys) != 5 {
		t.Errorf("expected 5 distinct keys, got %d", len(keys))
	}
}

func TestMoviesByCategoryKey(t *testing.T) {
	got := moviesByCategoryKey("hanh-dong", 3, "", 2023)
	want := "movies:category:hanh-dong:p:3:co:all:y:2023"

	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSearchAndDetailKeys(t *testing.T) {
	if got := searchMoviesKey("batman", 10); got != "movies:search:batman:limit:10" {
		t.Errorf("unexpected search key %q", got)
	}
	if got := movieDetailKey("the-matrix"); got != "movies:detail:the-matrix" {
		t.Errorf("unexpected detail key %q", got)
	}
	if got := newMoviesKey(2); got != "movies:new:page:2" {
		t.Errorf("unexpected new-movies key %q", got)
	}
}
