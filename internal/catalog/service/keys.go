package service

import (
	"fmt"
	"strconv"
)

// Cache keys are deterministic per operation and parameter set. Absent
// optional parameters normalize to "all" so that "no filter" and "no filter
// spelled differently" land on the same key.

func newMoviesKey(page int) string {
	return fmt.Sprintf("movies:new:page:%d", page)
}

func movieDetailKey(slug string) string {
	return "movies:detail:" + slug
}

func moviesByTypeKey(movieType string, page int, category, country string, year int) string {
	return fmt.Sprintf("movies:type:%s:p:%d:cat:%s:co:%s:y:%s",
		movieType, page, orAll(category), orAll(country), yearOrAll(year))
}

func searchMoviesKey(keyword string, limit int) string {
	return fmt.Sprintf("movies:search:%s:limit:%d", keyword, limit)
}

func moviesByCategoryKey(slug string, page int, country string, year int) string {
	return fmt.Sprintf("movies:category:%s:p:%d:co:%s:y:%s",
		slug, page, orAll(country), yearOrAll(year))
}

const (
	categoriesKey = "movies:categories"
	countriesKey  = "movies:countries"
)

func orAll(value string) string {
	if value == "" {
		return "all"
	}
	return value
}

func yearOrAll(year int) string {
	if year == 0 {
		return "all"
	}
	return strconv.Itoa(year)
}
