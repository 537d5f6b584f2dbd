package domain

// Response shapes mirror the upstream movie API JSON verbatim so cached and
// live responses serialize identically.

type Pagination struct {
	TotalItems        int `json:"totalItems"`
	TotalItemsPerPage int `json:"totalItemsPerPage"`
	CurrentPage       int `json:"currentPage"`
	TotalPages        int `json:"totalPages"`
}

type MovieItem struct {
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	OriginName string `json:"origin_name"`
	ThumbURL   string `json:"thumb_url"`
	PosterURL  string `json:"poster_url"`
	Year       int    `json:"year"`
}

type MovieListResponse struct {
	Status     bool        `json:"status"`
	Items      []MovieItem `json:"items"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type CategoryRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CountryRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type MovieInfo struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Slug           string        `json:"slug"`
	OriginName     string        `json:"origin_name"`
	Content        string        `json:"content"`
	Type           string        `json:"type"`
	Status         string        `json:"status"`
	ThumbURL       string        `json:"thumb_url"`
	PosterURL      string        `json:"poster_url"`
	IsCopyright    bool          `json:"is_copyright"`
	SubDocquyen    bool          `json:"sub_docquyen"`
	Chieurap       bool          `json:"chieurap"`
	TrailerURL     string        `json:"trailer_url"`
	Time           string        `json:"time"`
	EpisodeCurrent string        `json:"episode_current"`
	EpisodeTotal   string        `json:"episode_total"`
	Quality        string        `json:"quality"`
	Lang           string        `json:"lang"`
	Notify         string        `json:"notify"`
	Showtimes      string        `json:"showtimes"`
	Year           int           `json:"year"`
	View           int           `json:"view"`
	Actor          []string      `json:"actor"`
	Director       []string      `json:"director"`
	Category       []CategoryRef `json:"category"`
	Country        []CountryRef  `json:"country"`
}

type EpisodeData struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Filename  string `json:"filename"`
	LinkEmbed string `json:"link_embed"`
	LinkM3U8  string `json:"link_m3u8"`
}

type EpisodeServer struct {
	ServerName string        `json:"server_name"`
	ServerData []EpisodeData `json:"server_data"`
}

type MovieDetailResponse struct {
	Status   bool            `json:"status"`
	Msg      string          `json:"msg"`
	Movie    *MovieInfo      `json:"movie,omitempty"`
	Episodes []EpisodeServer `json:"episodes"`
}

type FilteredParams struct {
	TypeSlug       string      `json:"type_slug"`
	FilterCategory []string    `json:"filterCategory"`
	FilterCountry  []string    `json:"filterCountry"`
	FilterYear     []string    `json:"filterYear"`
	SortType       string      `json:"sortType"`
	Pagination     *Pagination `json:"pagination,omitempty"`
}

type FilteredData struct {
	SeoOnPage         any             `json:"seoOnPage,omitempty"`
	BreadCrumb        []any           `json:"breadCrumb,omitempty"`
	TitlePage         string          `json:"titlePage"`
	Items             []MovieItem     `json:"items"`
	Params            *FilteredParams `json:"params,omitempty"`
	TypeList          string          `json:"type_list"`
	AppDomainCDNImage string          `json:"APP_DOMAIN_CDN_IMAGE"`
}

// Status is untyped: the upstream reports it as a bool on some endpoints and
// a string on others.
type FilteredMovieListResponse struct {
	Status any           `json:"status"`
	Msg    string        `json:"msg"`
	Data   *FilteredData `json:"data,omitempty"`
}

type CategoryData struct {
	Items []CategoryRef `json:"items"`
}

type CategoryListResponse struct {
	Status bool          `json:"status"`
	Msg    string        `json:"msg"`
	Data   *CategoryData `json:"data,omitempty"`
}

type CountryData struct {
	Items []CountryRef `json:"items"`
}

type CountryListResponse struct {
	Status bool         `json:"status"`
	Msg    string       `json:"msg"`
	Data   *CountryData `json:"data,omitempty"`
}
