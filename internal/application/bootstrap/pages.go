package bootstrap

// Page is a dashboard page variant
type Page string

const (
	PageBrowse  Page = "browse"
	PageManage  Page = "manage"
	PageReports Page = "reports"
	PageAccount Page = "account"
)

// Region is a display region a page may contain
type Region string

const (
	RegionConnectivity Region = "connectivity"
	RegionStats        Region = "stats"
	RegionFilters      Region = "filters"
	RegionCards        Region = "cards"
	RegionForm         Region = "form"
	RegionCritical     Region = "critical"
	RegionReport       Region = "report"
	RegionRanking      Region = "ranking"
	RegionProjection   Region = "projection"
	RegionLogin        Region = "login"
	RegionProfile      Region = "profile"
)

// Fetch is an initial data load
type Fetch string

const (
	FetchFacilities   Fetch = "facilities"
	FetchCritical     Fetch = "critical"
	FetchReport       Fetch = "report"
	FetchProfile      Fetch = "profile"
	FetchConnectivity Fetch = "connectivity"
)

// PageConfig declares what a page shows and what it loads, in order
type PageConfig struct {
	Page    Page
	Path    string
	Title   string
	Regions []Region
	Fetches []Fetch
}

var pageConfigs = []PageConfig{
	{
		Page:    PageBrowse,
		Path:    "/",
		Title:   "Pregled vrtica",
		Regions: []Region{RegionConnectivity, RegionStats, RegionFilters, RegionCards},
		Fetches: []Fetch{FetchFacilities},
	},
	{
		Page:    PageManage,
		Path:    "/manage",
		Title:   "Upravljanje",
		Regions: []Region{RegionConnectivity, RegionStats, RegionFilters, RegionCards, RegionForm},
		Fetches: []Fetch{FetchFacilities, FetchProfile},
	},
	{
		Page:    PageReports,
		Path:    "/reports",
		Title:   "Izvestaji",
		Regions: []Region{RegionConnectivity, RegionCritical, RegionReport, RegionRanking, RegionProjection},
		Fetches: []Fetch{FetchConnectivity, FetchReport, FetchCritical},
	},
	{
		Page:    PageAccount,
		Path:    "/account",
		Title:   "Nalog",
		Regions: []Region{RegionLogin, RegionProfile},
		Fetches: []Fetch{FetchProfile},
	},
}

// Pages returns every page in navigation order
func Pages() []PageConfig {
	return append([]PageConfig(nil), pageConfigs...)
}

// Lookup returns the configuration of p
func Lookup(p Page) (PageConfig, bool) {
	for _, c := range pageConfigs {
		if c.Page == p {
			return c, true
		}
	}
	return PageConfig{}, false
}

// MustLookup is Lookup for pages known at compile time
func MustLookup(p Page) PageConfig {
	c, ok := Lookup(p)
	if !ok {
		panic("bootstrap: unknown page " + string(p))
	}
	return c
}

// Has reports whether the page contains r
func (c PageConfig) Has(r Region) bool {
	for _, region := range c.Regions {
		if region == r {
			return true
		}
	}
	return false
}

// Prefix is the route prefix of the page's interactions
func (c PageConfig) Prefix() string {
	if c.Path == "/" {
		return ""
	}
	return c.Path
}
