package models

// Region is a top-level geographic area (e.g. a city). Immutable once loaded.
type Region struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SubRegion is a geographic area nested in a Region (e.g. a district).
type SubRegion struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	RegionID int    `json:"regionId"`
}

// Department is a clinical specialty scoped to geography.
type Department struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	RegionID    int    `json:"regionId"`
	SubRegionID int    `json:"subRegionId"`
}

// Clinician is one doctor attached to a provider-day.
type Clinician struct {
	ID            int    `json:"id"`
	ProviderDayID int    `json:"providerDayId"`
	Name          string `json:"name"`
}

// ReferenceData is the full region/department hierarchy returned by the
// availability service's initial endpoint.
type ReferenceData struct {
	Regions     []Region     `json:"regions"`
	SubRegions  []SubRegion  `json:"subRegions"`
	Departments []Department `json:"departments"`
}
