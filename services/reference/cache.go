package reference

import (
	"context"
	"fmt"
	"sort"

	"randevu/models"
	"randevu/services/availability"

	"go.uber.org/zap"
)

// Cache holds the region/department hierarchy for the process lifetime.
// It is loaded once at startup and read-only thereafter.
type Cache struct {
	data models.ReferenceData

	regionsByID map[int]models.Region
	subsByID    map[int]models.SubRegion
	deptsByID   map[int]models.Department
}

// Load fetches the hierarchy from the availability service and builds the
// cache. A load failure is fatal to the workflow, so the caller decides.
func Load(ctx context.Context, client availability.Client, logger *zap.Logger) (*Cache, error) {
	data, err := client.InitialData(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading reference data: %w", err)
	}
	logger.Info("reference data loaded",
		zap.Int("regions", len(data.Regions)),
		zap.Int("subRegions", len(data.SubRegions)),
		zap.Int("departments", len(data.Departments)))
	return New(*data), nil
}

// New builds a cache from already-fetched data.
func New(data models.ReferenceData) *Cache {
	c := &Cache{
		data:        data,
		regionsByID: make(map[int]models.Region, len(data.Regions)),
		subsByID:    make(map[int]models.SubRegion, len(data.SubRegions)),
		deptsByID:   make(map[int]models.Department, len(data.Departments)),
	}
	for _, r := range data.Regions {
		c.regionsByID[r.ID] = r
	}
	for _, s := range data.SubRegions {
		c.subsByID[s.ID] = s
	}
	for _, d := range data.Departments {
		c.deptsByID[d.ID] = d
	}
	return c
}

// Data returns the full hierarchy.
func (c *Cache) Data() models.ReferenceData {
	return c.data
}

// RegionByID looks up a region; ok is false for unknown ids.
func (c *Cache) RegionByID(id int) (models.Region, bool) {
	r, ok := c.regionsByID[id]
	return r, ok
}

// SubRegionByID looks up a sub-region.
func (c *Cache) SubRegionByID(id int) (models.SubRegion, bool) {
	s, ok := c.subsByID[id]
	return s, ok
}

// DepartmentByID looks up a department.
func (c *Cache) DepartmentByID(id int) (models.Department, bool) {
	d, ok := c.deptsByID[id]
	return d, ok
}

// SubRegionsOf returns the sub-regions belonging to a region, sorted by name.
func (c *Cache) SubRegionsOf(regionID int) []models.SubRegion {
	var subs []models.SubRegion
	for _, s := range c.data.SubRegions {
		if s.RegionID == regionID {
			subs = append(subs, s)
		}
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].Name < subs[j].Name })
	return subs
}

// DepartmentsFor returns departments in a region, narrowed to a sub-region
// when one is selected (subRegionID != 0).
func (c *Cache) DepartmentsFor(regionID, subRegionID int) []models.Department {
	var depts []models.Department
	for _, d := range c.data.Departments {
		if d.RegionID != regionID {
			continue
		}
		if subRegionID != 0 && d.SubRegionID != subRegionID {
			continue
		}
		depts = append(depts, d)
	}
	sort.Slice(depts, func(i, j int) bool { return depts[i].Name < depts[j].Name })
	return depts
}
