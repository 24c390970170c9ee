package workflow

import (
	"randevu/models"
	"randevu/services/reference"
)

// filterField identifies one node of the cascading-filter dependency graph.
type filterField int

const (
	fieldRegion filterField = iota
	fieldSubRegion
	fieldDepartment
	fieldProviderDay
	fieldClinician
)

// filterDeps is the dependency graph: a change to a field clears every field
// reachable from it.
var filterDeps = map[filterField][]filterField{
	fieldRegion:      {fieldSubRegion, fieldDepartment},
	fieldSubRegion:   {fieldDepartment},
	fieldDepartment:  {fieldProviderDay},
	fieldProviderDay: {fieldClinician},
}

// downstreamOf returns every field reachable from f in the graph.
func downstreamOf(f filterField) []filterField {
	seen := map[filterField]bool{}
	queue := append([]filterField(nil), filterDeps[f]...)
	var out []filterField
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if seen[next] {
			continue
		}
		seen[next] = true
		out = append(out, next)
		queue = append(queue, filterDeps[next]...)
	}
	return out
}

func clearField(sel *models.FilterSelection, f filterField) {
	switch f {
	case fieldRegion:
		sel.RegionID = 0
	case fieldSubRegion:
		sel.SubRegionID = 0
	case fieldDepartment:
		sel.DepartmentID = 0
	case fieldProviderDay:
		sel.ProviderDayID = 0
	case fieldClinician:
		sel.ClinicianID = 0
	}
}

func clearDownstream(sel *models.FilterSelection, f filterField) {
	for _, d := range downstreamOf(f) {
		clearField(sel, d)
	}
}

// FilterResolver owns the cascading selection rules over the reference
// hierarchy. It never returns errors for unknown ids; they simply resolve to
// empty option sets.
type FilterResolver struct {
	Ref *reference.Cache
}

func NewFilterResolver(ref *reference.Cache) *FilterResolver {
	return &FilterResolver{Ref: ref}
}

// SetRegion selects a region and clears everything downstream.
func (r *FilterResolver) SetRegion(sel *models.FilterSelection, regionID int) {
	sel.RegionID = regionID
	clearDownstream(sel, fieldRegion)
}

// SetSubRegion selects a sub-region. The department survives when it still
// matches the new (region, sub-region) pair; otherwise the department and
// everything below it are cleared.
func (r *FilterResolver) SetSubRegion(sel *models.FilterSelection, subRegionID int) {
	sel.SubRegionID = subRegionID
	if r.departmentMatches(sel.DepartmentID, sel.RegionID, subRegionID) {
		return
	}
	clearDownstream(sel, fieldSubRegion)
}

// SetDepartment selects a department and clears the provider-day and
// clinician.
func (r *FilterResolver) SetDepartment(sel *models.FilterSelection, departmentID int) {
	sel.DepartmentID = departmentID
	clearDownstream(sel, fieldDepartment)
}

// SetProviderDay selects a provider-day and clears the clinician.
func (r *FilterResolver) SetProviderDay(sel *models.FilterSelection, providerDayID int) {
	sel.ProviderDayID = providerDayID
	clearDownstream(sel, fieldProviderDay)
}

// SetClinician selects a clinician. Nothing depends on it.
func (r *FilterResolver) SetClinician(sel *models.FilterSelection, clinicianID int) {
	sel.ClinicianID = clinicianID
}

// Normalize walks a full selection top-down and clears any field that is
// inconsistent with its upstream choices, mirroring the reset cascade for
// selections arriving whole from a client.
func (r *FilterResolver) Normalize(sel *models.FilterSelection) {
	if _, ok := r.Ref.RegionByID(sel.RegionID); !ok {
		clearField(sel, fieldRegion)
		clearDownstream(sel, fieldRegion)
		return
	}
	if sel.SubRegionID != 0 {
		sub, ok := r.Ref.SubRegionByID(sel.SubRegionID)
		if !ok || sub.RegionID != sel.RegionID {
			clearField(sel, fieldSubRegion)
		}
	}
	if sel.DepartmentID != 0 && !r.departmentMatches(sel.DepartmentID, sel.RegionID, sel.SubRegionID) {
		clearField(sel, fieldDepartment)
		clearDownstream(sel, fieldDepartment)
	}
}

// AvailableSubRegions lists the sub-regions of the currently selected region.
func (r *FilterResolver) AvailableSubRegions(sel models.FilterSelection) []models.SubRegion {
	return r.Ref.SubRegionsOf(sel.RegionID)
}

// AvailableDepartments lists departments matching the selected region and,
// when set, the selected sub-region.
func (r *FilterResolver) AvailableDepartments(sel models.FilterSelection) []models.Department {
	if sel.RegionID == 0 {
		return nil
	}
	return r.Ref.DepartmentsFor(sel.RegionID, sel.SubRegionID)
}

// AvailableClinicians narrows the remote clinician list to the selected
// provider-day when one is chosen; otherwise the list passes through.
func (r *FilterResolver) AvailableClinicians(sel models.FilterSelection, clinicians []models.Clinician) []models.Clinician {
	if sel.ProviderDayID == 0 {
		return clinicians
	}
	var out []models.Clinician
	for _, c := range clinicians {
		if c.ProviderDayID == sel.ProviderDayID {
			out = append(out, c)
		}
	}
	return out
}

func (r *FilterResolver) departmentMatches(departmentID, regionID, subRegionID int) bool {
	if departmentID == 0 {
		return false
	}
	dept, ok := r.Ref.DepartmentByID(departmentID)
	if !ok || dept.RegionID != regionID {
		return false
	}
	return subRegionID == 0 || dept.SubRegionID == subRegionID
}
