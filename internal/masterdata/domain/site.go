package masterdata

// Site status values.
const (
	SiteStatusEnabled     = "enabled"
	SiteStatusDisabled    = "disabled"
	SiteStatusMaintenance = "maintenance"
)

// Site type values.
const (
	SiteTypeLoad   = "load"
	SiteTypeUnload = "unload"
	SiteTypeUse    = "use"
)

// Maintenance policy values.
const (
	MaintenancePolicyBlock  = "block"
	MaintenancePolicyManual = "manual"
)

// Site is a load/unload/use location. Sites are never physically removed;
// disabling only flips the status flag so historical plans keep resolving.
type Site struct {
	ID                string
	Name              string
	Type              string
	Status            string
	MaintenancePolicy string
	MaintenanceWindow string
}

// Blocked reports whether the site must not accept new plans.
func (s Site) Blocked() bool {
	if s.Status == SiteStatusDisabled {
		return true
	}
	return s.Status == SiteStatusMaintenance && s.MaintenancePolicy == MaintenancePolicyBlock
}
