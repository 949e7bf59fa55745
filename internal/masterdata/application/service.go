// Package application implements master-data upkeep: sites, vehicles,
// personnel and the gas price shelf. Records are never removed; disabling
// flips validity flags so historical plans keep resolving.
package application

import (
	"errors"
	"strings"

	masterdata "lngtrade-cloud/internal/masterdata/domain"
	"lngtrade-cloud/internal/numbering"
	"lngtrade-cloud/internal/state"
)

// Service drives master-data maintenance.
type Service struct {
	store *state.Store
	gen   *numbering.Generator
}

// NewService constructs a master-data service.
func NewService(store *state.Store, gen *numbering.Generator) (*Service, error) {
	if store == nil {
		return nil, errors.New("masterdata service: nil store")
	}
	if gen == nil {
		return nil, errors.New("masterdata service: nil generator")
	}
	return &Service{store: store, gen: gen}, nil
}

// SiteInput creates a site.
type SiteInput struct {
	Name              string
	Type              string
	Status            string
	MaintenancePolicy string
	MaintenanceWindow string
}

// AddSite creates a site, defaulting to enabled.
func (s *Service) AddSite(input SiteInput) (string, error) {
	var id string
	err := s.store.Update(func(st *state.State) error {
		status := input.Status
		if status == "" {
			status = masterdata.SiteStatusEnabled
		}
		site := masterdata.Site{
			ID:                s.gen.NextID("site"),
			Name:              strings.TrimSpace(input.Name),
			Type:              input.Type,
			Status:            status,
			MaintenancePolicy: input.MaintenancePolicy,
			MaintenanceWindow: strings.TrimSpace(input.MaintenanceWindow),
		}
		st.Sites = append([]masterdata.Site{site}, st.Sites...)
		id = site.ID
		return nil
	})
	return id, err
}

// SitePatch carries optional site updates; nil fields keep their value.
type SitePatch struct {
	Name              *string
	Type              *string
	Status            *string
	MaintenancePolicy *string
	MaintenanceWindow *string
}

// UpdateSite applies a partial update to a site.
func (s *Service) UpdateSite(siteID string, patch SitePatch) error {
	return s.store.Update(func(st *state.State) error {
		site := st.FindSite(siteID)
		if site == nil {
			return masterdata.ErrNotFound
		}
		if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
			site.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Type != nil {
			site.Type = *patch.Type
		}
		if patch.Status != nil {
			site.Status = *patch.Status
		}
		if patch.MaintenancePolicy != nil {
			site.MaintenancePolicy = *patch.MaintenancePolicy
		}
		if patch.MaintenanceWindow != nil {
			site.MaintenanceWindow = strings.TrimSpace(*patch.MaintenanceWindow)
		}
		return nil
	})
}

// DisableSite soft-disables a site.
func (s *Service) DisableSite(siteID string) error {
	return s.store.Update(func(st *state.State) error {
		site := st.FindSite(siteID)
		if site == nil {
			return masterdata.ErrNotFound
		}
		site.Status = masterdata.SiteStatusDisabled
		return nil
	})
}

// VehicleInput creates a vehicle.
type VehicleInput struct {
	PlateNo    string
	Capacity   float64
	CertExpiry string
	Valid      bool
}

// AddVehicle registers a transport vehicle.
func (s *Service) AddVehicle(input VehicleInput) (string, error) {
	var id string
	err := s.store.Update(func(st *state.State) error {
		vehicle := masterdata.Vehicle{
			ID:         s.gen.NextID("vehicle"),
			PlateNo:    strings.TrimSpace(input.PlateNo),
			Capacity:   input.Capacity,
			CertExpiry: input.CertExpiry,
			Valid:      input.Valid,
		}
		st.Vehicles = append([]masterdata.Vehicle{vehicle}, st.Vehicles...)
		id = vehicle.ID
		return nil
	})
	return id, err
}

// VehiclePatch carries optional vehicle updates.
type VehiclePatch struct {
	PlateNo    *string
	Capacity   *float64
	CertExpiry *string
	Valid      *bool
}

// UpdateVehicle applies a partial update to a vehicle.
func (s *Service) UpdateVehicle(vehicleID string, patch VehiclePatch) error {
	return s.store.Update(func(st *state.State) error {
		vehicle := st.FindVehicle(vehicleID)
		if vehicle == nil {
			return masterdata.ErrNotFound
		}
		if patch.PlateNo != nil && strings.TrimSpace(*patch.PlateNo) != "" {
			vehicle.PlateNo = strings.TrimSpace(*patch.PlateNo)
		}
		if patch.Capacity != nil {
			vehicle.Capacity = *patch.Capacity
		}
		if patch.CertExpiry != nil {
			vehicle.CertExpiry = *patch.CertExpiry
		}
		if patch.Valid != nil {
			vehicle.Valid = *patch.Valid
		}
		return nil
	})
}

// DisableVehicle invalidates a vehicle's transport certification.
func (s *Service) DisableVehicle(vehicleID string) error {
	return s.store.Update(func(st *state.State) error {
		vehicle := st.FindVehicle(vehicleID)
		if vehicle == nil {
			return masterdata.ErrNotFound
		}
		vehicle.Valid = false
		return nil
	})
}

// PersonInput creates a driver or escort.
type PersonInput struct {
	Name       string
	Role       string
	CertExpiry string
	Valid      bool
}

// AddPerson registers a driver or escort.
func (s *Service) AddPerson(input PersonInput) (string, error) {
	var id string
	err := s.store.Update(func(st *state.State) error {
		person := masterdata.Person{
			ID:         s.gen.NextID("person"),
			Name:       strings.TrimSpace(input.Name),
			Role:       input.Role,
			CertExpiry: input.CertExpiry,
			Valid:      input.Valid,
		}
		st.Personnel = append([]masterdata.Person{person}, st.Personnel...)
		id = person.ID
		return nil
	})
	return id, err
}

// PersonPatch carries optional personnel updates.
type PersonPatch struct {
	Name       *string
	Role       *string
	CertExpiry *string
	Valid      *bool
}

// UpdatePerson applies a partial update to a person.
func (s *Service) UpdatePerson(personID string, patch PersonPatch) error {
	return s.store.Update(func(st *state.State) error {
		person := st.FindPerson(personID)
		if person == nil {
			return masterdata.ErrNotFound
		}
		if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
			person.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Role != nil {
			person.Role = *patch.Role
		}
		if patch.CertExpiry != nil {
			person.CertExpiry = *patch.CertExpiry
		}
		if patch.Valid != nil {
			person.Valid = *patch.Valid
		}
		return nil
	})
}

// DisablePerson invalidates a person's certification.
func (s *Service) DisablePerson(personID string) error {
	return s.store.Update(func(st *state.State) error {
		person := st.FindPerson(personID)
		if person == nil {
			return masterdata.ErrNotFound
		}
		person.Valid = false
		return nil
	})
}

// PriceInput creates a gas price offer in draft.
type PriceInput struct {
	SourceCompany string
	SourceSite    string
	Scope         string
	CustomerID    string
	Price         float64
	ValidFrom     string
	ValidTo       string
	TaxIncluded   bool
	Note          string
}

// AddGasPrice files a draft price offer.
func (s *Service) AddGasPrice(input PriceInput) (string, error) {
	var id string
	err := s.store.Update(func(st *state.State) error {
		price := masterdata.GasPrice{
			ID:            s.gen.NextID("price"),
			SourceCompany: input.SourceCompany,
			SourceSite:    input.SourceSite,
			Scope:         input.Scope,
			CustomerID:    input.CustomerID,
			Price:         input.Price,
			ValidFrom:     input.ValidFrom,
			ValidTo:       input.ValidTo,
			TaxIncluded:   input.TaxIncluded,
			Note:          input.Note,
			Status:        masterdata.PriceStatusDraft,
		}
		st.GasPrices = append([]masterdata.GasPrice{price}, st.GasPrices...)
		id = price.ID
		return nil
	})
	return id, err
}

// PublishGasPrice puts a draft or off-shelf price on the shelf.
func (s *Service) PublishGasPrice(priceID string) error {
	return s.setPriceStatus(priceID, masterdata.PriceStatusPublished)
}

// OffShelfGasPrice withdraws a published price.
func (s *Service) OffShelfGasPrice(priceID string) error {
	return s.setPriceStatus(priceID, masterdata.PriceStatusOffShelf)
}

func (s *Service) setPriceStatus(priceID, status string) error {
	return s.store.Update(func(st *state.State) error {
		price := st.FindGasPrice(priceID)
		if price == nil {
			return masterdata.ErrNotFound
		}
		price.Status = status
		return nil
	})
}

// VisiblePrices returns the price offers a terminal customer may see.
func (s *Service) VisiblePrices(customerID string) []masterdata.GasPrice {
	snap := s.store.Snapshot()
	visible := make([]masterdata.GasPrice, 0, len(snap.GasPrices))
	for _, price := range snap.GasPrices {
		if price.VisibleTo(customerID) {
			visible = append(visible, price)
		}
	}
	return visible
}
