package claim

import "github.com/pkg/errors"

// WaterCategory is the IICRC S500 contamination level of a water loss.
type WaterCategory int

const (
	// WaterCategoryUnset means the claim does not document a water category.
	WaterCategoryUnset WaterCategory = 0
	// WaterCategory1 is clean water.
	WaterCategory1 WaterCategory = 1
	// WaterCategory2 is gray water.
	WaterCategory2 WaterCategory = 2
	// WaterCategory3 is black water (sewage/contaminated).
	WaterCategory3 WaterCategory = 3
)

// Valid reports whether c is one of the documented water categories, or
// unset.
func (c WaterCategory) Valid() bool {
	switch c {
	case WaterCategoryUnset, WaterCategory1, WaterCategory2, WaterCategory3:
		return true
	default:
		return false
	}
}

// PropertyDetails describes the affected property.
type PropertyDetails struct {
	affectedRooms     []Room
	waterCategory     WaterCategory
	totalAffectedSqft float64
	propertyType      string
}

// PropertyDetailsInput is the set of fields accepted by NewPropertyDetails.
type PropertyDetailsInput struct {
	AffectedRooms     []Room
	WaterCategory     WaterCategory
	TotalAffectedSqft *float64 // nil means derive from AffectedRooms
	PropertyType      string   // defaults to "residential"
}

// NewPropertyDetails validates and constructs a PropertyDetails,
// deriving TotalAffectedSqft from the affected rooms when absent.
func NewPropertyDetails(in PropertyDetailsInput) (PropertyDetails, error) {
	if !in.WaterCategory.Valid() {
		return PropertyDetails{}, errors.Errorf("property details: invalid water category %d", in.WaterCategory)
	}

	propertyType := in.PropertyType
	if propertyType == "" {
		propertyType = "residential"
	}

	total := 0.0
	if in.TotalAffectedSqft != nil {
		total = *in.TotalAffectedSqft
	} else {
		for _, r := range in.AffectedRooms {
			if r.Affected() {
				total += r.Sqft()
			}
		}
	}

	return PropertyDetails{
		affectedRooms:     in.AffectedRooms,
		waterCategory:     in.WaterCategory,
		totalAffectedSqft: total,
		propertyType:      propertyType,
	}, nil
}

// AffectedRooms returns the property's affected rooms.
func (p PropertyDetails) AffectedRooms() []Room { return p.affectedRooms }

// WaterCategory returns the documented water category, or
// WaterCategoryUnset.
func (p PropertyDetails) WaterCategory() WaterCategory { return p.waterCategory }

// HasWaterCategory reports whether a water category was documented.
func (p PropertyDetails) HasWaterCategory() bool { return p.waterCategory != WaterCategoryUnset }

// TotalAffectedSqft returns the total affected square footage, stored or
// derived.
func (p PropertyDetails) TotalAffectedSqft() float64 { return p.totalAffectedSqft }

// PropertyType returns the property type, defaulting to "residential".
func (p PropertyDetails) PropertyType() string { return p.propertyType }
