// Package loader decodes claim input — a map, JSON, or YAML document —
// into the typed pkg/claim domain model. It is a thin boundary: CSV/PDF
// ingestion and the interactive dashboard are out of scope and call
// into this package (or construct pkg/claim values directly) themselves.
package loader

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ingo-eichhorst/claim-integrity-engine/pkg/claim"
)

var validate = validator.New()

type roomDoc struct {
	Name      string `json:"name" yaml:"name" validate:"required"`
	Sqft      float64 `json:"sqft" yaml:"sqft" validate:"gt=0"`
	RoomType  string `json:"room_type" yaml:"room_type"`
	FloorType string `json:"floor_type" yaml:"floor_type"`
	Affected  *bool  `json:"affected" yaml:"affected"`
}

type propertyDoc struct {
	AffectedRooms     []roomDoc `json:"affected_rooms" yaml:"affected_rooms" validate:"dive"`
	WaterCategory     int       `json:"water_category" yaml:"water_category" validate:"omitempty,oneof=1 2 3"`
	TotalAffectedSqft *float64  `json:"total_affected_sqft" yaml:"total_affected_sqft"`
	PropertyType      string    `json:"property_type" yaml:"property_type"`
}

type policyDoc struct {
	CoverageA        float64  `json:"coverage_a" yaml:"coverage_a" validate:"gte=0"`
	CoverageB        float64  `json:"coverage_b" yaml:"coverage_b" validate:"gte=0"`
	CoverageC        float64  `json:"coverage_c" yaml:"coverage_c" validate:"gte=0"`
	CoverageD        float64  `json:"coverage_d" yaml:"coverage_d" validate:"gte=0"`
	Deductible       float64  `json:"deductible" yaml:"deductible"`
	WaterDamageLimit *float64 `json:"water_damage_limit" yaml:"water_damage_limit"`
	MoldLimit        *float64 `json:"mold_limit" yaml:"mold_limit"`
	ContentsLimit    *float64 `json:"contents_limit" yaml:"contents_limit"`
}

type lineItemDoc struct {
	Code        string   `json:"code" yaml:"code" validate:"required"`
	Description string   `json:"description" yaml:"description"`
	Quantity    float64  `json:"quantity" yaml:"quantity" validate:"gte=0"`
	Unit        string   `json:"unit" yaml:"unit"`
	UnitPrice   float64  `json:"unit_price" yaml:"unit_price" validate:"gte=0"`
	Total       *float64 `json:"total" yaml:"total"`
	Category    string   `json:"category" yaml:"category"`
	Room        string   `json:"room" yaml:"room"`
	Days        *int     `json:"days" yaml:"days"`
}

type claimDoc struct {
	ClaimID          string         `json:"claim_id" yaml:"claim_id" validate:"required"`
	ClaimDate        string         `json:"claim_date" yaml:"claim_date"`
	Policy           policyDoc      `json:"policy" yaml:"policy"`
	LineItems        []lineItemDoc  `json:"line_items" yaml:"line_items" validate:"required,min=1,dive"`
	PropertyDetails  propertyDoc    `json:"property_details" yaml:"property_details"`
	PolicyholderName string         `json:"policyholder_name" yaml:"policyholder_name"`
	GrossClaim       *float64       `json:"gross_claim" yaml:"gross_claim"`
	NetClaim         *float64       `json:"net_claim" yaml:"net_claim"`
	Metadata         map[string]any `json:"metadata" yaml:"metadata"`
}

// DecodeMap decodes a shape-equivalent map (e.g. parsed JSON) into a
// ClaimData, round-tripping through JSON so that snake_case keys line
// up with the documents' tags, then validating struct constraints
// before handing off to the validating pkg/claim constructors.
func DecodeMap(m map[string]any) (*claim.ClaimData, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(err, "loader: re-marshaling input map")
	}
	return DecodeJSON(bytes.NewReader(raw))
}

// DecodeJSON decodes a JSON document into a ClaimData.
func DecodeJSON(r io.Reader) (*claim.ClaimData, error) {
	var doc claimDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "loader: decoding JSON claim")
	}
	return buildClaim(doc)
}

// DecodeYAMLFile reads and decodes a YAML claim document from disk.
func DecodeYAMLFile(path string) (*claim.ClaimData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "loader: opening %s", path)
	}
	defer f.Close()

	var doc claimDoc
	if err := yaml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, errors.Wrapf(err, "loader: decoding YAML claim from %s", path)
	}
	return buildClaim(doc)
}

func buildClaim(doc claimDoc) (*claim.ClaimData, error) {
	if err := validate.Struct(doc); err != nil {
		return nil, errors.Wrap(err, "loader: claim document failed validation")
	}

	rooms := make([]claim.Room, 0, len(doc.PropertyDetails.AffectedRooms))
	for i, rd := range doc.PropertyDetails.AffectedRooms {
		room, err := claim.NewRoom(claim.RoomInput{
			Name:      rd.Name,
			Sqft:      rd.Sqft,
			RoomType:  rd.RoomType,
			FloorType: rd.FloorType,
			Affected:  rd.Affected,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "loader: affected_rooms[%d]", i)
		}
		rooms = append(rooms, room)
	}

	property, err := claim.NewPropertyDetails(claim.PropertyDetailsInput{
		AffectedRooms:     rooms,
		WaterCategory:     claim.WaterCategory(doc.PropertyDetails.WaterCategory),
		TotalAffectedSqft: doc.PropertyDetails.TotalAffectedSqft,
		PropertyType:      doc.PropertyDetails.PropertyType,
	})
	if err != nil {
		return nil, errors.Wrap(err, "loader: property_details")
	}

	policy, err := claim.NewPolicyCoverage(claim.PolicyCoverageInput{
		CoverageA:        claim.NewMoney(doc.Policy.CoverageA),
		CoverageB:        claim.NewMoney(doc.Policy.CoverageB),
		CoverageC:        claim.NewMoney(doc.Policy.CoverageC),
		CoverageD:        claim.NewMoney(doc.Policy.CoverageD),
		Deductible:       claim.NewMoney(doc.Policy.Deductible),
		WaterDamageLimit: moneyPtr(doc.Policy.WaterDamageLimit),
		MoldLimit:        moneyPtr(doc.Policy.MoldLimit),
		ContentsLimit:    moneyPtr(doc.Policy.ContentsLimit),
	})
	if err != nil {
		return nil, errors.Wrap(err, "loader: policy")
	}

	items := make([]claim.LineItem, 0, len(doc.LineItems))
	for i, ld := range doc.LineItems {
		li, err := claim.NewLineItem(claim.LineItemInput{
			Code:        ld.Code,
			Description: ld.Description,
			Quantity:    ld.Quantity,
			Unit:        ld.Unit,
			UnitPrice:   claim.NewMoney(ld.UnitPrice),
			Total:       moneyPtrFromFloat(ld.Total),
			Category:    ld.Category,
			Room:        ld.Room,
			Days:        ld.Days,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "loader: line_items[%d]", i)
		}
		items = append(items, li)
	}

	c, err := claim.NewClaimData(claim.ClaimDataInput{
		ClaimID:          doc.ClaimID,
		ClaimDate:        doc.ClaimDate,
		LineItems:        items,
		Property:         property,
		Policy:           policy,
		PolicyholderName: doc.PolicyholderName,
		Metadata:         doc.Metadata,
		GrossClaim:       moneyPtrFromFloat(doc.GrossClaim),
		NetClaim:         moneyPtrFromFloat(doc.NetClaim),
	})
	if err != nil {
		return nil, errors.Wrap(err, "loader: claim")
	}
	return &c, nil
}

func moneyPtr(f *float64) *claim.Money {
	if f == nil {
		return nil
	}
	m := claim.NewMoney(*f)
	return &m
}

func moneyPtrFromFloat(f *float64) *claim.Money {
	return moneyPtr(f)
}
