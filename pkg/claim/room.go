package claim

import "github.com/pkg/errors"

// Room describes one affected room in a property. Immutable once
// constructed.
type Room struct {
	name      string
	sqft      float64
	roomType  string
	floorType string // empty if unset
	affected  bool
}

// RoomInput is the set of fields accepted by NewRoom.
type RoomInput struct {
	Name      string
	Sqft      float64
	RoomType  string // defaults to "standard"
	FloorType string
	Affected  *bool // defaults to true when nil
}

// NewRoom validates and constructs a Room.
func NewRoom(in RoomInput) (Room, error) {
	if in.Name == "" {
		return Room{}, errors.New("room: name is required")
	}
	if in.Sqft <= 0 {
		return Room{}, errors.Errorf("room %q: sqft must be > 0, got %v", in.Name, in.Sqft)
	}

	roomType := in.RoomType
	if roomType == "" {
		roomType = "standard"
	}

	affected := true
	if in.Affected != nil {
		affected = *in.Affected
	}

	return Room{
		name:      in.Name,
		sqft:      in.Sqft,
		roomType:  roomType,
		floorType: in.FloorType,
		affected:  affected,
	}, nil
}

// Name returns the room's name.
func (r Room) Name() string { return r.name }

// Sqft returns the room's square footage.
func (r Room) Sqft() float64 { return r.sqft }

// RoomType returns the room's type, defaulting to "standard".
func (r Room) RoomType() string { return r.roomType }

// FloorType returns the room's flooring type, or "" if unset.
func (r Room) FloorType() string { return r.floorType }

// Affected reports whether the room is affected by the loss.
func (r Room) Affected() bool { return r.affected }
