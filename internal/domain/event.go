package domain

import "fmt"

// Position of the agent in world coordinates.
type Position struct {
	X float64
	Y float64
	Z float64
}

func (p Position) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

type Agent struct {
	Position Position
}

// Object describes one scene object as reported by the controller.
// Read-only input to affordance enumeration.
type Object struct {
	ObjectID   string
	Visible    bool
	Openable   bool
	IsOpen     bool
	Toggleable bool
	Pickupable bool
	Receptacle bool
}

type InventoryObject struct {
	ObjectID string
}

type Metadata struct {
	Agent            Agent
	Objects          []Object
	InventoryObjects []InventoryObject
}

// Image is an 8-bit three-channel raster in row-major BGR order, the
// channel ordering the simulator produces.
type Image struct {
	Width  int
	Height int
	Pix    []uint8
}

// Depth is a row-major 2-D array of distances in meters.
type Depth struct {
	Width  int
	Height int
	Values []float64
}

// Event is the controller's response to a step: metadata plus
// whichever sensor frames the simulator was initialized to produce.
// Absent frames are nil.
type Event struct {
	Metadata                  Metadata
	Frame                     *Image
	InstanceSegmentationFrame *Image
	ClassSegmentationFrame    *Image
	DepthFrame                *Depth
}
