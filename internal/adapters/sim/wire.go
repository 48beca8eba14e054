package sim

import (
	"encoding/base64"
	"fmt"

	"github.com/avasek/sim-interact-cli/internal/domain"
)

// Wire schema for the simulator's HTTP step API. Frame buffers travel
// base64-encoded, row-major, with dimensions alongside.

type stepRequest struct {
	Action             string  `json:"action"`
	MoveMagnitude      float64 `json:"moveMagnitude,omitempty"`
	ObjectID           string  `json:"objectId,omitempty"`
	ReceptacleObjectID string  `json:"receptacleObjectId,omitempty"`
}

type eventResponse struct {
	Metadata                  metadataPayload `json:"metadata"`
	Frame                     *imagePayload   `json:"frame"`
	InstanceSegmentationFrame *imagePayload   `json:"instance_segmentation_frame"`
	ClassSegmentationFrame    *imagePayload   `json:"class_segmentation_frame"`
	DepthFrame                *depthPayload   `json:"depth_frame"`
}

type metadataPayload struct {
	Agent            agentPayload       `json:"agent"`
	Objects          []objectPayload    `json:"objects"`
	InventoryObjects []objectRefPayload `json:"inventoryObjects"`
}

type agentPayload struct {
	Position positionPayload `json:"position"`
}

type positionPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type objectPayload struct {
	ObjectID   string `json:"objectId"`
	Visible    bool   `json:"visible"`
	Openable   bool   `json:"openable"`
	IsOpen     bool   `json:"isopen"`
	Toggleable bool   `json:"toggleable"`
	Pickupable bool   `json:"pickupable"`
	Receptacle bool   `json:"receptacle"`
}

type objectRefPayload struct {
	ObjectID string `json:"objectId"`
}

type imagePayload struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Data   string `json:"data"`
}

type depthPayload struct {
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Values []float64 `json:"values"`
}

func (p eventResponse) toDomain() (domain.Event, error) {
	event := domain.Event{
		Metadata: domain.Metadata{
			Agent: domain.Agent{
				Position: domain.Position{
					X: p.Metadata.Agent.Position.X,
					Y: p.Metadata.Agent.Position.Y,
					Z: p.Metadata.Agent.Position.Z,
				},
			},
		},
	}

	for _, o := range p.Metadata.Objects {
		event.Metadata.Objects = append(event.Metadata.Objects, domain.Object{
			ObjectID:   o.ObjectID,
			Visible:    o.Visible,
			Openable:   o.Openable,
			IsOpen:     o.IsOpen,
			Toggleable: o.Toggleable,
			Pickupable: o.Pickupable,
			Receptacle: o.Receptacle,
		})
	}
	for _, o := range p.Metadata.InventoryObjects {
		event.Metadata.InventoryObjects = append(event.Metadata.InventoryObjects, domain.InventoryObject{
			ObjectID: o.ObjectID,
		})
	}

	var err error
	if event.Frame, err = decodeImage("frame", p.Frame); err != nil {
		return domain.Event{}, err
	}
	if event.InstanceSegmentationFrame, err = decodeImage("instance_segmentation_frame", p.InstanceSegmentationFrame); err != nil {
		return domain.Event{}, err
	}
	if event.ClassSegmentationFrame, err = decodeImage("class_segmentation_frame", p.ClassSegmentationFrame); err != nil {
		return domain.Event{}, err
	}
	if p.DepthFrame != nil {
		if len(p.DepthFrame.Values) != p.DepthFrame.Width*p.DepthFrame.Height {
			return domain.Event{}, fmt.Errorf("depth_frame: %d values for %dx%d frame",
				len(p.DepthFrame.Values), p.DepthFrame.Width, p.DepthFrame.Height)
		}
		event.DepthFrame = &domain.Depth{
			Width:  p.DepthFrame.Width,
			Height: p.DepthFrame.Height,
			Values: p.DepthFrame.Values,
		}
	}

	return event, nil
}

func decodeImage(name string, p *imagePayload) (*domain.Image, error) {
	if p == nil {
		return nil, nil
	}
	pix, err := base64.StdEncoding.DecodeString(p.Data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	if len(pix) != p.Width*p.Height*3 {
		return nil, fmt.Errorf("%s: %d bytes for %dx%d frame", name, len(pix), p.Width, p.Height)
	}
	return &domain.Image{Width: p.Width, Height: p.Height, Pix: pix}, nil
}

func toStepRequest(cmd domain.Command) stepRequest {
	return stepRequest{
		Action:             string(cmd.Action),
		MoveMagnitude:      cmd.MoveMagnitude,
		ObjectID:           cmd.ObjectID,
		ReceptacleObjectID: cmd.ReceptacleObjectID,
	}
}
