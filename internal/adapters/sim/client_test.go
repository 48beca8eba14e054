package sim

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avasek/sim-interact-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventJSON() string {
	frame := base64.StdEncoding.EncodeToString([]byte{10, 20, 30})
	return fmt.Sprintf(`{
		"metadata": {
			"agent": {"position": {"x": 1.5, "y": 0.9, "z": -2.25}},
			"objects": [
				{"objectId": "Fridge|1", "visible": true, "openable": true, "isopen": true, "receptacle": true},
				{"objectId": "Mug|2", "visible": false, "pickupable": true}
			],
			"inventoryObjects": [{"objectId": "Apple|3"}]
		},
		"frame": {"width": 1, "height": 1, "data": "%s"},
		"depth_frame": {"width": 2, "height": 1, "values": [0.5, 1.25]}
	}`, frame)
}

func TestStepSendsCommandAndDecodesEvent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/step", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "PutObject", req["action"])
		assert.Equal(t, "Apple|3", req["objectId"])
		assert.Equal(t, "Fridge|1", req["receptacleObjectId"])
		_, hasMagnitude := req["moveMagnitude"]
		assert.False(t, hasMagnitude, "zero magnitude must be omitted")

		_, _ = fmt.Fprint(w, eventJSON())
	}))
	defer server.Close()

	client, err := NewClient(server.URL, nil)
	require.NoError(t, err)

	event, err := client.Step(context.Background(), domain.Command{
		Action:             domain.ActionPutObject,
		ObjectID:           "Apple|3",
		ReceptacleObjectID: "Fridge|1",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.Position{X: 1.5, Y: 0.9, Z: -2.25}, event.Metadata.Agent.Position)
	require.Len(t, event.Metadata.Objects, 2)
	assert.True(t, event.Metadata.Objects[0].IsOpen)
	assert.False(t, event.Metadata.Objects[1].Visible)
	require.Len(t, event.Metadata.InventoryObjects, 1)
	assert.Equal(t, "Apple|3", event.Metadata.InventoryObjects[0].ObjectID)

	require.NotNil(t, event.Frame)
	assert.Equal(t, []uint8{10, 20, 30}, event.Frame.Pix)
	require.NotNil(t, event.DepthFrame)
	assert.Equal(t, []float64{0.5, 1.25}, event.DepthFrame.Values)
	assert.Nil(t, event.InstanceSegmentationFrame)
	assert.Nil(t, event.ClassSegmentationFrame)
}

func TestStepSendsMoveMagnitude(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "MoveAhead", req["action"])
		assert.Equal(t, 0.25, req["moveMagnitude"])
		_, _ = fmt.Fprint(w, `{"metadata": {"agent": {"position": {}}}}`)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, nil)
	require.NoError(t, err)

	_, err = client.Step(context.Background(), domain.Command{
		Action:        domain.ActionMoveAhead,
		MoveMagnitude: domain.MoveMagnitude,
	})
	require.NoError(t, err)
}

func TestResetHitsResetEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reset", r.URL.Path)
		_, _ = fmt.Fprint(w, eventJSON())
	}))
	defer server.Close()

	client, err := NewClient(server.URL+"/", nil)
	require.NoError(t, err)

	event, err := client.Reset(context.Background())
	require.NoError(t, err)
	require.Len(t, event.Metadata.Objects, 2)
}

func TestStepReportsUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, nil)
	require.NoError(t, err)

	_, err = client.Step(context.Background(), domain.Command{Action: domain.ActionLookUp})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
	assert.Contains(t, err.Error(), "502")
}

func TestStepRejectsMalformedFrame(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `{"metadata": {"agent": {"position": {}}}, "frame": {"width": 2, "height": 2, "data": "AAA="}}`)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, nil)
	require.NoError(t, err)

	_, err = client.Step(context.Background(), domain.Command{Action: domain.ActionLookUp})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frame")
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient("", nil)
	require.Error(t, err)
}
