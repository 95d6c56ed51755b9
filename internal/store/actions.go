package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"flowstate/internal/change"
	"flowstate/internal/domain"
)

// ActionType names an editor operation
type ActionType string

const (
	ActionToggleMinimalistic ActionType = "toggleMinimalistic"
	ActionToggleLightTheme   ActionType = "toggleLightTheme"
	ActionSetSelectedNodeID  ActionType = "setSelectedNodeId"
	ActionSetHoveredNodeID   ActionType = "setHoveredNodeId"
	ActionSetNodes           ActionType = "setNodes"
	ActionUpdateNodes        ActionType = "updateNodes"
	ActionUpdateEdges        ActionType = "updateEdges"
	ActionSetEdges           ActionType = "setEdges"
	ActionSetSelectedEdgeID  ActionType = "setSelectedEdgeId"
	ActionSetHoveredEdgeID   ActionType = "setHoveredEdgeId"
	ActionSetZoom            ActionType = "setZoom"
	ActionZoomIn             ActionType = "zoomIn"
	ActionZoomOut            ActionType = "zoomOut"
	ActionAddNewNode         ActionType = "addNewNode"
	ActionSetViewport        ActionType = "setViewport"
	ActionSetIsSheetOpen     ActionType = "setIsSheetOpen"
)

// ActionTypes lists every action Dispatch accepts
func ActionTypes() []ActionType {
	return []ActionType{
		ActionToggleMinimalistic, ActionToggleLightTheme,
		ActionSetSelectedNodeID, ActionSetHoveredNodeID,
		ActionSetNodes, ActionUpdateNodes, ActionUpdateEdges, ActionSetEdges,
		ActionSetSelectedEdgeID, ActionSetHoveredEdgeID,
		ActionSetZoom, ActionZoomIn, ActionZoomOut,
		ActionAddNewNode, ActionSetViewport, ActionSetIsSheetOpen,
	}
}

// Dispatch errors
var (
	ErrUnknownAction  = errors.New("unknown action")
	ErrInvalidPayload = errors.New("invalid action payload")
)

// Action is a named operation with a JSON payload
type Action struct {
	Type    ActionType      `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewAction builds an action, encoding payload as JSON. A nil payload
// produces an action without one.
func NewAction(t ActionType, payload any) (Action, error) {
	if payload == nil {
		return Action{Type: t}, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Action{}, fmt.Errorf("encode %s payload: %w", t, err)
	}
	return Action{Type: t, Payload: raw}, nil
}

// Dispatch applies a named action. The store is unchanged when the action
// is unknown, its payload does not decode, or a change batch is rejected.
func (s *Store) Dispatch(a Action) error {
	switch a.Type {
	case ActionToggleMinimalistic:
		s.ToggleMinimalistic()
	case ActionToggleLightTheme:
		s.ToggleLightTheme()
	case ActionZoomIn:
		s.ZoomIn()
	case ActionZoomOut:
		s.ZoomOut()
	case ActionAddNewNode:
		s.AddNewNode()

	case ActionSetSelectedNodeID, ActionSetHoveredNodeID,
		ActionSetSelectedEdgeID, ActionSetHoveredEdgeID:
		var id *string
		if err := decodePayload(a, &id); err != nil {
			return err
		}
		s.setID(a.Type, deref(id))

	case ActionSetNodes:
		var nodes []domain.Node
		if err := decodePayload(a, &nodes); err != nil {
			return err
		}
		s.SetNodes(nodes)

	case ActionSetEdges:
		var edges []domain.Edge
		if err := decodePayload(a, &edges); err != nil {
			return err
		}
		s.SetEdges(edges)

	case ActionUpdateNodes:
		var changes []change.NodeChange
		if err := decodePayload(a, &changes); err != nil {
			return err
		}
		return s.UpdateNodes(changes)

	case ActionUpdateEdges:
		var changes []change.EdgeChange
		if err := decodePayload(a, &changes); err != nil {
			return err
		}
		return s.UpdateEdges(changes)

	case ActionSetZoom:
		var zoom *float64
		if err := decodePayload(a, &zoom); err != nil {
			return err
		}
		if zoom == nil {
			return fmt.Errorf("%w: %s requires a number", ErrInvalidPayload, a.Type)
		}
		s.SetZoom(*zoom)

	case ActionSetViewport:
		var patch domain.ViewportPatch
		if err := decodePayload(a, &patch); err != nil {
			return err
		}
		s.SetViewport(patch)

	case ActionSetIsSheetOpen:
		var open *bool
		if err := decodePayload(a, &open); err != nil {
			return err
		}
		if open == nil {
			return fmt.Errorf("%w: %s requires a boolean", ErrInvalidPayload, a.Type)
		}
		s.SetIsSheetOpen(*open)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
	return nil
}

func (s *Store) setID(t ActionType, id string) {
	switch t {
	case ActionSetSelectedNodeID:
		s.SetSelectedNodeID(id)
	case ActionSetHoveredNodeID:
		s.SetHoveredNodeID(id)
	case ActionSetSelectedEdgeID:
		s.SetSelectedEdgeID(id)
	case ActionSetHoveredEdgeID:
		s.SetHoveredEdgeID(id)
	}
}

// decodePayload decodes the action payload into v. A missing payload
// decodes as JSON null.
func decodePayload(a Action, v any) error {
	payload := bytes.TrimSpace(a.Payload)
	if len(payload) == 0 {
		payload = []byte("null")
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidPayload, a.Type, err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
