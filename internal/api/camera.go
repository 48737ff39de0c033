package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/streamcaps/internal/api/models"
	"github.com/smazurov/streamcaps/internal/capability"
	"github.com/smazurov/streamcaps/internal/capture"
)

func (s *Server) registerCameraRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-session-camera",
		Method:      http.MethodGet,
		Path:        "/api/sessions/{id}/camera",
		Summary:     "Get Camera Controls",
		Description: "Read the live focus, auto focus and zoom of a session's capture device",
		Tags:        []string{"camera"},
		Security:    withAuth(),
		Errors:      []int{401, 404, 503},
	}, func(_ context.Context, input *models.SessionIDRequest) (*models.CameraResponse, error) {
		controls, err := s.sessionControls(input.ID)
		if err != nil {
			return nil, toHTTPError(err)
		}
		data, err := cameraData(input.ID, controls)
		if err != nil {
			return nil, toHTTPError(err)
		}
		return &models.CameraResponse{Body: data}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "update-session-camera",
		Method:      http.MethodPatch,
		Path:        "/api/sessions/{id}/camera",
		Summary:     "Update Camera Controls",
		Description: "Write focus, auto focus or zoom on a session's capture device. Every value is range checked before anything is written; auto focus is applied first.",
		Tags:        []string{"camera"},
		Security:    withAuth(),
		Errors:      []int{401, 404, 422, 503},
	}, func(_ context.Context, input *models.CameraUpdateRequest) (*models.CameraResponse, error) {
		controls, err := s.sessionControls(input.ID)
		if err != nil {
			return nil, toHTTPError(err)
		}
		if err := checkCameraUpdate(controls, input.Body); err != nil {
			return nil, toHTTPError(err)
		}

		if input.Body.AutoFocus != nil {
			if err := controls.SetAutoFocus(*input.Body.AutoFocus); err != nil {
				return nil, toHTTPError(err)
			}
		}
		if input.Body.Focus != nil {
			if err := controls.SetFocus(*input.Body.Focus); err != nil {
				return nil, toHTTPError(err)
			}
		}
		if input.Body.Zoom != nil {
			if err := controls.SetZoom(*input.Body.Zoom); err != nil {
				return nil, toHTTPError(err)
			}
		}

		data, err := cameraData(input.ID, controls)
		if err != nil {
			return nil, toHTTPError(err)
		}
		return &models.CameraResponse{Body: data}, nil
	})
}

// checkCameraUpdate rejects the whole update when any value is outside its
// control's range, so a rejected request leaves the device untouched.
func checkCameraUpdate(controls capture.ControlSettings, body models.CameraUpdateData) error {
	if body.Focus != nil {
		if err := checkControl(capture.ControlFocusAbsolute, controls.FocusRange, *body.Focus); err != nil {
			return err
		}
	}
	if body.Zoom != nil {
		if err := checkControl(capture.ControlZoomAbsolute, controls.ZoomRange, *body.Zoom); err != nil {
			return err
		}
	}
	return nil
}

func checkControl(control capture.Control, rangeOf func() (capability.Range, error), value int) error {
	r, err := rangeOf()
	if err != nil {
		return err
	}
	if !r.Contains(value) {
		return fmt.Errorf("%w: %s=%d outside %s", capture.ErrControlOutOfRange, control, value, r)
	}
	return nil
}

func (s *Server) sessionControls(id string) (capture.ControlSettings, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	return sess.Settings().ControlSettings()
}

func cameraData(id string, controls capture.ControlSettings) (models.CameraData, error) {
	data := models.CameraData{SessionID: id}

	focus, err := controls.Focus()
	if data.Focus, err = supported(focus, err); err != nil {
		return data, err
	}
	auto, err := controls.AutoFocus()
	if data.AutoFocus, err = supported(auto, err); err != nil {
		return data, err
	}
	zoom, err := controls.Zoom()
	if data.Zoom, err = supported(zoom, err); err != nil {
		return data, err
	}

	list, err := controls.Controls()
	if err != nil {
		return data, err
	}
	data.Controls = nonNil(list)
	return data, nil
}

// supported drops values of controls the device does not have.
func supported[T any](v T, err error) (*T, error) {
	if errors.Is(err, capture.ErrControlUnsupported) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}
