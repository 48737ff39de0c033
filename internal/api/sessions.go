package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/streamcaps/internal/api/models"
	"github.com/smazurov/streamcaps/internal/session"
)

func (s *Server) registerSessionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "validate-session",
		Method:      http.MethodPost,
		Path:        "/api/sessions/validate",
		Summary:     "Validate Session",
		Description: "Check a session configuration against the encoder catalog and the capture devices without opening anything",
		Tags:        []string{"sessions"},
		Security:    withAuth(),
		Errors:      []int{401, 404, 503},
	}, func(_ context.Context, input *models.SessionRequest) (*models.ValidationResponse, error) {
		report, err := s.validator.Validate(input.Body)
		if err != nil {
			return nil, toHTTPError(err)
		}
		return &models.ValidationResponse{Body: report}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-session",
		Method:        http.MethodPost,
		Path:          "/api/sessions",
		Summary:       "Create Session",
		Description:   "Validate a session, open its capture backend and register it",
		Tags:          []string{"sessions"},
		DefaultStatus: http.StatusCreated,
		Security:      withAuth(),
		Errors:        []int{401, 404, 409, 422, 503},
	}, func(_ context.Context, input *models.SessionRequest) (*models.SessionResponse, error) {
		sess, err := s.sessions.Create(input.Body)
		if err != nil {
			s.logger.Warn("Failed to create session", "session_id", input.Body.ID, "error", err)
			return nil, toHTTPError(err)
		}
		return &models.SessionResponse{Body: toSessionData(sess)}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "list-sessions",
		Method:      http.MethodGet,
		Path:        "/api/sessions",
		Summary:     "List Sessions",
		Description: "List registered sessions sorted by ID",
		Tags:        []string{"sessions"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, func(_ context.Context, _ *struct{}) (*models.SessionListResponse, error) {
		list := s.sessions.List()
		data := models.SessionListData{
			Sessions: make([]models.SessionData, 0, len(list)),
			Count:    len(list),
		}
		for _, sess := range list {
			data.Sessions = append(data.Sessions, toSessionData(sess))
		}
		return &models.SessionListResponse{Body: data}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-session",
		Method:      http.MethodGet,
		Path:        "/api/sessions/{id}",
		Summary:     "Get Session",
		Description: "Get a session's streamer settings and capture state",
		Tags:        []string{"sessions"},
		Security:    withAuth(),
		Errors:      []int{401, 404},
	}, func(_ context.Context, input *models.SessionIDRequest) (*models.SessionResponse, error) {
		sess, err := s.sessions.Get(input.ID)
		if err != nil {
			return nil, toHTTPError(err)
		}
		return &models.SessionResponse{Body: toSessionData(sess)}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID:   "delete-session",
		Method:        http.MethodDelete,
		Path:          "/api/sessions/{id}",
		Summary:       "Delete Session",
		Description:   "Close the session's capture backend and forget it",
		Tags:          []string{"sessions"},
		DefaultStatus: http.StatusNoContent,
		Security:      withAuth(),
		Errors:        []int{401, 404},
	}, func(_ context.Context, input *models.SessionIDRequest) (*struct{}, error) {
		if err := s.sessions.Delete(input.ID); err != nil {
			if errors.Is(err, session.ErrNotFound) {
				return nil, toHTTPError(err)
			}
			// The session is gone even when the device refused to close.
			s.logger.Warn("Session deleted with errors", "session_id", input.ID, "error", err)
		}
		return nil, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "update-session-bitrate",
		Method:      http.MethodPatch,
		Path:        "/api/sessions/{id}/bitrate",
		Summary:     "Update Bitrate",
		Description: "Change the target video or audio bitrate of a running session within the encoder's range",
		Tags:        []string{"sessions"},
		Security:    withAuth(),
		Errors:      []int{401, 404, 422},
	}, func(_ context.Context, input *models.BitrateUpdateRequest) (*models.SessionResponse, error) {
		sess, err := s.sessions.Get(input.ID)
		if err != nil {
			return nil, toHTTPError(err)
		}
		st := sess.Settings()

		if input.Body.Video != nil {
			if err := st.Video().SetBitrate(*input.Body.Video); err != nil {
				return nil, toHTTPError(err)
			}
		}
		if input.Body.Audio != nil {
			audio := st.Audio()
			if audio == nil {
				return nil, huma.Error422UnprocessableEntity("session has no audio")
			}
			if err := audio.SetBitrate(*input.Body.Audio); err != nil {
				return nil, toHTTPError(err)
			}
		}

		s.logger.Info("Session bitrate updated", "session_id", sess.ID, "video", st.Video().Bitrate())
		return &models.SessionResponse{Body: toSessionData(sess)}, nil
	})
}

func toSessionData(sess *session.Session) models.SessionData {
	st := sess.Settings()
	video := st.Video()

	data := models.SessionData{
		ID:         sess.ID,
		DeviceID:   sess.Config.Device,
		DevicePath: sess.DevicePath,
		Container:  sess.Config.Container,
		State:      sess.State(),
		CreatedAt:  sess.CreatedAt.UTC().Format(time.RFC3339),
		Video: models.VideoSettingsData{
			Encoder:    video.Encoder(),
			Resolution: video.Resolution(),
			Framerate:  video.Framerate(),
			Bitrate:    video.Bitrate(),
			Bitrates:   video.BitrateRange(),
		},
	}
	if audio := st.Audio(); audio != nil {
		data.Audio = &models.AudioSettingsData{
			Encoder:    audio.Encoder(),
			Channels:   audio.Channels(),
			SampleRate: audio.SampleRate(),
			Bitrate:    audio.Bitrate(),
			Bitrates:   audio.BitrateRange(),
		}
	}
	return data
}
