package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/streamcaps/internal/api/models"
)

func (s *Server) registerEncoderRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-encoders",
		Method:      http.MethodGet,
		Path:        "/api/encoders",
		Summary:     "List Encoders",
		Description: "List the video and audio encoder identities of the active catalog, optionally only those a container can carry",
		Tags:        []string{"encoders"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, func(_ context.Context, input *models.EncodersRequest) (*models.EncodersResponse, error) {
		catalog := s.catalog.Catalog().ForContainer(input.Container)

		data := models.EncodersData{
			Video: make([]string, 0),
			Audio: make([]string, 0),
		}
		for _, v := range catalog.VideoEncoders() {
			data.Video = append(data.Video, v.Identity)
		}
		for _, a := range catalog.AudioEncoders() {
			data.Audio = append(data.Audio, a.Identity)
		}
		return &models.EncodersResponse{Body: data}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "list-devices",
		Method:      http.MethodGet,
		Path:        "/api/devices",
		Summary:     "List Devices",
		Description: "List the capture devices present now",
		Tags:        []string{"devices"},
		Security:    withAuth(),
		Errors:      []int{401, 500},
	}, func(_ context.Context, _ *struct{}) (*models.DevicesResponse, error) {
		found, err := s.devices.Devices()
		if err != nil {
			s.logger.Error("Failed to enumerate capture devices", "error", err)
			return nil, toHTTPError(err)
		}

		data := models.DevicesData{Devices: make([]models.DeviceInfo, 0, len(found))}
		for _, d := range found {
			data.Devices = append(data.Devices, models.DeviceInfo{
				DeviceID:   d.DeviceID,
				DevicePath: d.DevicePath,
				DeviceName: d.DeviceName,
			})
		}
		return &models.DevicesResponse{Body: data}, nil
	})
}
