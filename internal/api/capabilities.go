package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/streamcaps/internal/api/models"
	"github.com/smazurov/streamcaps/internal/capability"
	"github.com/smazurov/streamcaps/internal/metrics"
)

func (s *Server) registerCapabilityRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-video-capabilities",
		Method:      http.MethodGet,
		Path:        "/api/capabilities/video",
		Summary:     "Video Capabilities",
		Description: "Resolve the resolutions, framerates and bitrates a video encoder supports on the capture devices present now, or on one device when device_id is set",
		Tags:        []string{"capabilities"},
		Security:    withAuth(),
		Errors:      []int{401, 404, 503},
	}, func(_ context.Context, input *models.VideoCapabilitiesRequest) (*models.VideoCapabilitiesResponse, error) {
		var resolutions []capability.Resolution
		var err error
		if input.DeviceID != "" {
			resolutions, err = s.resolver.SupportedDeviceResolutions(input.Encoder, input.DeviceID)
		} else {
			resolutions, err = s.resolver.SupportedResolutions(input.Encoder)
		}
		metrics.ObserveResolverRequest("supported_resolutions", err)
		if err != nil {
			return nil, toHTTPError(err)
		}

		bitrate, err := s.resolver.SupportedVideoBitrates(input.Encoder)
		metrics.ObserveResolverRequest("supported_video_bitrates", err)
		if err != nil {
			return nil, toHTTPError(err)
		}

		var framerates []capability.FramerateRange
		if input.DeviceID != "" {
			framerates, err = s.resolver.SupportedFramerates(input.Encoder, input.DeviceID)
			metrics.ObserveResolverRequest("supported_framerates", err)
			if err != nil {
				return nil, toHTTPError(err)
			}
		}

		return &models.VideoCapabilitiesResponse{
			Body: models.VideoCapabilities{
				Encoder:     input.Encoder,
				Resolutions: nonNil(resolutions),
				Framerates:  framerates,
				Bitrate:     bitrate,
			},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-audio-capabilities",
		Method:      http.MethodGet,
		Path:        "/api/capabilities/audio",
		Summary:     "Audio Capabilities",
		Description: "Resolve the channel counts, bitrates and sample rates an audio encoder supports",
		Tags:        []string{"capabilities"},
		Security:    withAuth(),
		Errors:      []int{401, 404},
	}, func(_ context.Context, input *models.AudioCapabilitiesRequest) (*models.AudioCapabilitiesResponse, error) {
		channels, err := s.resolver.SupportedChannelCounts(input.Encoder)
		metrics.ObserveResolverRequest("supported_channel_counts", err)
		if err != nil {
			return nil, toHTTPError(err)
		}
		bitrate, err := s.resolver.SupportedAudioBitrates(input.Encoder)
		metrics.ObserveResolverRequest("supported_audio_bitrates", err)
		if err != nil {
			return nil, toHTTPError(err)
		}
		rates, err := s.resolver.SupportedSampleRates(input.Encoder)
		metrics.ObserveResolverRequest("supported_sample_rates", err)
		if err != nil {
			return nil, toHTTPError(err)
		}

		return &models.AudioCapabilitiesResponse{
			Body: models.AudioCapabilities{
				Encoder:     input.Encoder,
				Channels:    channels,
				Bitrate:     bitrate,
				SampleRates: nonNil(rates),
			},
		}, nil
	})
}

// nonNil keeps empty lists serialized as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
