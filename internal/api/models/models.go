// Package models holds the request and response bodies of the HTTP API.
package models

import (
	"github.com/smazurov/streamcaps/internal/capability"
	"github.com/smazurov/streamcaps/internal/capture"
	"github.com/smazurov/streamcaps/internal/config"
	"github.com/smazurov/streamcaps/internal/validation"
)

// Health check models
type HealthData struct {
	Status  string `json:"status" example:"ok" doc:"Service status"`
	Message string `json:"message" example:"API is healthy" doc:"Status message"`
}

type HealthResponse struct {
	Body HealthData
}

// Version models
type VersionData struct {
	Version   string `json:"version" example:"1.2.0" doc:"Application version"`
	GitCommit string `json:"git_commit" example:"a1b2c3d" doc:"Git commit hash"`
	BuildDate string `json:"build_date" example:"2025-01-27T10:30:00Z" doc:"Build timestamp"`
	BuildID   string `json:"build_id" example:"42" doc:"Build identifier"`
	GoVersion string `json:"go_version" example:"go1.24.11" doc:"Go runtime version"`
	Compiler  string `json:"compiler" example:"gc" doc:"Go compiler"`
	Platform  string `json:"platform" example:"linux/arm64" doc:"OS/architecture"`
}

type VersionResponse struct {
	Body VersionData
}

// Encoder models
type EncodersRequest struct {
	Container string `query:"container" example:"mpegts" doc:"Only list encoders this container can carry"`
}

type EncodersData struct {
	Video []string `json:"video" example:"[\"video/avc\",\"video/hevc\"]" doc:"Video encoder identities in catalog order"`
	Audio []string `json:"audio" example:"[\"audio/mp4a-latm\"]" doc:"Audio encoder identities in catalog order"`
}

type EncodersResponse struct {
	Body EncodersData
}

// Device models
type DeviceInfo struct {
	DeviceID   string `json:"device_id" example:"usb-046d_HD_Pro_Webcam_C920-video-index0" doc:"Stable device identifier"`
	DevicePath string `json:"device_path" example:"/dev/video0" doc:"Device node"`
	DeviceName string `json:"device_name" example:"HD Pro Webcam C920" doc:"Driver card name"`
}

type DevicesData struct {
	Devices []DeviceInfo `json:"devices" doc:"Capture devices present now"`
}

type DevicesResponse struct {
	Body DevicesData
}

// Capability models
type VideoCapabilitiesRequest struct {
	Encoder  string `query:"encoder" required:"true" example:"video/avc" doc:"Video encoder identity"`
	DeviceID string `query:"device_id" example:"usb-046d_HD_Pro_Webcam_C920-video-index0" doc:"Also resolve framerates for this device"`
}

type VideoCapabilities struct {
	Encoder     string                      `json:"encoder" example:"video/avc"`
	Resolutions []capability.Resolution     `json:"resolutions" doc:"Native device resolutions the encoder accepts, in device order"`
	Framerates  []capability.FramerateRange `json:"framerates,omitempty" doc:"Device framerate ranges the encoder fully supports"`
	Bitrate     capability.BitrateRange     `json:"bitrate" doc:"Encoder bitrate range in bits per second"`
}

type VideoCapabilitiesResponse struct {
	Body VideoCapabilities
}

type AudioCapabilitiesRequest struct {
	Encoder string `query:"encoder" required:"true" example:"audio/opus" doc:"Audio encoder identity"`
}

type AudioCapabilities struct {
	Encoder     string                  `json:"encoder" example:"audio/opus"`
	Channels    capability.ChannelRange `json:"channels" doc:"Supported channel counts"`
	Bitrate     capability.BitrateRange `json:"bitrate" doc:"Encoder bitrate range in bits per second"`
	SampleRates []int                   `json:"sample_rates" example:"[48000]" doc:"Accepted sample rates in Hz, provider order"`
}

type AudioCapabilitiesResponse struct {
	Body AudioCapabilities
}

// Session models
type SessionRequest struct {
	Body config.SessionConfig
}

type ValidationResponse struct {
	Body validation.Report
}

type SessionIDRequest struct {
	ID string `path:"id" example:"front-cam" doc:"Session identifier"`
}

type VideoSettingsData struct {
	Encoder    string                  `json:"encoder" example:"video/avc"`
	Resolution capability.Resolution   `json:"resolution"`
	Framerate  int                     `json:"framerate" example:"30"`
	Bitrate    int                     `json:"bitrate" example:"2500000"`
	Bitrates   capability.BitrateRange `json:"bitrate_range"`
}

type AudioSettingsData struct {
	Encoder    string                  `json:"encoder" example:"audio/opus"`
	Channels   int                     `json:"channels" example:"2"`
	SampleRate int                     `json:"sample_rate" example:"48000"`
	Bitrate    int                     `json:"bitrate" example:"128000"`
	Bitrates   capability.BitrateRange `json:"bitrate_range"`
}

type SessionData struct {
	ID         string             `json:"id" example:"front-cam"`
	DeviceID   string             `json:"device_id" example:"usb-046d_HD_Pro_Webcam_C920-video-index0"`
	DevicePath string             `json:"device_path" example:"/dev/video0"`
	Container  string             `json:"container,omitempty" example:"mpegts"`
	State      string             `json:"state" enum:"active,device_lost" doc:"device_lost once the capture device disappeared"`
	CreatedAt  string             `json:"created_at" example:"2025-01-27T10:30:00Z"`
	Video      VideoSettingsData  `json:"video"`
	Audio      *AudioSettingsData `json:"audio,omitempty"`
}

type SessionResponse struct {
	Body SessionData
}

type SessionListData struct {
	Sessions []SessionData `json:"sessions"`
	Count    int           `json:"count" example:"1"`
}

type SessionListResponse struct {
	Body SessionListData
}

type BitrateUpdateData struct {
	Video *int `json:"video,omitempty" example:"4000000" doc:"New video bitrate in bits per second"`
	Audio *int `json:"audio,omitempty" example:"96000" doc:"New audio bitrate in bits per second"`
}

type BitrateUpdateRequest struct {
	ID   string `path:"id" example:"front-cam" doc:"Session identifier"`
	Body BitrateUpdateData
}

// Camera control models
type CameraData struct {
	SessionID string                `json:"session_id" example:"front-cam"`
	Focus     *int                  `json:"focus,omitempty" example:"40" doc:"Absolute focus, absent when unsupported"`
	AutoFocus *bool                 `json:"auto_focus,omitempty" doc:"Continuous auto focus, absent when unsupported"`
	Zoom      *int                  `json:"zoom,omitempty" example:"150" doc:"Absolute zoom, absent when unsupported"`
	Controls  []capture.ControlInfo `json:"controls" doc:"Every supported control with range and value"`
}

type CameraResponse struct {
	Body CameraData
}

type CameraUpdateData struct {
	Focus     *int  `json:"focus,omitempty" example:"40" doc:"Absolute focus"`
	AutoFocus *bool `json:"auto_focus,omitempty" doc:"Continuous auto focus"`
	Zoom      *int  `json:"zoom,omitempty" example:"150" doc:"Absolute zoom"`
}

type CameraUpdateRequest struct {
	ID   string `path:"id" example:"front-cam" doc:"Session identifier"`
	Body CameraUpdateData
}

// Logging models
type LogLevelRequest struct {
	Module string `path:"module" example:"capture" doc:"Logger module name"`
	Body   struct {
		Level string `json:"level" enum:"debug,info,warn,error" example:"debug" doc:"New level"`
	}
}

type LogLevelData struct {
	Module string `json:"module" example:"capture"`
	Level  string `json:"level" example:"debug"`
}

type LogLevelResponse struct {
	Body LogLevelData
}
