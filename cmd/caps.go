package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/smazurov/streamcaps/internal/capability"
	"github.com/spf13/cobra"
)

// VideoCaps is the resolved capability space of a video encoder.
type VideoCaps struct {
	Encoder     string                      `json:"encoder"`
	Resolutions []capability.Resolution     `json:"resolutions"`
	Framerates  []capability.FramerateRange `json:"framerates,omitempty"`
	Bitrate     capability.BitrateRange     `json:"bitrate"`
}

// AudioCaps is the resolved capability space of an audio encoder.
type AudioCaps struct {
	Encoder     string                  `json:"encoder"`
	Channels    capability.ChannelRange `json:"channels"`
	Bitrate     capability.BitrateRange `json:"bitrate"`
	SampleRates []int                   `json:"sample_rates"`
}

// CreateCapsCmd creates the caps command.
func CreateCapsCmd() *cobra.Command {
	var (
		catalogPath string
		encoder     string
		device      string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "caps",
		Short: "Print the capability space of an encoder on this machine",
		Long: `Resolves what an encoder supports given the capture devices present now. Video encoders ` +
			`report resolutions and bitrates, plus framerates when --device is set. Audio encoders ` +
			`report channels, bitrates and sample rates. Without --encoder every encoder is listed.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolver, _, err := loadResolver(catalogPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if encoder == "" {
				fmt.Fprintf(out, "video: %s\n", strings.Join(resolver.VideoEncoders(), ", "))
				fmt.Fprintf(out, "audio: %s\n", strings.Join(resolver.AudioEncoders(), ", "))
				return nil
			}

			caps, err := resolveCaps(resolver, encoder, device)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(caps)
			}
			printCaps(out, caps)
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Encoder catalog file (default: built-in)")
	cmd.Flags().StringVarP(&encoder, "encoder", "e", "", "Encoder MIME identity, e.g. video/avc")
	cmd.Flags().StringVarP(&device, "device", "d", "", "Capture device ID or path for framerates")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

// resolveCaps returns VideoCaps or AudioCaps depending on which provider knows encoder.
func resolveCaps(r *capability.Resolver, encoder, device string) (any, error) {
	if _, err := r.SupportedAudioBitrates(encoder); err == nil {
		caps := AudioCaps{Encoder: encoder}
		if caps.Channels, err = r.SupportedChannelCounts(encoder); err != nil {
			return nil, err
		}
		if caps.Bitrate, err = r.SupportedAudioBitrates(encoder); err != nil {
			return nil, err
		}
		if caps.SampleRates, err = r.SupportedSampleRates(encoder); err != nil {
			return nil, err
		}
		return caps, nil
	}

	caps := VideoCaps{Encoder: encoder}
	var err error
	if device != "" {
		caps.Resolutions, err = r.SupportedDeviceResolutions(encoder, device)
	} else {
		caps.Resolutions, err = r.SupportedResolutions(encoder)
	}
	if err != nil {
		return nil, err
	}
	if caps.Bitrate, err = r.SupportedVideoBitrates(encoder); err != nil {
		return nil, err
	}
	if device != "" {
		if caps.Framerates, err = r.SupportedFramerates(encoder, device); err != nil {
			return nil, err
		}
	}
	return caps, nil
}

func printCaps(w io.Writer, caps any) {
	switch c := caps.(type) {
	case VideoCaps:
		res := make([]string, len(c.Resolutions))
		for i, r := range c.Resolutions {
			res[i] = r.String()
		}
		fmt.Fprintf(w, "encoder:     %s\n", c.Encoder)
		fmt.Fprintf(w, "resolutions: %s\n", strings.Join(res, ", "))
		if c.Framerates != nil {
			rates := make([]string, len(c.Framerates))
			for i, r := range c.Framerates {
				rates[i] = r.String()
			}
			fmt.Fprintf(w, "framerates:  %s\n", strings.Join(rates, ", "))
		}
		fmt.Fprintf(w, "bitrate:     %s\n", c.Bitrate)
	case AudioCaps:
		rates := make([]string, len(c.SampleRates))
		for i, r := range c.SampleRates {
			rates[i] = fmt.Sprint(r)
		}
		fmt.Fprintf(w, "encoder:      %s\n", c.Encoder)
		fmt.Fprintf(w, "channels:     %s\n", c.Channels)
		fmt.Fprintf(w, "bitrate:      %s\n", c.Bitrate)
		fmt.Fprintf(w, "sample rates: %s\n", strings.Join(rates, ", "))
	}
}
