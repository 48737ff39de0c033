// Package capability computes the encoding parameters that a capture device and
// an encoder can both honor.
//
// Each parameter family is resolved independently:
//
//   - resolutions: native device sizes whose width and height each fall inside the
//     encoder's width and height bounds, in device order
//   - framerates: native device ranges fully contained in the encoder's framerate bound
//   - bitrates, channel counts, sample rates: passed through from the encoder provider
//
// An empty result means no compatible configuration exists and is not an error.
// Unknown identities fail with ErrUnknownEncoder or ErrUnknownDevice:
//
//	resolver := capability.NewResolver(catalog.Video(), catalog.Audio(), devices.NewProvider(detector))
//	sizes, err := resolver.SupportedResolutions("video/avc")
//	if errors.Is(err, capability.ErrUnknownEncoder) {
//	    // pick another encoder
//	}
package capability
