// SPDX-License-Identifier: EPL-2.0

// Package wav decodes RIFF/WAVE files into normalized samples and exports
// any audio.Source as 16-bit PCM WAV.
//
// It uses the github.com/go-audio library for chunk parsing and encoding.
//
// # Supported Encodings
//
//   - PCM 8-bit (unsigned, centred on 128)
//   - PCM 16, 24 and 32-bit (signed)
//   - IEEE float 32-bit
//   - WAVE_FORMAT_EXTENSIBLE carrying integer PCM
//
// Integer samples are divided by the signed maximum of their declared bit
// depth, so a 24-bit file is scaled by 2^23-1 regardless of its container.
// Everything else (A-law, mu-law, ADPCM, 64-bit float, odd bit depths) is
// rejected by Open with audio.ErrUnsupportedEncoding.
//
// # Decoding
//
//	f, _ := os.Open("audio.wav")
//	dec, err := wav.Open(f)
//	if err != nil {
//	    // errors.Is(err, wav.ErrNotWavFile) when it is not a WAV at all
//	}
//	for s, err := range audio.Samples(dec) {
//	    ...
//	}
//
// Open never disturbs the reader on failure; it is left at the position it
// had before the call.
//
// # Exporting
//
//	out, _ := os.Create("out.wav")
//	frames, err := wav.Export(out, dec)
package wav
