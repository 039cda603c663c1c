// SPDX-License-Identifier: EPL-2.0

// Package playback plays an audio.Source through a host output device.
//
// # Engine and Sessions
//
// An Engine holds configuration. Create opens an output stream for a source
// and returns a Session, which owns the stream and the source from then on:
//
//	engine := playback.NewEngine(playback.Config{})
//	s, err := engine.Create(dec)
//	if err != nil {
//	    // err wraps playback.ErrDevice; dec still belongs to the caller
//	}
//	s.Play()
//	<-s.Done()
//
// Sessions start Paused unless Config.Autoplay is set. Play, Pause and Stop
// never block: they queue a command that the session's goroutine applies
// in send order. Repeating the current state is a no-op, and Stopped is
// final. When the source runs out the stream keeps playing silence for
// Config.Linger and the session then stops by itself, closing Done.
//
// # Device Callback
//
// Devices pull audio through a Callback that fills whole interleaved frames
// in the device's native format (u8, s16, s24, s32 or f32). The callback
// never blocks and never fails: once the source ends, or reports a decode
// error, it writes exact silence. Decode errors are logged once and counted
// in Metrics.
//
// Source channels reach the device through audio.ChannelMapper by default.
// ChannelsFanOut instead writes each decoded sample across a whole device
// frame.
//
// # Backends
//
//   - MalgoDevice (default): miniaudio, native device configuration
//   - OtoDevice: ebitengine/oto, one process-wide context
//   - PortAudioDevice: PortAudio, only with -tags portaudio
//   - NullDevice: no output; driven by Pump or a ticker, for tests
//
// Playback does not resample. A device rate that differs from the source
// rate is logged as a warning and the audio plays at the wrong speed.
package playback
