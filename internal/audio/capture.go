// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     audio
// Description: Microphone capture using PortAudio
// Author:      Oleg Nassikanov
// Created:     2026-08-11
// License:     MIT
// ============================================================================

package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/OlegNassikanov/voice-agent/internal/logging"
)

const (
	// DefaultSampleRate is the default sample rate for audio capture (16kHz for Whisper)
	DefaultSampleRate = 16000

	// DefaultFramesPerBuffer is the default buffer size
	DefaultFramesPerBuffer = 512

	// DefaultChannels is mono audio
	DefaultChannels = 1
)

// Recorder owns the PortAudio subsystem and hands out captures. Only one
// capture can be live at a time; a new one cannot begin until the previous
// capture was finished with Stop or Abort.
type Recorder struct {
	mu              sync.Mutex
	sampleRate      float64
	framesPerBuffer int
	channels        int
	deviceName      string
	busy            bool
	initialized     bool
	log             *logging.Logger
}

// RecorderConfig holds configuration for audio capture.
type RecorderConfig struct {
	SampleRate      int
	FramesPerBuffer int
	Channels        int
	DeviceName      string // Name of the input device (empty = default)
}

// DefaultRecorderConfig returns default capture configuration.
func DefaultRecorderConfig() RecorderConfig {
	return RecorderConfig{
		SampleRate:      DefaultSampleRate,
		FramesPerBuffer: DefaultFramesPerBuffer,
		Channels:        DefaultChannels,
	}
}

// NewRecorder initializes PortAudio and creates a recorder. The caller must
// Close it to release the audio subsystem.
func NewRecorder(cfg RecorderConfig, log *logging.Logger) (*Recorder, error) {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	if cfg.FramesPerBuffer <= 0 {
		cfg.FramesPerBuffer = DefaultFramesPerBuffer
	}
	if cfg.Channels <= 0 {
		cfg.Channels = DefaultChannels
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}

	return &Recorder{
		sampleRate:      float64(cfg.SampleRate),
		framesPerBuffer: cfg.FramesPerBuffer,
		channels:        cfg.Channels,
		deviceName:      cfg.DeviceName,
		initialized:     true,
		log:             log,
	}, nil
}

// Begin opens the input stream and starts collecting samples into a fresh
// buffer. The returned capture must be finished with Stop or Abort.
func (r *Recorder) Begin() (*Capture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.initialized {
		return nil, fmt.Errorf("recorder is closed")
	}
	if r.busy {
		return nil, fmt.Errorf("capture already running")
	}

	frames := make([]float32, r.framesPerBuffer)

	stream, err := r.openStream(frames)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("failed to start audio stream: %w", err)
	}

	c := &Capture{
		recorder: r,
		stream:   stream,
		frames:   frames,
		buf:      NewBuffer(),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go c.loop()

	r.busy = true
	r.log.Debug("audio capture started",
		"sample_rate", r.sampleRate,
		"frames_per_buffer", r.framesPerBuffer,
		"device", r.deviceName)

	return c, nil
}

// openStream opens the configured input device, falling back to the system
// default when no device is named or the named one is missing.
func (r *Recorder) openStream(frames []float32) (*portaudio.Stream, error) {
	if r.deviceName != "" && r.deviceName != "default" {
		device, err := findInputDevice(r.deviceName)
		if err == nil {
			params := portaudio.StreamParameters{
				Input: portaudio.StreamDeviceParameters{
					Device:   device,
					Channels: r.channels,
					Latency:  device.DefaultLowInputLatency,
				},
				SampleRate:      r.sampleRate,
				FramesPerBuffer: r.framesPerBuffer,
			}
			return portaudio.OpenStream(params, frames)
		}
		r.log.Warn("input device not found, using default", "device", r.deviceName)
	}

	return portaudio.OpenDefaultStream(
		r.channels, // input channels
		0,          // output channels (none)
		r.sampleRate,
		r.framesPerBuffer,
		frames,
	)
}

// findInputDevice finds a PortAudio input device by name.
func findInputDevice(name string) (*portaudio.DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}

	for _, dev := range devices {
		if dev.Name == name && dev.MaxInputChannels > 0 {
			return dev, nil
		}
	}

	return nil, fmt.Errorf("device not found: %s", name)
}

// release marks the recorder free for the next capture.
func (r *Recorder) release() {
	r.mu.Lock()
	r.busy = false
	r.mu.Unlock()
}

// SampleRate returns the capture sample rate.
func (r *Recorder) SampleRate() int {
	return int(r.sampleRate)
}

// Close terminates PortAudio. It fails if a capture is still running.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.busy {
		return fmt.Errorf("capture still running")
	}
	if !r.initialized {
		return nil
	}
	r.initialized = false

	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("failed to terminate PortAudio: %w", err)
	}
	return nil
}

// Capture is a single in-flight recording. Stop returns the collected
// samples, Abort discards them; either way the recorder is released.
type Capture struct {
	recorder *Recorder
	stream   *portaudio.Stream
	frames   []float32
	buf      *Buffer

	stop chan struct{}
	done chan struct{}

	mu       sync.Mutex
	finished bool
	readErr  error
}

// loop continuously reads audio from the stream until the capture is
// finished or reading fails.
func (c *Capture) loop() {
	defer close(c.done)

	for {
		select {
		case <-c.stop:
			return
		default:
		}

		if err := c.stream.Read(); err != nil {
			select {
			case <-c.stop:
				// The stream was shut down under us, not a device failure.
				return
			default:
			}
			c.mu.Lock()
			c.readErr = err
			c.mu.Unlock()
			return
		}

		samples := make([]float32, len(c.frames))
		copy(samples, c.frames)
		c.buf.Append(samples)
	}
}

// Stop ends the capture and returns everything recorded since Begin. If the
// stream failed while recording, the error is returned here.
func (c *Capture) Stop() ([]float32, error) {
	if err := c.finish(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	readErr := c.readErr
	c.mu.Unlock()
	if readErr != nil {
		return nil, fmt.Errorf("audio stream read failed: %w", readErr)
	}

	return c.buf.Samples(), nil
}

// Abort ends the capture and discards everything recorded.
func (c *Capture) Abort() error {
	return c.finish()
}

// finish tears down the stream exactly once and releases the recorder.
func (c *Capture) finish() error {
	c.mu.Lock()
	if c.finished {
		c.mu.Unlock()
		return nil
	}
	c.finished = true
	c.mu.Unlock()

	close(c.stop)
	if err := c.stream.Stop(); err != nil {
		c.recorder.log.Debug("audio stream stop", "error", err)
	}
	<-c.done

	err := c.stream.Close()
	c.recorder.release()
	if err != nil {
		return fmt.Errorf("failed to close audio stream: %w", err)
	}
	return nil
}

// Duration reports how much audio has been collected so far.
func (c *Capture) Duration() time.Duration {
	secs := c.buf.DurationSeconds(c.recorder.sampleRate)
	return time.Duration(secs * float64(time.Second))
}

// ListInputDevices returns a list of available input devices.
func ListInputDevices() ([]DeviceInfo, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	defer portaudio.Terminate()

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("failed to get devices: %w", err)
	}

	defaultInput, _ := portaudio.DefaultInputDevice()
	var defaultInputName string
	if defaultInput != nil {
		defaultInputName = defaultInput.Name
	}

	var inputDevices []DeviceInfo
	for _, dev := range devices {
		if dev.MaxInputChannels > 0 {
			inputDevices = append(inputDevices, DeviceInfo{
				Name:              dev.Name,
				MaxInputChannels:  dev.MaxInputChannels,
				DefaultSampleRate: dev.DefaultSampleRate,
				IsDefault:         dev.Name == defaultInputName,
			})
		}
	}

	return inputDevices, nil
}

// DeviceInfo holds information about an audio input device.
type DeviceInfo struct {
	Name              string
	MaxInputChannels  int
	DefaultSampleRate float64
	IsDefault         bool
}
