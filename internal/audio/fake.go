package audio

import (
	"encoding/binary"
	"sync"
	"time"
)

const (
	fakeFrameSize     = 1024
	fakeBytesPerFrame = 2 // 16-bit mono
)

// FakeContext is a capture Context that replays fixed PCM instead of a
// microphone. After the PCM runs out it feeds silence, as an idle mic would.
type FakeContext struct {
	pcm      []byte
	realtime bool
	stall    bool
}

// NewFakeContext replays samples. In realtime mode chunks are paced at the
// analysis rate; otherwise they are delivered as fast as possible.
func NewFakeContext(samples []int16, realtime bool) *FakeContext {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
	}
	return &FakeContext{pcm: data, realtime: realtime}
}

// NewStalledContext returns a context whose devices start but never deliver.
func NewStalledContext() *FakeContext {
	return &FakeContext{stall: true}
}

func (f *FakeContext) Devices() ([]DeviceInfo, error) {
	return []DeviceInfo{{ID: "fake", Name: "fake"}}, nil
}

func (f *FakeContext) Close() {}

func (f *FakeContext) NewCapture(_ *DeviceInfo, config CaptureConfig) (CaptureDevice, error) {
	rate := config.SampleRate
	if rate == 0 {
		rate = AnalysisRate
	}
	return &FakeCapture{pcm: f.pcm, realtime: f.realtime, stall: f.stall, rate: rate}, nil
}

type FakeCapture struct {
	pcm      []byte
	realtime bool
	stall    bool
	rate     uint32

	mu       sync.Mutex
	cb       DataCallback
	stopCh   chan struct{}
	feedDone chan struct{}
}

func (f *FakeCapture) SetCallback(cb DataCallback) {
	f.mu.Lock()
	f.cb = cb
	f.mu.Unlock()
}

func (f *FakeCapture) ClearCallback() {
	f.mu.Lock()
	f.cb = nil
	f.mu.Unlock()
}

func (f *FakeCapture) callback() DataCallback {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cb
}

func (f *FakeCapture) Start() error {
	f.stopCh = make(chan struct{})
	f.feedDone = make(chan struct{})

	chunkBytes := fakeFrameSize * fakeBytesPerFrame
	interval := time.Millisecond
	if f.realtime {
		interval = time.Duration(fakeFrameSize) * time.Second / time.Duration(f.rate)
	}

	go func() {
		defer close(f.feedDone)
		if f.stall {
			<-f.stopCh
			return
		}
		silence := make([]byte, chunkBytes)
		pos := 0
		for {
			select {
			case <-f.stopCh:
				return
			default:
			}

			if cb := f.callback(); cb != nil {
				if pos < len(f.pcm) {
					end := min(pos+chunkBytes, len(f.pcm))
					chunk := make([]byte, end-pos)
					copy(chunk, f.pcm[pos:end])
					cb(chunk, uint32(len(chunk)/fakeBytesPerFrame))
					pos = end
				} else {
					cb(silence, fakeFrameSize)
				}
			}

			if !f.realtime && pos < len(f.pcm) {
				continue
			}
			select {
			case <-f.stopCh:
				return
			case <-time.After(interval):
			}
		}
	}()

	return nil
}

func (f *FakeCapture) Stop() {
	if f.stopCh == nil {
		return
	}
	select {
	case <-f.stopCh:
	default:
		close(f.stopCh)
	}
	<-f.feedDone
}

func (f *FakeCapture) Close() {
	f.Stop()
}
