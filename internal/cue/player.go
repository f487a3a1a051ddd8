package cue

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/zjrosen/typetwice/internal/log"
)

// Player plays cues. Play must never block the caller and never fail past
// this boundary.
type Player interface {
	Play(symbol string)
}

// NoopPlayer discards every cue. Used when audio is disabled or the output
// device could not be opened.
type NoopPlayer struct{}

func (NoopPlayer) Play(string) {}

// Sink consumes rendered cue streams.
type Sink interface {
	Play(s beep.Streamer)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(s beep.Streamer)

func (f SinkFunc) Play(s beep.Streamer) { f(s) }

// Options configures a BeepPlayer.
type Options struct {
	Dir        string
	Volume     float64
	SampleRate int
	QueueSize  int
	CacheTTL   time.Duration
}

const (
	DefaultSampleRate = 44100
	DefaultQueueSize  = 32
)

func (o Options) withDefaults() Options {
	if o.SampleRate <= 0 {
		o.SampleRate = DefaultSampleRate
	}
	if o.QueueSize <= 0 {
		o.QueueSize = DefaultQueueSize
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	return o
}

// BeepPlayer decodes and plays cues on a single worker goroutine. Play only
// enqueues; when the queue is full the cue is dropped.
type BeepPlayer struct {
	sink   Sink
	loader *Loader
	cache  *cache
	volume float64

	queue chan ID
	done  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup
}

// NewBeepPlayer starts a player that hands rendered cues to sink.
func NewBeepPlayer(sink Sink, opts Options) *BeepPlayer {
	opts = opts.withDefaults()

	p := &BeepPlayer{
		sink:   sink,
		loader: NewLoader(opts.Dir, beep.SampleRate(opts.SampleRate)),
		cache:  newCache(opts.CacheTTL),
		volume: opts.Volume,
		queue:  make(chan ID, opts.QueueSize),
		done:   make(chan struct{}),
	}

	p.wg.Add(1)
	go p.run()
	return p
}

// speakerSink plays streams on the system audio device.
type speakerSink struct{}

func (speakerSink) Play(s beep.Streamer) { speaker.Play(s) }

// NewSpeakerPlayer opens the audio device and returns a player using it.
func NewSpeakerPlayer(opts Options) (*BeepPlayer, error) {
	opts = opts.withDefaults()
	sr := beep.SampleRate(opts.SampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return nil, err
	}
	log.Info(log.CatAudio, "speaker initialized", "sampleRate", opts.SampleRate, "dir", opts.Dir)
	return NewBeepPlayer(speakerSink{}, opts), nil
}

// Play looks up symbol and enqueues its cue.
func (p *BeepPlayer) Play(symbol string) {
	id := Lookup(symbol)
	select {
	case <-p.done:
		return
	default:
	}
	select {
	case p.queue <- id:
	default:
		log.Warn(log.CatAudio, "cue dropped, queue full", "id", id)
	}
}

// Invalidate forgets every decoded cue so the next play rereads the
// directory.
func (p *BeepPlayer) Invalidate() {
	p.cache.Flush()
	log.Debug(log.CatAudio, "cue cache flushed")
}

// Loader returns the player's resource loader.
func (p *BeepPlayer) Loader() *Loader {
	return p.loader
}

// Close stops the worker. Queued cues are discarded.
func (p *BeepPlayer) Close() {
	p.once.Do(func() {
		close(p.done)
	})
	p.wg.Wait()
}

func (p *BeepPlayer) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case id := <-p.queue:
			p.play(id)
		}
	}
}

func (p *BeepPlayer) play(id ID) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn(log.CatAudio, "cue playback panicked", "id", id, "panic", r)
		}
	}()

	buf := p.buffer(id)
	if buf.Len() == 0 {
		return
	}
	p.sink.Play(newVolume(buf.Streamer(0, buf.Len()), p.volume))
}

// buffer returns id's decoded cue, loading it on a cache miss. A missing or
// unreadable resource falls back to a synthesized tone.
func (p *BeepPlayer) buffer(id ID) *beep.Buffer {
	if buf, ok := p.cache.Get(id); ok {
		return buf
	}

	buf, err := p.loader.Load(id)
	if err != nil {
		if p.loader.Dir() != "" {
			log.Warn(log.CatAudio, "cue unavailable, synthesizing", "id", id, "error", err)
		}
		buf = p.loader.Synthesized(id)
	}
	p.cache.Set(id, buf)
	return buf
}
