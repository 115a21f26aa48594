package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/shiftjournal/internal/voice"
)

// meterInterval is how often the level meter is redrawn.
var meterInterval = 50 * time.Millisecond

var errDictationCancelled = errors.New("dictation cancelled")

type recState int

const (
	recIdle recState = iota
	recRecording
	recTranscribing
	recDone
)

type (
	meterTickMsg   struct{}
	chunkMsg       struct{ samples []int16 }
	streamEndMsg   struct{ err error }
	transcribedMsg struct {
		text string
		err  error
	}
	recordingStartedMsg struct {
		stream io.ReadCloser
		err    error
	}
)

// recorderModel captures audio from source, shows a level meter and hands
// the recording to the transcriber when stopped.
type recorderModel struct {
	ctx         context.Context
	source      voice.Source
	transcriber voice.Transcriber
	saveGain    func(int)

	state   recState
	gain    int
	stream  io.ReadCloser
	samples []int16
	level   float64
	shown   float64
	meter   progress.Model

	text string
	err  error
}

var (
	recTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0055B3"))
	recLive  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("160"))
	recHint  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newRecorderModel(ctx context.Context, src voice.Source, tr voice.Transcriber, gain int, saveGain func(int)) *recorderModel {
	return &recorderModel{
		ctx:         ctx,
		source:      src,
		transcriber: tr,
		saveGain:    saveGain,
		gain:        voice.ClampGain(gain),
		meter:       progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (m *recorderModel) Init() tea.Cmd { return nil }

func (m *recorderModel) start() tea.Cmd {
	return func() tea.Msg {
		s, err := m.source.Start(m.ctx)
		return recordingStartedMsg{stream: s, err: err}
	}
}

func readChunk(r io.Reader) tea.Cmd {
	return func() tea.Msg {
		samples, err := voice.ReadChunk(r)
		if err != nil {
			return streamEndMsg{err: err}
		}
		return chunkMsg{samples: samples}
	}
}

func meterTick() tea.Cmd {
	return tea.Tick(meterInterval, func(time.Time) tea.Msg { return meterTickMsg{} })
}

func (m *recorderModel) stop() tea.Cmd {
	if m.stream != nil {
		_ = m.stream.Close()
		m.stream = nil
	}
	if len(m.samples) == 0 {
		m.err = errors.New("nothing was recorded")
		m.state = recDone
		return tea.Quit
	}

	m.state = recTranscribing
	samples := m.samples
	return func() tea.Msg {
		wav, err := voice.EncodeWAV(samples)
		if err != nil {
			return transcribedMsg{err: err}
		}
		text, err := m.transcriber.Transcribe(m.ctx, wav)
		return transcribedMsg{text: text, err: err}
	}
}

func (m *recorderModel) setGain(g int) {
	g = voice.ClampGain(g)
	if g == m.gain {
		return
	}
	m.gain = g
	if m.saveGain != nil {
		m.saveGain(g)
	}
}

func (m *recorderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			if m.stream != nil {
				_ = m.stream.Close()
				m.stream = nil
			}
			m.err = errDictationCancelled
			m.state = recDone
			return m, tea.Quit
		case " ":
			switch m.state {
			case recIdle:
				m.state = recRecording
				return m, m.start()
			case recRecording:
				return m, m.stop()
			}
		case "+", "=":
			m.setGain(m.gain + 1)
		case "-":
			m.setGain(m.gain - 1)
		}
		return m, nil

	case recordingStartedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = recDone
			return m, tea.Quit
		}
		if m.state != recRecording {
			_ = msg.stream.Close()
			return m, nil
		}
		m.stream = msg.stream
		return m, tea.Batch(readChunk(m.stream), meterTick())

	case chunkMsg:
		if m.state != recRecording || m.stream == nil {
			return m, nil
		}
		gained := voice.ApplyGain(msg.samples, m.gain)
		m.samples = append(m.samples, gained...)
		m.level = voice.Level(gained)
		return m, readChunk(m.stream)

	case streamEndMsg:
		if m.state != recRecording {
			return m, nil
		}
		// The recorder exited on its own.
		return m, m.stop()

	case meterTickMsg:
		if m.state != recRecording {
			return m, nil
		}
		m.shown = m.level
		return m, meterTick()

	case transcribedMsg:
		m.text, m.err = msg.text, msg.err
		m.state = recDone
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.meter.Width = max(10, msg.Width-4)
	}
	return m, nil
}

func (m *recorderModel) View() string {
	var b strings.Builder
	b.WriteString(recTitle.Render("Голосовой ввод") + "\n\n")

	switch m.state {
	case recIdle:
		b.WriteString("Press space to start recording\n")
	case recRecording:
		b.WriteString(recLive.Render("● REC") + fmt.Sprintf("  %.1fs\n", float64(len(m.samples))/voice.SampleRate))
	case recTranscribing:
		b.WriteString("Transcribing...\n")
	case recDone:
		b.WriteString("Done\n")
	}

	b.WriteString(m.meter.ViewAs(m.shown) + "\n")
	b.WriteString(fmt.Sprintf("gain: %d\n\n", m.gain))
	b.WriteString(recHint.Render("space start/stop · +/- gain · esc cancel"))
	return b.String()
}

// result is the recognised text or the reason there is none.
func (m *recorderModel) result() (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.state != recDone {
		return "", errDictationCancelled
	}
	return m.text, nil
}

// dictate opens the recorder view and returns the transcript.
func (a *App) dictate(ctx context.Context) (string, error) {
	tr, err := a.newTranscriber(ctx)
	if err != nil {
		return "", err
	}

	gain, err := a.settings.VoiceGain(ctx)
	if err != nil {
		a.logger.Warn(ctx, "reading voice gain failed", "error", err)
	}
	save := func(g int) {
		if err := a.settings.SetVoiceGain(ctx, g); err != nil {
			a.logger.Warn(ctx, "saving voice gain failed", "error", err)
		}
	}

	final, err := runProgram(newRecorderModel(ctx, a.source, tr, gain, save))
	if err != nil {
		return "", err
	}
	rm, ok := final.(*recorderModel)
	if !ok {
		return "", errDictationCancelled
	}
	text, err := rm.result()
	if err != nil {
		a.logger.Warn(ctx, "dictation failed", "error", err)
		return "", err
	}
	return text, nil
}
