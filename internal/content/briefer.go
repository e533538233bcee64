package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Briefer supplies the text shown at stage start and on the game over screen.
// Implementations never fail: errors are replaced by fixed text.
type Briefer interface {
	MissionBriefing(ctx context.Context, stage int) string
	PilotTip(ctx context.Context) string
}

// Local serves briefings and tips straight from the library.
// It is safe for concurrent use.
type Local struct {
	lib *Library
	mu  sync.Mutex // Guards rnd, which callers may share
	rnd Rand
}

// NewLocal creates a Briefer over lib.
func NewLocal(lib *Library, rnd Rand) *Local {
	return &Local{lib: lib, rnd: rnd}
}

func (l *Local) MissionBriefing(_ context.Context, stage int) string {
	return l.lib.MissionBriefing(stage)
}

func (l *Local) PilotTip(_ context.Context) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lib.PilotTip(l.rnd)
}

// Fallback text for the remote generator.
const (
	BriefingEmpty = "The galaxy depends on your skills, Pilot. Engage and survive."
	BriefingError = "Intelligence reports high activity in this sector. Proceed with caution."
	TipEmpty      = "Never stop moving; a stationary target is a dead one."
	TipError      = "Watch the patterns. Every enemy has a weakness."
)

// DefaultRemoteTimeout bounds a single generation request.
const DefaultRemoteTimeout = 5 * time.Second

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 64 << 10

// Remote asks a text generation endpoint for briefings and tips.
//
// The endpoint receives a JSON body {"prompt": ..., "temperature": ...} and
// answers with {"text": ...}.
type Remote struct {
	url     string
	prompts Prompts
	client  *http.Client
	logger  *log.Logger
}

// RemoteOptions configures a Remote.
type RemoteOptions struct {
	Timeout time.Duration // Defaults to DefaultRemoteTimeout
	Client  *http.Client
	Logger  *log.Logger
}

// NewRemote creates a Remote for url using the library's prompts.
func NewRemote(url string, lib *Library, opts RemoteOptions) *Remote {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultRemoteTimeout
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Remote{
		url:     url,
		prompts: lib.Prompts,
		client:  opts.Client,
		logger:  opts.Logger,
	}
}

type generateRequest struct {
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Text string `json:"text"`
}

func (r *Remote) MissionBriefing(ctx context.Context, stage int) string {
	return r.generate(ctx, r.prompts.BriefingPrompt(stage), r.prompts.BriefingTemperature, BriefingEmpty, BriefingError)
}

func (r *Remote) PilotTip(ctx context.Context) string {
	return r.generate(ctx, r.prompts.Tip, r.prompts.TipTemperature, TipEmpty, TipError)
}

func (r *Remote) generate(ctx context.Context, prompt string, temperature float64, empty, failed string) string {
	text, err := r.request(ctx, prompt, temperature)
	if err != nil {
		r.logger.Debug("remote text generation failed", "err", err)
		return failed
	}
	if text == "" {
		return empty
	}
	return text
}

func (r *Remote) request(ctx context.Context, prompt string, temperature float64) (string, error) {
	body, err := json.Marshal(generateRequest{Prompt: prompt, Temperature: temperature})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	var out generateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return strings.TrimSpace(out.Text), nil
}
