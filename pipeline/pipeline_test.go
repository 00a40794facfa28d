package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/kbukum/audioscribe/errors"
	"github.com/kbukum/audioscribe/logger"
	"github.com/kbukum/audioscribe/prompt"
	"github.com/kbukum/audioscribe/storage/scratch"
	"github.com/kbukum/audioscribe/summarization"
	"github.com/kbukum/audioscribe/transcription"
)

type fakeTranscriber struct {
	mu    sync.Mutex
	text  string
	err   error
	paths []string
	// contents holds what the file contained while Transcribe ran.
	contents []string
}

func (f *fakeTranscriber) Transcribe(_ context.Context, path string) (string, error) {
	data, _ := os.ReadFile(path)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, path)
	f.contents = append(f.contents, string(data))
	return f.text, f.err
}

type fakeSummarizer struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (f *fakeSummarizer) Summarize(_ context.Context, p string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, p)
	return f.reply, f.err
}

func (f *fakeSummarizer) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

type fixture struct {
	dir string
	tr  *fakeTranscriber
	sum *fakeSummarizer
	o   *Orchestrator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "audioTemp")
	f := &fixture{
		dir: dir,
		tr:  &fakeTranscriber{text: "Patient has fever"},
		sum: &fakeSummarizer{reply: "## Summary\nFever reported."},
	}
	f.o = New(scratch.New(scratch.Config{Dir: dir}, logger.NewNop()), f.tr, f.sum, logger.NewNop())
	return f
}

func (f *fixture) assertNoScratchFiles(t *testing.T) {
	t.Helper()
	entries, err := os.ReadDir(f.dir)
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("read scratch dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no scratch files, found %d", len(entries))
	}
}

func upload(body string) *Upload {
	return &Upload{Reader: strings.NewReader(body), Name: "visit.wav", Size: int64(len(body))}
}

func assertAppError(t *testing.T, err error, code errors.ErrorCode, status int) *errors.AppError {
	t.Helper()
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != code || appErr.HTTPStatus != status {
		t.Fatalf("expected %s/%d, got %s/%d", code, status, appErr.Code, appErr.HTTPStatus)
	}
	return appErr
}

func TestProcess_BasicSummaryEndToEnd(t *testing.T) {
	f := newFixture(t)

	res, err := f.o.Process(context.Background(), Request{Audio: upload("B"), Category: prompt.BasicSummary})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Transcription != "## Summary\nFever reported." || !res.Summarized {
		t.Errorf("unexpected result %+v", res)
	}
	if len(f.tr.paths) != 1 || f.tr.contents[0] != "B" {
		t.Fatalf("transcriber should see the uploaded bytes once, got %v", f.tr.contents)
	}
	if f.sum.calls() != 1 || !strings.Contains(f.sum.prompts[0], "Patient has fever") {
		t.Errorf("expected one summarize call embedding the transcript, got %v", f.sum.prompts)
	}
	if _, err := os.Stat(f.tr.paths[0]); !os.IsNotExist(err) {
		t.Errorf("scratch file still exists after success: %v", err)
	}
	f.assertNoScratchFiles(t)
}

func TestProcess_MissingFile(t *testing.T) {
	tests := []struct {
		name  string
		audio *Upload
	}{
		{"nil upload", nil},
		{"nil reader", &Upload{Name: "a.wav", Size: 3}},
		{"zero size", &Upload{Reader: strings.NewReader(""), Name: "a.wav"}},
		{"declared size but no bytes", &Upload{Reader: strings.NewReader(""), Name: "a.wav", Size: 10}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.o.Process(context.Background(), Request{Audio: tc.audio, Category: prompt.BasicSummary})
			assertAppError(t, err, errors.ErrCodeMissingFile, http.StatusBadRequest)
			if len(f.tr.paths) != 0 || f.sum.calls() != 0 {
				t.Error("no external call expected without a file")
			}
			f.assertNoScratchFiles(t)
		})
	}
}

func TestProcess_PassthroughForUnrecognizedCategory(t *testing.T) {
	f := newFixture(t)
	f.tr.text = "raw words"

	res, err := f.o.Process(context.Background(), Request{
		Audio:    upload("B"),
		Category: prompt.ParseCategory("unknown-x"),
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Transcription != "raw words" || res.Summarized {
		t.Errorf("expected raw transcript, got %+v", res)
	}
	if f.sum.calls() != 0 {
		t.Error("summarizer must not be called for passthrough")
	}
	f.assertNoScratchFiles(t)
}

func TestProcess_OtherUsesUserPrompt(t *testing.T) {
	f := newFixture(t)
	_, err := f.o.Process(context.Background(), Request{
		Audio:      upload("B"),
		Category:   prompt.Other,
		UserPrompt: "list the medications",
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !strings.Contains(f.sum.prompts[0], "list the medications") {
		t.Errorf("prompt missing user instruction: %q", f.sum.prompts[0])
	}
}

func TestProcess_ExternalFailures(t *testing.T) {
	tests := []struct {
		name          string
		transcribeErr error
		summarizeErr  error
		wantCause     error
		wantSummarize int
	}{
		{
			name:          "transcription fails",
			transcribeErr: fmt.Errorf("%w: 502 bad gateway", transcription.ErrTranscription),
			wantCause:     transcription.ErrTranscription,
		},
		{
			name:          "summarization fails",
			summarizeErr:  fmt.Errorf("%w: rate limited", summarization.ErrSummarization),
			wantCause:     summarization.ErrSummarization,
			wantSummarize: 1,
		},
		{
			name:          "transcription deadline exceeded",
			transcribeErr: fmt.Errorf("%w: %w", transcription.ErrTranscription, context.DeadlineExceeded),
			wantCause:     context.DeadlineExceeded,
		},
		{
			name:          "summarization deadline exceeded",
			summarizeErr:  fmt.Errorf("%w: %w", summarization.ErrSummarization, context.DeadlineExceeded),
			wantCause:     context.DeadlineExceeded,
			wantSummarize: 1,
		},
		{
			name:          "empty completion",
			summarizeErr:  summarization.ErrEmptyCompletion,
			wantCause:     summarization.ErrEmptyCompletion,
			wantSummarize: 1,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.tr.err = tc.transcribeErr
			f.sum.err = tc.summarizeErr

			_, err := f.o.Process(context.Background(), Request{Audio: upload("B"), Category: prompt.DoctorSummary})
			appErr := assertAppError(t, err, errors.ErrCodeProcessingFailed, http.StatusInternalServerError)
			if !stderrors.Is(appErr, tc.wantCause) {
				t.Errorf("cause not preserved: %v", appErr.Cause)
			}
			if appErr.Message != "Error processing the audio file" {
				t.Errorf("client message must be generic, got %q", appErr.Message)
			}
			if f.sum.calls() != tc.wantSummarize {
				t.Errorf("expected %d summarize calls, got %d", tc.wantSummarize, f.sum.calls())
			}
			f.assertNoScratchFiles(t)
		})
	}
}

func TestProcess_CanceledContextBeforeAcquire(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.o.Process(ctx, Request{Audio: upload("B"), Category: prompt.BasicSummary})
	appErr := assertAppError(t, err, errors.ErrCodeProcessingFailed, http.StatusInternalServerError)
	if !stderrors.Is(appErr, context.Canceled) {
		t.Errorf("expected context.Canceled cause, got %v", appErr.Cause)
	}
	if len(f.tr.paths) != 0 {
		t.Error("transcriber should not run")
	}
}

func TestProcess_ConcurrentRequestsUseDistinctFiles(t *testing.T) {
	f := newFixture(t)
	const n = 12

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := fmt.Sprintf("audio-%d", i)
			if _, err := f.o.Process(context.Background(), Request{Audio: upload(body), Category: prompt.SpeakerSummary}); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("Process: %v", err)
	}

	seen := map[string]bool{}
	for _, p := range f.tr.paths {
		if seen[p] {
			t.Fatalf("path reused across requests: %s", p)
		}
		seen[p] = true
	}
	if len(seen) != n {
		t.Errorf("expected %d distinct paths, got %d", n, len(seen))
	}
	for i, c := range f.tr.contents {
		if !strings.HasPrefix(c, "audio-") {
			t.Errorf("request %d saw foreign content %q", i, c)
		}
	}
	f.assertNoScratchFiles(t)
}
