package download

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ytget/yt-music/internal/model"
)

// fakeBackend writes the configured files into the job's output dir
type fakeBackend struct {
	writes []string // file names relative to OutputDir; "{base}" is replaced
	err    error
	calls  int
	jobs   []model.ExtractionJob
	block  bool
}

func (f *fakeBackend) Fetch(ctx context.Context, job model.ExtractionJob) error {
	f.calls++
	f.jobs = append(f.jobs, job)
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if f.err != nil {
		return f.err
	}
	for _, w := range f.writes {
		name := strings.ReplaceAll(w, "{base}", job.BaseName)
		if err := os.WriteFile(filepath.Join(job.OutputDir, name), []byte("ID3"), 0644); err != nil {
			return err
		}
	}
	return nil
}

var scenarioTrack = model.TrackResult{
	ID:        "abc",
	Title:     "My:Song*",
	Channel:   "Artist/X",
	SourceURL: "https://youtube.com/watch?v=abc",
}

func newTestService(t *testing.T, backend Backend) *Service {
	t.Helper()
	service, err := NewService(t.TempDir(), backend)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return service
}

func TestNewService(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "music", "downloads")
	service, err := NewService(dir, &fakeBackend{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if service.OutputDir() != dir {
		t.Errorf("Expected outputDir to be '%s', got '%s'", dir, service.OutputDir())
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("Expected output directory to be created")
	}
	if service.timeout != DefaultDownloadTimeout {
		t.Errorf("Expected default timeout, got %v", service.timeout)
	}
}

func TestNewService_RelativeDirIsAbsolute(t *testing.T) {
	t.Chdir(t.TempDir())

	service, err := NewService("downloads", &fakeBackend{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !filepath.IsAbs(service.OutputDir()) {
		t.Errorf("Expected absolute output dir, got %q", service.OutputDir())
	}
}

func TestNewService_Errors(t *testing.T) {
	if _, err := NewService(t.TempDir(), nil); err == nil {
		t.Error("Expected error for nil backend, got nil")
	}

	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewService(blocker, &fakeBackend{}); err == nil {
		t.Error("Expected error when output dir is a file, got nil")
	}
}

func TestDownload_ScenarioB_ExactPath(t *testing.T) {
	backend := &fakeBackend{writes: []string{"{base}.mp3"}}
	service := newTestService(t, backend)

	outcome, err := service.Download(context.Background(), scenarioTrack, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	wantPath := filepath.Join(service.OutputDir(), "Artist_X - My_Song_.mp3")
	if outcome.Filename != "Artist_X - My_Song_" {
		t.Errorf("unexpected filename %q", outcome.Filename)
	}
	if outcome.TargetPath != wantPath {
		t.Errorf("expected target %q, got %q", wantPath, outcome.TargetPath)
	}
	if outcome.Path != wantPath {
		t.Errorf("expected path %q, got %q", wantPath, outcome.Path)
	}
	if !filepath.IsAbs(outcome.Path) {
		t.Errorf("expected absolute path, got %q", outcome.Path)
	}
	if outcome.State != model.DownloadStateResolved {
		t.Errorf("expected Resolved, got %s", outcome.State)
	}
	if outcome.Rule != model.ResolveRuleExact {
		t.Errorf("expected exact rule, got %q", outcome.Rule)
	}
	if outcome.FinishedAt.IsZero() {
		t.Error("expected FinishedAt to be set")
	}

	if backend.calls != 1 {
		t.Fatalf("expected one backend call, got %d", backend.calls)
	}
	job := backend.jobs[0]
	if job.SourceURL != scenarioTrack.SourceURL {
		t.Errorf("unexpected source URL %q", job.SourceURL)
	}
	if job.OutputDir != service.OutputDir() || job.BaseName != "Artist_X - My_Song_" {
		t.Errorf("unexpected job %+v", job)
	}
}

func TestDownload_PrefixFallback(t *testing.T) {
	backend := &fakeBackend{writes: []string{"{base}.webm", "{base} (1).mp3"}}
	service := newTestService(t, backend)

	outcome, err := service.Download(context.Background(), scenarioTrack, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	want := filepath.Join(service.OutputDir(), "Artist_X - My_Song_ (1).mp3")
	if outcome.Path != want {
		t.Errorf("expected %q, got %q", want, outcome.Path)
	}
	if outcome.Rule != model.ResolveRulePrefix {
		t.Errorf("expected prefix rule, got %q", outcome.Rule)
	}
}

func TestDownload_ExplicitFilename(t *testing.T) {
	backend := &fakeBackend{writes: []string{"{base}.mp3"}}
	service := newTestService(t, backend)

	outcome, err := service.Download(context.Background(), scenarioTrack, "my favourite")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if backend.jobs[0].BaseName != "my favourite" {
		t.Errorf("explicit filename not passed to backend: %q", backend.jobs[0].BaseName)
	}
	if want := filepath.Join(service.OutputDir(), "my favourite.mp3"); outcome.Path != want {
		t.Errorf("expected %q, got %q", want, outcome.Path)
	}
}

func TestDownload_ScenarioC_Ambiguous(t *testing.T) {
	backend := &fakeBackend{writes: []string{"{base}.m4a"}}
	service := newTestService(t, backend)

	outcome, err := service.Download(context.Background(), scenarioTrack, "")
	if !errors.Is(err, ErrDownloadAmbiguous) {
		t.Fatalf("expected ErrDownloadAmbiguous, got %v", err)
	}
	if errors.Is(err, ErrDownloadFailed) {
		t.Error("ambiguous outcome must be distinct from a failure")
	}
	if outcome == nil {
		t.Fatal("expected an outcome")
	}
	if outcome.State != model.DownloadStateAmbiguous {
		t.Errorf("expected Ambiguous, got %s", outcome.State)
	}
	if outcome.Path != "" {
		t.Errorf("expected no path, got %q", outcome.Path)
	}
}

func TestDownload_BackendFailure(t *testing.T) {
	cause := errors.New("yt-dlp failed: exit status 1 | ERROR: Video unavailable")
	backend := &fakeBackend{err: cause}
	service := newTestService(t, backend)

	outcome, err := service.Download(context.Background(), scenarioTrack, "")
	if !errors.Is(err, ErrDownloadFailed) {
		t.Fatalf("expected ErrDownloadFailed, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped, got %v", err)
	}
	if !strings.Contains(err.Error(), "Video unavailable") {
		t.Errorf("error should carry the backend message, got %q", err.Error())
	}
	if outcome.State != model.DownloadStateFailed {
		t.Errorf("expected Failed, got %s", outcome.State)
	}
	if outcome.LastError != cause.Error() {
		t.Errorf("expected LastError to be recorded, got %q", outcome.LastError)
	}
	if backend.calls != 1 {
		t.Errorf("expected a single attempt, got %d", backend.calls)
	}
}

func TestDownload_CanceledBeforeStart(t *testing.T) {
	backend := &fakeBackend{writes: []string{"{base}.mp3"}}
	service := newTestService(t, backend)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome, err := service.Download(ctx, scenarioTrack, "")
	if !errors.Is(err, ErrDownloadFailed) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled failure, got %v", err)
	}
	if backend.calls != 0 {
		t.Errorf("backend should not run for a canceled context, calls=%d", backend.calls)
	}
	if outcome.State != model.DownloadStateFailed {
		t.Errorf("expected Failed, got %s", outcome.State)
	}
}

func TestDownload_Timeout(t *testing.T) {
	backend := &fakeBackend{block: true}
	service := newTestService(t, backend)
	service.SetTimeout(20 * time.Millisecond)

	_, err := service.Download(context.Background(), scenarioTrack, "")
	if !errors.Is(err, ErrDownloadFailed) || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline failure, got %v", err)
	}
}

func TestGenerateRequestID(t *testing.T) {
	id1 := generateRequestID()
	id2 := generateRequestID()

	if id1 == id2 {
		t.Error("Expected different request IDs")
	}

	if !strings.HasPrefix(id1, RequestIDPrefix) {
		t.Errorf("Expected ID to start with '%s', got: %s", RequestIDPrefix, id1)
	}

	// prefix + 36 chars for UUID
	if len(id1) != len(RequestIDPrefix)+36 {
		t.Errorf("Expected ID length %d, got %d for ID: %s", len(RequestIDPrefix)+36, len(id1), id1)
	}
}

func TestDownload_OutcomeCarriesRequestID(t *testing.T) {
	service := newTestService(t, &fakeBackend{writes: []string{"{base}.mp3"}})

	first, _ := service.Download(context.Background(), scenarioTrack, "")
	second, _ := service.Download(context.Background(), scenarioTrack, "")
	if first.RequestID == "" || first.RequestID == second.RequestID {
		t.Errorf("expected distinct request IDs, got %q and %q", first.RequestID, second.RequestID)
	}
}
