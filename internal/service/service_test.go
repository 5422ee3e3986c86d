package service

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"pdf-toolkit-server/internal/domain"
	"pdf-toolkit-server/internal/session"
)

// Noop logger used by service tests.
type testLogger struct{}

func (testLogger) Info(msg string, fields ...interface{})             {}
func (testLogger) Error(msg string, err error, fields ...interface{}) {}
func (testLogger) Debug(msg string, fields ...interface{})            {}
func (testLogger) Warn(msg string, fields ...interface{})             {}

// In-memory blob store recording removals.
type memBlobs struct {
	mu      sync.Mutex
	seq     int
	data    map[string][]byte
	removed []string
}

func newMemBlobs() *memBlobs {
	return &memBlobs{data: make(map[string][]byte)}
}

func (m *memBlobs) Save(name string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	stored := fmt.Sprintf("blob-%d_%s", m.seq, name)
	m.data[stored] = data
	return stored, nil
}

func (m *memBlobs) Allocate(name string) (string, string) {
	stored, _ := m.Save(name, nil)
	return stored, m.Path(stored)
}

func (m *memBlobs) Path(stored string) string { return "mem://" + stored }

func (m *memBlobs) Read(stored string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[stored]
	if !ok {
		return nil, fmt.Errorf("blob %s not found", stored)
	}
	return data, nil
}

func (m *memBlobs) Size(stored string) (int64, error) {
	data, err := m.Read(stored)
	if err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

func (m *memBlobs) Remove(stored string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, stored)
	m.removed = append(m.removed, stored)
	return nil
}

func (m *memBlobs) removedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.removed)
}

// Fake engine tracking page counts per path. nextPages seeds the page count
// reported for the next unknown path (i.e. a fresh upload).
type fakeEngine struct {
	pages        map[string]int
	nextPages    int
	mergeCalls   [][]string
	extractCalls []string
	failMerge    bool
	failExtract  bool
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{pages: make(map[string]int)}
}

func (e *fakeEngine) Validate(path string) error { return nil }

func (e *fakeEngine) PageCount(path string) (int, error) {
	if n, ok := e.pages[path]; ok {
		return n, nil
	}
	if e.nextPages > 0 {
		e.pages[path] = e.nextPages
		return e.nextPages, nil
	}
	return 0, errors.New("unknown file")
}

func (e *fakeEngine) Merge(inPaths []string, outPath string) error {
	if e.failMerge {
		return errors.New("merge exploded")
	}
	e.mergeCalls = append(e.mergeCalls, inPaths)
	total := 0
	for _, p := range inPaths {
		total += e.pages[p]
	}
	e.pages[outPath] = total
	return nil
}

func (e *fakeEngine) ExtractPages(inPath, outPath string, from, to int) error {
	if e.failExtract {
		return errors.New("trim exploded")
	}
	e.extractCalls = append(e.extractCalls, fmt.Sprintf("%d-%d", from, to))
	e.pages[outPath] = to - from + 1
	return nil
}

// pdfUpload builds a byte payload that passes the signature check.
func pdfUpload(name string) domain.FileUpload {
	return domain.FileUpload{
		Name:        name,
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4\n" + name),
	}
}

type fixture struct {
	sessions *session.Store
	blobs    *memBlobs
	engine   *fakeEngine
}

func newFixture() *fixture {
	blobs := newMemBlobs()
	return &fixture{
		sessions: session.NewStore(blobs, testLogger{}),
		blobs:    blobs,
		engine:   newFakeEngine(),
	}
}

// addMergeFile uploads one valid PDF with the given page count.
func (f *fixture) addMergeFile(t *testing.T, svc *MergeOrchestrator, sessionID, name string, pages int) domain.UploadedDocument {
	t.Helper()
	f.engine.nextPages = pages
	accepted, rejected, err := svc.AddFiles(sessionID, []domain.FileUpload{pdfUpload(name)})
	if err != nil {
		t.Fatalf("AddFiles failed: %v", err)
	}
	if len(rejected) != 0 {
		t.Fatalf("unexpected rejection: %v", rejected)
	}
	if len(accepted) != 1 {
		t.Fatalf("expected 1 accepted file, got %d", len(accepted))
	}
	return accepted[0]
}
