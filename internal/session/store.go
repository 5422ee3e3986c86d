// Package session manages the transient per-user state for the three tool
// tabs: the merge file list, the split file and its outputs, and the
// extracted text buffer.
package session

import (
	"sync"
	"time"

	"pdf-toolkit-server/internal/domain"
)

// MergeState holds the merge tab's ordered file list and derived output.
type MergeState struct {
	Files  []domain.UploadedDocument
	Result *domain.ProcessedFile
}

// SplitState holds the split tab's source file and derived outputs.
type SplitState struct {
	File    *domain.UploadedDocument
	Outputs []domain.ProcessedFile
}

// ConvertState holds the convert tab's source file and text buffer.
// Extracted marks whether extraction has run for the current file.
type ConvertState struct {
	File      *domain.UploadedDocument
	Text      string
	Extracted bool
}

// Session is one user's in-progress state. The three tab states are
// independent; operations within a session lock Mutex so individual
// requests stay atomic. Concurrent requests in one session are otherwise
// last-write-wins.
type Session struct {
	ID      string
	Merge   MergeState
	Split   SplitState
	Convert ConvertState

	CreatedAt time.Time
	LastSeen  time.Time

	Mutex sync.Mutex
}

// StoredNames returns every blob store key referenced by the session.
func (s *Session) StoredNames() []string {
	var names []string
	for _, f := range s.Merge.Files {
		names = append(names, f.StoredName)
	}
	if s.Merge.Result != nil {
		names = append(names, s.Merge.Result.StoredName)
	}
	if s.Split.File != nil {
		names = append(names, s.Split.File.StoredName)
	}
	for _, o := range s.Split.Outputs {
		names = append(names, o.StoredName)
	}
	if s.Convert.File != nil {
		names = append(names, s.Convert.File.StoredName)
	}
	return names
}

// Store keeps all active sessions, keyed by session ID.
type Store struct {
	sessions map[string]*Session
	mutex    sync.RWMutex

	blobs  domain.BlobStore
	logger domain.Logger
}

// NewStore creates an empty session store.
func NewStore(blobs domain.BlobStore, logger domain.Logger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		blobs:    blobs,
		logger:   logger,
	}
}

// Get returns the session for id, creating it on first touch.
func (st *Store) Get(id string) *Session {
	st.mutex.Lock()
	defer st.mutex.Unlock()

	if sess, ok := st.sessions[id]; ok {
		sess.LastSeen = time.Now()
		return sess
	}

	now := time.Now()
	sess := &Session{
		ID:        id,
		CreatedAt: now,
		LastSeen:  now,
	}
	st.sessions[id] = sess
	st.logger.Debug("Session created", "session_id", id)
	return sess
}

// Lookup returns the session for id without creating one.
func (st *Store) Lookup(id string) (*Session, bool) {
	st.mutex.RLock()
	defer st.mutex.RUnlock()
	sess, ok := st.sessions[id]
	return sess, ok
}

// Count returns the number of active sessions.
func (st *Store) Count() int {
	st.mutex.RLock()
	defer st.mutex.RUnlock()
	return len(st.sessions)
}

// Delete removes the session and every blob it references.
func (st *Store) Delete(id string) {
	st.mutex.Lock()
	sess, ok := st.sessions[id]
	if ok {
		delete(st.sessions, id)
	}
	st.mutex.Unlock()

	if !ok {
		return
	}
	st.removeBlobs(sess)
	st.logger.Debug("Session deleted", "session_id", id)
}

// StartJanitor sweeps idle sessions every interval until stop is closed.
func (st *Store) StartJanitor(ttl, interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				st.Sweep(ttl)
			case <-stop:
				return
			}
		}
	}()
}

// Sweep deletes every session idle for longer than ttl.
func (st *Store) Sweep(ttl time.Duration) {
	cutoff := time.Now().Add(-ttl)

	st.mutex.Lock()
	var expired []*Session
	for id, sess := range st.sessions {
		if sess.LastSeen.Before(cutoff) {
			expired = append(expired, sess)
			delete(st.sessions, id)
		}
	}
	st.mutex.Unlock()

	for _, sess := range expired {
		st.removeBlobs(sess)
		st.logger.Info("Expired session removed", "session_id", sess.ID)
	}
}

func (st *Store) removeBlobs(sess *Session) {
	sess.Mutex.Lock()
	names := sess.StoredNames()
	sess.Mutex.Unlock()

	for _, name := range names {
		if err := st.blobs.Remove(name); err != nil {
			st.logger.Warn("Failed to remove session blob", "session_id", sess.ID, "blob", name, "error", err)
		}
	}
}
