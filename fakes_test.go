package main

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/resumeanalyzer/internal/analysis"
	"github.com/sirupsen/logrus"
)

type fakeAnalyzer struct {
	rec   *analysis.Record
	err   error
	mimes []string
}

func (f *fakeAnalyzer) AnalyzeDocument(_ context.Context, mime string, _ []byte) (*analysis.Record, error) {
	f.mimes = append(f.mimes, mime)
	return f.rec, f.err
}

type memStore struct {
	mu      sync.Mutex
	resumes map[uuid.UUID]Resume
	saveErr error
	pingErr error
	saves   int
}

func newMemStore() *memStore {
	return &memStore{resumes: map[uuid.UUID]Resume{}}
}

func (s *memStore) SaveResume(_ context.Context, fileName string, rec *analysis.Record) (Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return Resume{}, s.saveErr
	}
	r := Resume{ID: uuid.New(), FileName: fileName, UploadedAt: time.Now().UTC(), Record: *rec}
	s.resumes[r.ID] = r
	return r, nil
}

func (s *memStore) GetResume(_ context.Context, id uuid.UUID) (Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.resumes[id]
	if !ok {
		return Resume{}, ErrResumeNotFound
	}
	return r, nil
}

func (s *memStore) ListResumes(_ context.Context) ([]ResumeSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []ResumeSummary{}
	for _, r := range s.resumes {
		out = append(out, ResumeSummary{ID: r.ID, FileName: r.FileName, Name: r.Name, Email: r.Email, UploadedAt: r.UploadedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (s *memStore) Ping(context.Context) error {
	return s.pingErr
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
