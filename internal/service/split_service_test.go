package service

import (
	"fmt"
	"testing"

	"pdf-toolkit-server/internal/domain"
	apperrors "pdf-toolkit-server/pkg/errors"
)

func uploadSplitFile(t *testing.T, f *fixture, svc *SplitPlanner, sessionID string, pages int) *domain.UploadedDocument {
	t.Helper()
	f.engine.nextPages = pages
	doc, err := svc.Upload(sessionID, pdfUpload("source.pdf"))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	return doc
}

func TestPlanRanges(t *testing.T) {
	tests := []struct {
		name      string
		req       domain.SplitRequest
		pageCount int
		want      []domain.PageRange
		wantType  apperrors.ErrorType
	}{
		{
			name:      "individual one range per page",
			req:       domain.SplitRequest{Mode: domain.SplitModeIndividual},
			pageCount: 3,
			want:      []domain.PageRange{{Start: 1, End: 1}, {Start: 2, End: 2}, {Start: 3, End: 3}},
		},
		{
			name:      "ranges with short tail",
			req:       domain.SplitRequest{Mode: domain.SplitModeRanges, PagesPerFile: 4},
			pageCount: 10,
			want:      []domain.PageRange{{Start: 1, End: 4}, {Start: 5, End: 8}, {Start: 9, End: 10}},
		},
		{
			name:      "ranges exact multiple",
			req:       domain.SplitRequest{Mode: domain.SplitModeRanges, PagesPerFile: 2},
			pageCount: 4,
			want:      []domain.PageRange{{Start: 1, End: 2}, {Start: 3, End: 4}},
		},
		{
			name:      "ranges chunk larger than document",
			req:       domain.SplitRequest{Mode: domain.SplitModeRanges, PagesPerFile: 10},
			pageCount: 3,
			want:      []domain.PageRange{{Start: 1, End: 3}},
		},
		{
			name:      "ranges zero chunk size",
			req:       domain.SplitRequest{Mode: domain.SplitModeRanges, PagesPerFile: 0},
			pageCount: 5,
			wantType:  apperrors.ErrorTypeInvalidChunkSize,
		},
		{
			name:      "ranges negative chunk size",
			req:       domain.SplitRequest{Mode: domain.SplitModeRanges, PagesPerFile: -1},
			pageCount: 5,
			wantType:  apperrors.ErrorTypeInvalidChunkSize,
		},
		{
			name: "custom valid ranges",
			req: domain.SplitRequest{Mode: domain.SplitModeCustom, Ranges: []domain.PageRange{
				{Start: 1, End: 2}, {Start: 4, End: 5},
			}},
			pageCount: 5,
			want:      []domain.PageRange{{Start: 1, End: 2}, {Start: 4, End: 5}},
		},
		{
			name: "custom overlapping ranges are permitted",
			req: domain.SplitRequest{Mode: domain.SplitModeCustom, Ranges: []domain.PageRange{
				{Start: 1, End: 3}, {Start: 2, End: 5},
			}},
			pageCount: 5,
			want:      []domain.PageRange{{Start: 1, End: 3}, {Start: 2, End: 5}},
		},
		{
			name:      "custom zero start",
			req:       domain.SplitRequest{Mode: domain.SplitModeCustom, Ranges: []domain.PageRange{{Start: 0, End: 3}}},
			pageCount: 5,
			wantType:  apperrors.ErrorTypeInvalidRange,
		},
		{
			name:      "custom end before start",
			req:       domain.SplitRequest{Mode: domain.SplitModeCustom, Ranges: []domain.PageRange{{Start: 3, End: 2}}},
			pageCount: 5,
			wantType:  apperrors.ErrorTypeInvalidRange,
		},
		{
			name:      "custom end past document",
			req:       domain.SplitRequest{Mode: domain.SplitModeCustom, Ranges: []domain.PageRange{{Start: 2, End: 6}}},
			pageCount: 5,
			wantType:  apperrors.ErrorTypeInvalidRange,
		},
		{
			name:      "custom empty ranges",
			req:       domain.SplitRequest{Mode: domain.SplitModeCustom},
			pageCount: 5,
			wantType:  apperrors.ErrorTypeInvalidRange,
		},
		{
			name:      "unknown mode",
			req:       domain.SplitRequest{Mode: "shuffle"},
			pageCount: 5,
			wantType:  apperrors.ErrorTypeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := planRanges(tt.req, tt.pageCount)
			if tt.wantType != "" {
				if !apperrors.IsType(err, tt.wantType) {
					t.Fatalf("expected %s error, got %v", tt.wantType, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("planRanges failed: %v", err)
			}
			if len(plan) != len(tt.want) {
				t.Fatalf("expected %d ranges, got %d", len(tt.want), len(plan))
			}
			for i := range plan {
				if plan[i] != tt.want[i] {
					t.Fatalf("range %d: expected %v, got %v", i, tt.want[i], plan[i])
				}
			}
		})
	}
}

func TestSplitService_ProcessIndividual(t *testing.T) {
	f := newFixture()
	svc := NewSplitService(f.sessions, f.blobs, f.engine, testLogger{})
	uploadSplitFile(t, f, svc, "s1", 3)

	outputs, err := svc.Process("s1", domain.SplitRequest{Mode: domain.SplitModeIndividual})
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if len(outputs) != 3 {
		t.Fatalf("expected one output per page, got %d", len(outputs))
	}
	for i, out := range outputs {
		wantName := fmt.Sprintf("page_%d.pdf", i+1)
		if out.Name != wantName {
			t.Fatalf("output %d: expected name %s, got %s", i, wantName, out.Name)
		}
		if out.PageCount != 1 {
			t.Fatalf("output %d: expected 1 page, got %d", i, out.PageCount)
		}
	}
}

func TestSplitService_ProcessRanges(t *testing.T) {
	f := newFixture()
	svc := NewSplitService(f.sessions, f.blobs, f.engine, testLogger{})
	uploadSplitFile(t, f, svc, "s1", 10)

	outputs, err := svc.Process("s1", domain.SplitRequest{Mode: domain.SplitModeRanges, PagesPerFile: 4})
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}

	wantPages := []int{4, 4, 2}
	if len(outputs) != len(wantPages) {
		t.Fatalf("expected %d outputs, got %d", len(wantPages), len(outputs))
	}
	total := 0
	for i, out := range outputs {
		if out.PageCount != wantPages[i] {
			t.Fatalf("output %d: expected %d pages, got %d", i, wantPages[i], out.PageCount)
		}
		total += out.PageCount
	}
	if total != 10 {
		t.Fatalf("expected chunks to cover all 10 pages, got %d", total)
	}
	if outputs[2].Name != "part_3_pages_9-10.pdf" {
		t.Fatalf("unexpected tail name: %s", outputs[2].Name)
	}
}

func TestSplitService_ProcessCustom(t *testing.T) {
	f := newFixture()
	svc := NewSplitService(f.sessions, f.blobs, f.engine, testLogger{})
	uploadSplitFile(t, f, svc, "s1", 5)

	outputs, err := svc.Process("s1", domain.SplitRequest{
		Mode:   domain.SplitModeCustom,
		Ranges: []domain.PageRange{{Start: 1, End: 2}, {Start: 4, End: 5}},
	})
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if len(outputs) != 2 {
		t.Fatalf("expected 2 outputs, got %d", len(outputs))
	}
	if outputs[0].Name != "range_1_pages_1-2.pdf" || outputs[1].Name != "range_2_pages_4-5.pdf" {
		t.Fatalf("unexpected output names: %s, %s", outputs[0].Name, outputs[1].Name)
	}
	if f.engine.extractCalls[0] != "1-2" || f.engine.extractCalls[1] != "4-5" {
		t.Fatalf("unexpected extract calls: %v", f.engine.extractCalls)
	}
}

func TestSplitService_ProcessWithoutUpload(t *testing.T) {
	f := newFixture()
	svc := NewSplitService(f.sessions, f.blobs, f.engine, testLogger{})

	_, err := svc.Process("s1", domain.SplitRequest{Mode: domain.SplitModeIndividual})
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSplitService_ReprocessDropsPreviousOutputs(t *testing.T) {
	f := newFixture()
	svc := NewSplitService(f.sessions, f.blobs, f.engine, testLogger{})
	uploadSplitFile(t, f, svc, "s1", 3)

	first, err := svc.Process("s1", domain.SplitRequest{Mode: domain.SplitModeIndividual})
	if err != nil {
		t.Fatalf("first process failed: %v", err)
	}

	second, err := svc.Process("s1", domain.SplitRequest{
		Mode:   domain.SplitModeCustom,
		Ranges: []domain.PageRange{{Start: 1, End: 3}},
	})
	if err != nil {
		t.Fatalf("second process failed: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("expected 1 output, got %d", len(second))
	}

	for _, out := range first {
		if _, err := f.blobs.Read(out.StoredName); err == nil {
			t.Fatalf("expected previous output %s to be removed", out.Name)
		}
	}

	got, err := svc.Output("s1", 0)
	if err != nil {
		t.Fatalf("output lookup failed: %v", err)
	}
	if got.StoredName != second[0].StoredName {
		t.Fatalf("output mismatch: %s vs %s", got.StoredName, second[0].StoredName)
	}
	if _, err := svc.Output("s1", 1); !apperrors.IsType(err, apperrors.ErrorTypeIndexOutOfRange) {
		t.Fatalf("expected index_out_of_range past the end, got %v", err)
	}
	if _, err := svc.Output("s1", -1); !apperrors.IsType(err, apperrors.ErrorTypeIndexOutOfRange) {
		t.Fatalf("expected index_out_of_range for negative index, got %v", err)
	}
}

func TestSplitService_UploadReplacesFileAndOutputs(t *testing.T) {
	f := newFixture()
	svc := NewSplitService(f.sessions, f.blobs, f.engine, testLogger{})

	first := uploadSplitFile(t, f, svc, "s1", 3)
	outputs, err := svc.Process("s1", domain.SplitRequest{Mode: domain.SplitModeIndividual})
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}

	uploadSplitFile(t, f, svc, "s1", 2)

	if _, err := f.blobs.Read(first.StoredName); err == nil {
		t.Fatalf("expected previous source blob to be removed")
	}
	for _, out := range outputs {
		if _, err := f.blobs.Read(out.StoredName); err == nil {
			t.Fatalf("expected previous output %s to be removed", out.Name)
		}
	}
	if _, err := svc.Output("s1", 0); err == nil {
		t.Fatalf("expected outputs to be cleared after re-upload")
	}
}

func TestSplitService_ProcessFailureCleansUp(t *testing.T) {
	f := newFixture()
	svc := NewSplitService(f.sessions, f.blobs, f.engine, testLogger{})
	uploadSplitFile(t, f, svc, "s1", 3)

	f.engine.failExtract = true
	_, err := svc.Process("s1", domain.SplitRequest{Mode: domain.SplitModeIndividual})
	if !apperrors.IsType(err, apperrors.ErrorTypeUpstreamFailure) {
		t.Fatalf("expected upstream_failure, got %v", err)
	}
	if _, err := svc.Output("s1", 0); err == nil {
		t.Fatalf("expected no outputs after failed split")
	}
}

func TestSplitService_Clear(t *testing.T) {
	f := newFixture()
	svc := NewSplitService(f.sessions, f.blobs, f.engine, testLogger{})
	doc := uploadSplitFile(t, f, svc, "s1", 2)
	if _, err := svc.Process("s1", domain.SplitRequest{Mode: domain.SplitModeIndividual}); err != nil {
		t.Fatalf("process failed: %v", err)
	}

	svc.Clear("s1")

	if _, err := f.blobs.Read(doc.StoredName); err == nil {
		t.Fatalf("expected source blob to be removed")
	}
	if _, err := svc.Output("s1", 0); err == nil {
		t.Fatalf("expected outputs to be cleared")
	}
}
