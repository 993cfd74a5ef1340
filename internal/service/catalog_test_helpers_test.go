package service

import (
	"context"
	"sync/atomic"

	"github.com/noah-isme/course-viewer/internal/models"
)

func sampleRaw() *models.RawTable {
	return &models.RawTable{
		Header: []string{"Title", "Instructor", "Id", "Classroom", "Time", "Credits"},
		Index:  []string{"0", "1", "2", "3", "4"},
		Rows: [][]string{
			{" Calculus ", "Chen", "MA101", " R101 ", " 一三 10:00-12:00 ", "3"},
			{"Physics", "Lin", "PH201", "R202", "二 08:00-10:00", "4"},
			{"Seminar", "Wang", "SE001", "R303", "", "1"},
			{"Chemistry", "Chen", "CH110", "R404", "一 08:00 三 10:00 五 13:00", "3"},
			{"Art", "Hsu", "AR100", "R505", "六日 09:00", "2"},
		},
	}
}

func sampleTable() *models.Table {
	return BuildTable(sampleRaw(), "test")
}

type stubSource struct {
	raw   *models.RawTable
	err   error
	calls int32
	gate  chan struct{}
}

func (s *stubSource) Load(ctx context.Context) (*models.RawTable, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.gate != nil {
		<-s.gate
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.raw, nil
}

func (s *stubSource) Describe() string { return "stub" }

func (s *stubSource) Calls() int {
	return int(atomic.LoadInt32(&s.calls))
}

func ids(view *models.View) []string {
	idx := -1
	for i, c := range view.Columns {
		if c == models.ColumnID {
			idx = i
		}
	}
	out := make([]string, 0, len(view.Rows))
	for _, row := range view.Rows {
		out = append(out, row[idx])
	}
	return out
}
