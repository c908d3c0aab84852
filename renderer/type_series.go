package renderer

import (
	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/etnz/folio/nav"
	"github.com/etnz/folio/series"
)

// Series summarizes a chart series. A series with no points only carries a
// Note explaining why.
type Series struct {
	Title        string        `json:"title"`
	Key          string        `json:"key,omitempty"`
	Unit         string        `json:"unit,omitempty"`
	Points       int           `json:"points"`
	From         date.Date     `json:"from"`
	To           date.Date     `json:"to"`
	First        float64       `json:"first"`
	Last         float64       `json:"last"`
	Change       folio.Percent `json:"change"`
	SuggestedMin float64       `json:"suggestedMin"`
	SuggestedMax float64       `json:"suggestedMax"`
	Note         string        `json:"note,omitempty"`
}

// NewSeries summarizes s.
func NewSeries(title, unit string, s series.Series) Series {
	if s.Len() == 0 {
		return Series{Title: title, Unit: unit}
	}
	first, last := s.First(), s.Last()
	return Series{
		Title:        title,
		Key:          s.Key,
		Unit:         unit,
		Points:       s.Len(),
		From:         date.Of(first.X),
		To:           date.Of(last.X),
		First:        first.Y,
		Last:         last.Y,
		Change:       folio.Change(first.Y, last.Y),
		SuggestedMin: s.SuggestedMin,
		SuggestedMax: s.SuggestedMax,
	}
}

// NewNAVSeries summarizes the NAV chart, noting when it has been rebuilt from
// the summary.
func NewNAVSeries(c nav.Chart) Series {
	s := NewSeries("Net asset value", c.Unit, c.Series)
	if c.Fallback {
		s.Note = "NAV history not available, showing inception and latest values only."
	}
	return s
}

// Unavailable returns a series with no point and a note.
func Unavailable(title, note string) Series { return Series{Title: title, Note: note} }
