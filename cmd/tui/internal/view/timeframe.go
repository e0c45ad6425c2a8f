package view

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/faktur/internal/invoice"
)

// Timeframe is a predefined or custom period for filtering the invoice list.
type Timeframe int

const (
	TimeframeThisWeek  Timeframe = 0
	TimeframeLastWeek  Timeframe = 1
	TimeframeThisMonth Timeframe = 2
	TimeframeLastMonth Timeframe = 3
	TimeframeAll       Timeframe = 4
	TimeframeCustom    Timeframe = 5
)

func (t Timeframe) String() string {
	switch t {
	case TimeframeThisWeek:
		return "Minggu Ini"
	case TimeframeLastWeek:
		return "Minggu Lalu"
	case TimeframeThisMonth:
		return "Bulan Ini"
	case TimeframeLastMonth:
		return "Bulan Lalu"
	case TimeframeAll:
		return "Semua"
	case TimeframeCustom:
		return "Rentang Tanggal"
	}

	return "?"
}

// dateRange resolves tf relative to now. Weeks start on Monday.
func dateRange(tf Timeframe, now time.Time) (time.Time, time.Time) {
	var start, end time.Time

	switch tf {
	case TimeframeThisWeek:
		offset := int(now.Weekday())
		if offset == 0 {
			offset = 7
		}

		start = now.AddDate(0, 0, -offset+1)
		end = now
	case TimeframeLastWeek:
		offset := int(now.Weekday())
		if offset == 0 {
			offset = 7
		}

		end = now.AddDate(0, 0, -offset)
		start = end.AddDate(0, 0, -6)
	case TimeframeThisMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = now
	case TimeframeLastMonth:
		start = time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, -1)
	}

	return start, end
}

// Period resolves tf against now. TimeframeAll and TimeframeCustom resolve to
// the zero Period; a custom range comes from ParsePeriod.
func (t Timeframe) Period(now time.Time) Period {
	if t == TimeframeAll || t == TimeframeCustom {
		return Period{}
	}

	start, end := dateRange(t, now)

	return periodOf(start, end, t.String())
}

// Period is an inclusive range of invoice dates. The zero Period matches everything.
type Period struct {
	Start invoice.Date
	End   invoice.Date
	Label string
}

func (p Period) IsAll() bool {
	return p.Start.IsZero() && p.End.IsZero()
}

func (p Period) Contains(d invoice.Date) bool {
	if p.IsAll() {
		return true
	}

	day := d.Format(time.DateOnly)

	return day >= p.Start.Format(time.DateOnly) && day <= p.End.Format(time.DateOnly)
}

func periodOf(start, end time.Time, label string) Period {
	return Period{Start: invoice.DateOf(start), End: invoice.DateOf(end), Label: label}
}

var (
	errRangeStart = errors.New("tanggal awal tidak valid (YYYY-MM-DD)")
	errRangeEnd   = errors.New("tanggal akhir tidak valid (YYYY-MM-DD)")
	errRangeOrder = errors.New("tanggal akhir sebelum tanggal awal")
)

// ParsePeriod reads a custom range typed as two YYYY-MM-DD dates. Both ends
// are inclusive, so a single day is start == end.
func ParsePeriod(start, end string) (Period, error) {
	from, err := invoice.ParseDate(strings.TrimSpace(start))
	if err != nil {
		return Period{}, errRangeStart
	}

	to, err := invoice.ParseDate(strings.TrimSpace(end))
	if err != nil {
		return Period{}, errRangeEnd
	}

	if to.Before(from.Time) {
		return Period{}, errRangeOrder
	}

	return Period{Start: from, End: to, Label: from.String() + " s/d " + to.String()}, nil
}

// TimeframeSelectedMsg carries the period the list should switch to.
type TimeframeSelectedMsg struct {
	Period Period
}

func selectPeriod(p Period) tea.Cmd {
	return func() tea.Msg {
		return TimeframeSelectedMsg{Period: p}
	}
}

// rangeFields backs the custom range inputs across model copies.
type rangeFields struct {
	start, end string
}

// PeriodPicker offers the preset timeframes from first onwards, plus a
// custom range entered through a small form.
type PeriodPicker struct {
	first  Timeframe
	cursor Timeframe
	now    func() time.Time

	custom *huh.Form
	bounds *rangeFields
	err    error
}

func NewPeriodPicker(first Timeframe) PeriodPicker {
	return PeriodPicker{first: first, cursor: first, now: time.Now}
}

func (p PeriodPicker) Init() tea.Cmd {
	return nil
}

// Choosing is true while the preset list is showing rather than the range form.
func (p PeriodPicker) Choosing() bool {
	return p.custom == nil
}

func (p PeriodPicker) Update(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	if p.custom != nil {
		return p.updateRange(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		p.cursor = max(p.cursor-1, p.first)
	case "down", "j":
		p.cursor = min(p.cursor+1, TimeframeCustom)
	case "enter":
		if p.cursor == TimeframeCustom {
			return p.openRange()
		}

		p.err = nil

		return p, selectPeriod(p.cursor.Period(p.now()))
	}

	return p, nil
}

func (p PeriodPicker) openRange() (PeriodPicker, tea.Cmd) {
	bounds := &rangeFields{}

	p.bounds = bounds
	p.err = nil
	p.custom = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("start").
				Title("Dari").
				Placeholder("YYYY-MM-DD").
				Value(&bounds.start).
				Validate(func(s string) error {
					if _, err := invoice.ParseDate(strings.TrimSpace(s)); err != nil {
						return errRangeStart
					}

					return nil
				}),
			huh.NewInput().
				Key("end").
				Title("Sampai").
				Placeholder("YYYY-MM-DD").
				Value(&bounds.end).
				Validate(func(s string) error {
					_, err := ParsePeriod(bounds.start, s)
					return err
				}),
		),
	).WithWidth(40).WithShowHelp(false)

	return p, p.custom.Init()
}

func (p PeriodPicker) updateRange(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		p.custom = nil
		return p, nil
	}

	form, cmd := p.custom.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.custom = f
	}

	if p.custom.State != huh.StateCompleted {
		return p, cmd
	}

	period, err := ParsePeriod(p.bounds.start, p.bounds.end)
	if err != nil {
		p.err = err
		p.custom = nil

		return p, nil
	}

	return p, selectPeriod(period)
}

func (p PeriodPicker) View() string {
	var b strings.Builder

	if p.custom != nil {
		b.WriteString("Rentang tanggal\n\n")
		b.WriteString(p.custom.View())
		b.WriteString("\n" + faintStyle.Render("Enter: lanjut | Esc: kembali"))
	} else {
		b.WriteString("Pilih periode\n\n")

		for tf := p.first; tf <= TimeframeCustom; tf++ {
			if tf == p.cursor {
				b.WriteString(activeStyle.Render("> "+tf.String()) + "\n")
				continue
			}

			b.WriteString("  " + tf.String() + "\n")
		}

		b.WriteString("\n" + faintStyle.Render("Enter: pilih | Esc: kembali"))
	}

	if p.err != nil {
		b.WriteString("\n\n" + errorStyle.Render("Error: "+p.err.Error()))
	}

	return b.String()
}

// Reset puts the picker back on its first preset with no range form open.
func (p *PeriodPicker) Reset() {
	p.cursor = p.first
	p.custom = nil
	p.bounds = nil
	p.err = nil
}
