package view

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/faktur/internal/export"
	"github.com/MrJamesThe3rd/faktur/internal/history"
	"github.com/MrJamesThe3rd/faktur/internal/history/store"
	"github.com/MrJamesThe3rd/faktur/internal/invoice"
	"github.com/MrJamesThe3rd/faktur/internal/printing"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newForm(t *testing.T) (FormModel, *store.Memory) {
	t.Helper()

	repo := store.NewMemory()
	hist := history.NewService(repo, nil)
	hist.Load(context.Background())

	return NewFormModel(hist, printing.NewRenderer(printing.DefaultProfile()), t.TempDir()), repo
}

func press(t *testing.T, m FormModel, k string) (FormModel, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(key(k))

	return next.(FormModel), cmd
}

func TestFormModel_AddAndRemove(t *testing.T) {
	m, _ := newForm(t)
	require.Equal(t, 1, m.ledger.Len())

	m, _ = press(t, m, "a")
	assert.Equal(t, 2, m.ledger.Len())
	assert.Equal(t, 1, m.table.Cursor())

	m, _ = press(t, m, "d")
	assert.Equal(t, 1, m.ledger.Len())
	assert.NoError(t, m.err)

	m, _ = press(t, m, "d")
	assert.Equal(t, 0, m.ledger.Len())

	m, _ = press(t, m, "d")
	assert.ErrorIs(t, m.err, invoice.ErrIndexOutOfRange)
}

func TestFormModel_ApplyItemCoerces(t *testing.T) {
	m, _ := newForm(t)

	m.itemAt = 0
	m.fields.description = "Kaos"
	m.fields.quantity = "3x"
	m.fields.price = "1500.5abc"
	require.NoError(t, m.applyItem())

	it, err := m.ledger.Item(0)
	require.NoError(t, err)
	assert.Equal(t, "Kaos", it.Description)
	assert.Equal(t, int64(3), it.Quantity)
	assert.Equal(t, "1500.5", it.UnitPrice.String())
	assert.Equal(t, "4501.5", m.ledger.Total().String())
}

func TestFormModel_ApplyHeaderRejectsBadDate(t *testing.T) {
	m, _ := newForm(t)
	before := m.header

	m.fields.date = "01/02/2024"
	assert.Error(t, m.applyHeader())
	assert.Equal(t, before, m.header)

	m.fields.number = " 001 "
	m.fields.date = "2024-02-01"
	m.fields.customer = "Budi"
	require.NoError(t, m.applyHeader())
	assert.Equal(t, "001", m.header.Number)
	assert.Equal(t, "2024-02-01", m.header.Date.String())
}

func TestFormModel_Save(t *testing.T) {
	m, repo := newForm(t)
	m.header.Number = "001"

	m, cmd := press(t, m, "s")
	require.NotNil(t, cmd)

	next, _ := m.Update(cmd())
	m = next.(FormModel)

	assert.NoError(t, m.err)
	assert.Contains(t, m.status, "berhasil disimpan")
	assert.Equal(t, 1, m.ledger.Len())

	stored, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestFormModel_SaveFailureKeepsForm(t *testing.T) {
	m, repo := newForm(t)
	repo.StoreErr = errors.New("quota exceeded")
	m.ledger = m.ledger.AddItem()

	m, cmd := press(t, m, "s")
	next, _ := m.Update(cmd())
	m = next.(FormModel)

	assert.ErrorIs(t, m.err, history.ErrStoreFailed)
	assert.Equal(t, 2, m.ledger.Len())
}

func TestFormModel_Print(t *testing.T) {
	m, _ := newForm(t)
	m.header.Number = "INV/01"

	m, cmd := press(t, m, "p")
	require.NotNil(t, cmd)

	msg, ok := cmd().(formPrintedMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
	assert.Contains(t, msg.path, "invoice-INV-01.pdf")

	_, err := os.Stat(msg.path)
	assert.NoError(t, err)
}

func TestFormModel_NewResets(t *testing.T) {
	m, _ := newForm(t)
	m.header.Customer = "Budi"
	m.ledger = m.ledger.AddItem().AddItem()

	m, _ = press(t, m, "n")
	assert.Empty(t, m.header.Customer)
	assert.Equal(t, 1, m.ledger.Len())
}

func TestDateRange(t *testing.T) {
	// Wednesday
	now := time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		tf        Timeframe
		wantStart string
		wantEnd   string
	}

	tests := []testCase{
		{name: "this week", tf: TimeframeThisWeek, wantStart: "2024-03-11", wantEnd: "2024-03-13"},
		{name: "last week", tf: TimeframeLastWeek, wantStart: "2024-03-04", wantEnd: "2024-03-10"},
		{name: "this month", tf: TimeframeThisMonth, wantStart: "2024-03-01", wantEnd: "2024-03-13"},
		{name: "last month", tf: TimeframeLastMonth, wantStart: "2024-02-01", wantEnd: "2024-02-29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := dateRange(tt.tf, now)
			assert.Equal(t, tt.wantStart, start.Format(time.DateOnly))
			assert.Equal(t, tt.wantEnd, end.Format(time.DateOnly))
		})
	}
}

func TestFilterByPeriod(t *testing.T) {
	mk := func(date string) invoice.Record {
		d, err := invoice.ParseDate(date)
		require.NoError(t, err)

		return invoice.Record{Number: date, Date: d}
	}

	records := []invoice.Record{mk("2024-01-31"), mk("2024-02-01"), mk("2024-02-29"), mk("2024-03-01")}

	feb := periodOf(
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC),
		"Februari",
	)

	got := filterByPeriod(records, feb)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-02-01", got[0].Number)
	assert.Equal(t, "2024-02-29", got[1].Number)

	assert.Len(t, filterByPeriod(records, Period{}), 4)
	assert.Len(t, records, 4)
}

func TestParsePeriod(t *testing.T) {
	type testCase struct {
		name      string
		start     string
		end       string
		wantLabel string
		wantErr   error
	}

	tests := []testCase{
		{name: "range", start: "2024-02-01", end: "2024-02-29", wantLabel: "2024-02-01 s/d 2024-02-29"},
		{name: "single day", start: "2024-02-01", end: "2024-02-01", wantLabel: "2024-02-01 s/d 2024-02-01"},
		{name: "surrounding spaces", start: " 2024-02-01 ", end: "2024-02-02\t", wantLabel: "2024-02-01 s/d 2024-02-02"},
		{name: "bad start", start: "01/02/2024", end: "2024-02-29", wantErr: errRangeStart},
		{name: "empty end", start: "2024-02-01", end: "", wantErr: errRangeEnd},
		{name: "end before start", start: "2024-02-29", end: "2024-02-01", wantErr: errRangeOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePeriod(tt.start, tt.end)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, got.IsAll())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantLabel, got.Label)
			assert.False(t, got.IsAll())
		})
	}
}

func TestTimeframe_Period(t *testing.T) {
	now := time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC)

	assert.True(t, TimeframeAll.Period(now).IsAll())
	assert.True(t, TimeframeCustom.Period(now).IsAll())

	p := TimeframeLastMonth.Period(now)
	assert.Equal(t, "Bulan Lalu", p.Label)
	assert.Equal(t, "2024-02-01", p.Start.String())
	assert.Equal(t, "2024-02-29", p.End.String())
}

func TestPeriodPicker_Preset(t *testing.T) {
	p := NewPeriodPicker(TimeframeThisWeek)
	p.now = func() time.Time { return time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC) }

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, TimeframeThisWeek, p.cursor)

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(TimeframeSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, "Minggu Lalu", msg.Period.Label)
	assert.Equal(t, "2024-03-04", msg.Period.Start.String())

	for range 10 {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	assert.Equal(t, TimeframeCustom, p.cursor)

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, p.Choosing())
	assert.Contains(t, p.View(), "Rentang tanggal")

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, p.Choosing())

	p.Reset()
	assert.Equal(t, TimeframeThisWeek, p.cursor)
}

func TestPdfFilename(t *testing.T) {
	assert.Equal(t, "invoice-draft.pdf", pdfFilename(""))
	assert.Equal(t, "invoice-001.pdf", pdfFilename("001"))
	assert.Equal(t, "invoice-INV-2024-01.pdf", pdfFilename("INV/2024/01"))
}

// failingReads serves the first Load and fails every later one.
type failingReads struct {
	*store.Memory
	reads int
}

func (f *failingReads) Load(ctx context.Context) ([]invoice.Record, error) {
	f.reads++
	if f.reads > 1 {
		return nil, errors.New("connection reset")
	}

	return f.Memory.Load(ctx)
}

func TestListModel_ShowsServiceHistory(t *testing.T) {
	repo := &failingReads{Memory: store.NewMemory(invoice.Record{Number: "001"}, invoice.Record{Number: "002"})}
	hist := history.NewService(repo, nil)
	hist.Load(context.Background())

	m := NewListModel(hist, export.NewService(hist), printing.NewRenderer(printing.DefaultProfile()), t.TempDir())

	next, _ := m.Update(m.Init()())
	m = next.(ListModel)
	assert.Len(t, m.all, 2)

	next, cmd := m.Update(key("r"))
	m = next.(ListModel)
	next, _ = m.Update(cmd())
	m = next.(ListModel)

	assert.Len(t, m.all, 2)
	assert.Equal(t, 1, repo.reads)
	assert.Len(t, hist.List(), 2)
}
