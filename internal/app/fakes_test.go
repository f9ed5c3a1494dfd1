package app

import (
	"context"
	"io"

	"playlist_tracker_bot/internal/domain/mail"
	"playlist_tracker_bot/internal/domain/playlist"
	"playlist_tracker_bot/internal/domain/sheet"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fakeSource struct {
	entries []playlist.Entry
	err     error
}

func (f *fakeSource) List(ctx context.Context, playlistURL string) ([]playlist.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

// fakeStore implements sheet.Store, capturing writes and serving canned
// reads.
type fakeStore struct {
	headers  []string
	records  []sheet.Record
	formulas map[int]string // keyed by 1-based row

	updated     [][]string
	rules       []sheet.ConditionalRule
	validations []int
	sharedWith  []string
	headerDone  bool
	frozen      bool
	reads       int
}

func (f *fakeStore) Headers(ctx context.Context) ([]string, error) {
	f.reads++
	return f.headers, nil
}

func (f *fakeStore) Records(ctx context.Context) ([]sheet.Record, error) {
	f.reads++
	return f.records, nil
}

func (f *fakeStore) CellFormula(ctx context.Context, row, col int) (string, error) {
	return f.formulas[row], nil
}

func (f *fakeStore) Update(ctx context.Context, values [][]string) error {
	f.updated = values
	return nil
}

func (f *fakeStore) FormatHeader(ctx context.Context, background sheet.Color) error {
	f.headerDone = true
	return nil
}

func (f *fakeStore) AddConditionalFormat(ctx context.Context, rule sheet.ConditionalRule) error {
	f.rules = append(f.rules, rule)
	return nil
}

func (f *fakeStore) SetStatusValidation(ctx context.Context, col, dataRows int, allowed []string) error {
	f.validations = append(f.validations, col)
	return nil
}

func (f *fakeStore) FreezeHeader(ctx context.Context) error {
	f.frozen = true
	return nil
}

func (f *fakeStore) Share(ctx context.Context, email string) error {
	f.sharedWith = append(f.sharedWith, email)
	return nil
}

type fakeMailer struct {
	sent    []mail.Message
	failFor map[string]error // keyed by recipient address
}

func (f *fakeMailer) Send(ctx context.Context, msg mail.Message) error {
	if err, ok := f.failFor[msg.To]; ok {
		return err
	}
	f.sent = append(f.sent, msg)
	return nil
}
