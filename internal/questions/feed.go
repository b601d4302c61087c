package questions

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/VitaminP8/dsaboard/internal/model"
	"github.com/rs/zerolog/log"
)

var (
	ErrFetch = errors.New("could not fetch questions file")
	ErrParse = errors.New("could not parse questions file")
)

// DefaultURLTemplate is filled with the lowercased company key.
const DefaultURLTemplate = "https://raw.githubusercontent.com/Hemant9785/dsa_server/main/results/%s.csv"

// Feed reads per-company question lists from remote CSV files. Every call
// fetches the file again.
type Feed struct {
	client      *http.Client
	urlTemplate string
}

func NewFeed(client *http.Client, urlTemplate string) *Feed {
	if client == nil {
		client = http.DefaultClient
	}
	if urlTemplate == "" {
		urlTemplate = DefaultURLTemplate
	}
	return &Feed{client: client, urlTemplate: urlTemplate}
}

func (f *Feed) Questions(ctx context.Context, company string) ([]model.Question, error) {
	key := url.PathEscape(strings.ToLower(company))
	target := fmt.Sprintf(f.urlTemplate, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s responded %d", ErrFetch, target, resp.StatusCode)
	}

	questions, err := parse(resp.Body)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("company", key).Int("questions", len(questions)).Msg("questions fetched")
	return questions, nil
}

// parse reads a CSV with a header row. Columns are located by name; rows
// without a link or a title are skipped.
func parse(r io.Reader) ([]model.Question, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []model.Question{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}

	field := func(record []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	questions := []model.Question{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}

		q := model.Question{
			Link:       field(record, "Link"),
			Difficulty: field(record, "Difficulty"),
			Title:      field(record, "Title"),
		}
		if q.Link == "" || q.Title == "" {
			continue
		}
		questions = append(questions, q)
	}

	return questions, nil
}
