package puzzle

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

// DefaultTable holds one row per puzzle line.
const DefaultTable = "hexword.puzzles"

// ErrNotFound is returned when a puzzle id has no rows.
var ErrNotFound = errors.New("puzzle not found")

// Store reads puzzles from a BigQuery table.
type Store struct {
	client   *bigquery.Client
	table    string
	location string
}

// puzzleRow is one line of a stored puzzle. Radius and multiplicity are
// repeated on every row of the same puzzle.
type puzzleRow struct {
	PuzzleID     string              `bigquery:"puzzle_id"`
	Radius       int64               `bigquery:"radius"`
	Multiplicity bigquery.NullInt64  `bigquery:"multiplicity"`
	Q            int64               `bigquery:"q"`
	R            int64               `bigquery:"r"`
	Direction    string              `bigquery:"direction"`
	Pattern      bigquery.NullString `bigquery:"pattern"`
	Predicate    bigquery.NullString `bigquery:"predicate"`
}

// NewStore connects to BigQuery in projectID. An empty table means
// DefaultTable.
func NewStore(ctx context.Context, projectID, table string) (*Store, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	if table == "" {
		table = DefaultTable
	}
	return &Store{client: client, table: table, location: "US"}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// Get loads, defaults and validates the puzzle with the given id.
func (s *Store) Get(ctx context.Context, id string) (*File, error) {
	q := s.client.Query(fmt.Sprintf(
		"SELECT puzzle_id, radius, multiplicity, q, r, direction, pattern, predicate FROM `%s` WHERE puzzle_id = @id ORDER BY q DESC, r, direction",
		s.table))
	q.Location = s.location
	q.Parameters = []bigquery.QueryParameter{{Name: "id", Value: id}}

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}

	var rows []puzzleRow
	for {
		var row puzzleRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}
		rows = append(rows, row)
	}

	f, err := rowsToFile(id, rows)
	if err != nil {
		return nil, err
	}
	f.applyDefaults()
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("puzzle %q: %w", id, err)
	}
	return f, nil
}

func rowsToFile(id string, rows []puzzleRow) (*File, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("puzzle %q: %w", id, ErrNotFound)
	}

	f := &File{Name: id, Radius: int(rows[0].Radius)}
	if rows[0].Multiplicity.Valid {
		f.Multiplicity = int(rows[0].Multiplicity.Int64)
	}
	for i, row := range rows {
		if row.Radius != rows[0].Radius || row.Multiplicity != rows[0].Multiplicity {
			return nil, fmt.Errorf("puzzle %q: row %d disagrees on radius or multiplicity", id, i)
		}
		f.Lines = append(f.Lines, LineSpec{
			Q:         int(row.Q),
			R:         int(row.R),
			Direction: row.Direction,
			Pattern:   row.Pattern.StringVal,
			Predicate: row.Predicate.StringVal,
		})
	}
	return f, nil
}
