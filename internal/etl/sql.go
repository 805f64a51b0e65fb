package etl

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/BartekS5/odevalidator/pkg/database"
)

// SQLExtractor reads serialized records from a table, one JSON document per row,
// ordered by an id column.
type SQLExtractor struct {
	DB            *sql.DB
	Driver        string
	Table         string
	IDColumn      string
	PayloadColumn string
}

func (s *SQLExtractor) Extract(ctx context.Context, batchSize int, offset int) ([][]byte, int, error) {
	rows, err := s.DB.QueryContext(ctx, s.query(batchSize, offset))
	if err != nil {
		return nil, offset, fmt.Errorf("failed to query %s: %w", s.Table, err)
	}
	defer rows.Close()

	var results [][]byte
	for rows.Next() {
		var payload sql.NullString
		if err := rows.Scan(&payload); err != nil {
			return nil, offset, err
		}
		results = append(results, []byte(payload.String))
	}
	if err := rows.Err(); err != nil {
		return nil, offset, err
	}

	return results, offset + len(results), nil
}

func (s *SQLExtractor) query(batchSize, offset int) string {
	if s.Driver == database.DriverSQLite {
		return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s LIMIT %d OFFSET %d",
			s.PayloadColumn, s.Table, s.IDColumn, batchSize, offset)
	}
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s OFFSET %d ROWS FETCH NEXT %d ROWS ONLY",
		s.PayloadColumn, s.Table, s.IDColumn, offset, batchSize)
}
