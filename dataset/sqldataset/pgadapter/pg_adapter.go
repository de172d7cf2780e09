/*
Package pgadapter provides an implementation of the
Adapter interface in the sqldataset package that works
over a PostgreSQL database.
*/
package pgadapter

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pbanos/id3/dataset/sqldataset"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
)

const (
	discreteValueTableCreateStmt = `CREATE TABLE IF NOT EXISTS discreteValues (
		id SERIAL PRIMARY KEY,
		value TEXT UNIQUE NOT NULL)`

	// MaxDiscreteValueInsertionsPerStatement is the maximum number
	// of discrete values that are allowed to be added with a single
	// insert command with the AddDiscreteValues method of the adapter.
	// Trying to add more will result in making more insertion commands
	MaxDiscreteValueInsertionsPerStatement = 10

	// MaxSampleInsertionsPerStatement is the maximum number
	// of samples that are allowed to be added with a single
	// insert command with the AddSamples method of the adapter.
	// Trying to add more will result in making more insertion commands
	MaxSampleInsertionsPerStatement = 10
)

type adapter struct {
	db *sql.DB
}

/*
New takes a PostgreSQL database connection URL and returns
an Adapter that works on the database or an error if it fails to connect to it.
*/
func New(url string) (sqldataset.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	return &adapter{db}, nil
}

func (a *adapter) ColumnName(featureName string) (string, error) {
	if featureName == "id" {
		return "", fmt.Errorf(`'%s' is reserved and cannot be used as feature name`, featureName)
	}
	if strings.ContainsAny(featureName, `"`) {
		return "", fmt.Errorf(`feature name '%s' contains invalid character '"'`, featureName)
	}
	return featureName, nil
}

func (a *adapter) CreateDiscreteValuesTable(ctx context.Context) error {
	_, err := a.db.ExecContext(ctx, discreteValueTableCreateStmt)
	if err != nil {
		return fmt.Errorf("running discreteValues creation statement: %v", err)
	}
	return nil
}

func (a *adapter) CreateSampleTable(ctx context.Context, columns []string) error {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS samples(")
	for _, c := range columns {
		fmt.Fprintf(&b, `"%s" INTEGER NOT NULL REFERENCES discreteValues(id), `, c)
	}
	b.WriteString(`"id" SERIAL PRIMARY KEY)`)
	_, err := a.db.ExecContext(ctx, b.String())
	if err != nil {
		return fmt.Errorf("ensuring samples table exists: %v", err)
	}
	return nil
}

func (a *adapter) AddDiscreteValues(ctx context.Context, values []string) (int, error) {
	var inserted int
	for start := 0; start < len(values); start += MaxDiscreteValueInsertionsPerStatement {
		end := start + MaxDiscreteValueInsertionsPerStatement
		if end > len(values) {
			end = len(values)
		}
		chunk := values[start:end]
		args := make([]interface{}, 0, len(chunk))
		tuples := make([]string, 0, len(chunk))
		for i, v := range chunk {
			tuples = append(tuples, fmt.Sprintf("($%d)", i+1))
			args = append(args, v)
		}
		stmt := "INSERT INTO discreteValues (value) VALUES " + strings.Join(tuples, ", ") + " ON CONFLICT (value) DO NOTHING"
		_, err := a.db.ExecContext(ctx, stmt, args...)
		if err != nil {
			return inserted, fmt.Errorf("inserting %d values after the first %d: %v", len(chunk), inserted, err)
		}
		inserted = end
	}
	return inserted, nil
}

func (a *adapter) ListDiscreteValues(ctx context.Context) (map[int]string, error) {
	rows, err := a.db.QueryContext(ctx, `SELECT id, value FROM discreteValues`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make(map[int]string)
	for rows.Next() {
		var id int
		var value string
		err = rows.Scan(&id, &value)
		if err != nil {
			return nil, err
		}
		result[id] = value
	}
	return result, rows.Err()
}

func (a *adapter) AddSamples(ctx context.Context, rawSamples [][]int, columns []string) (int, error) {
	if len(rawSamples) == 0 {
		return 0, nil
	}
	if len(columns) == 0 {
		return 0, fmt.Errorf("no features to store")
	}
	insertStmtStart := `INSERT INTO samples ("` + strings.Join(columns, `", "`) + `") VALUES `
	var inserted int
	for start := 0; start < len(rawSamples); start += MaxSampleInsertionsPerStatement {
		end := start + MaxSampleInsertionsPerStatement
		if end > len(rawSamples) {
			end = len(rawSamples)
		}
		chunk := rawSamples[start:end]
		args := make([]interface{}, 0, len(chunk)*len(columns))
		tuples := make([]string, 0, len(chunk))
		for _, rs := range chunk {
			if len(rs) != len(columns) {
				return inserted, fmt.Errorf("sample %d has %d values for %d columns", len(args)/len(columns)+start, len(rs), len(columns))
			}
			placeholders := make([]string, 0, len(rs))
			for _, v := range rs {
				args = append(args, v)
				placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
			}
			tuples = append(tuples, "("+strings.Join(placeholders, ", ")+")")
		}
		_, err := a.db.ExecContext(ctx, insertStmtStart+strings.Join(tuples, ", "), args...)
		if err != nil {
			return inserted, fmt.Errorf("inserting %d samples after the first %d: %v", len(chunk), inserted, err)
		}
		inserted = end
	}
	return inserted, nil
}

func (a *adapter) IterateOnSamples(ctx context.Context, columns []string, lambda func(int, []int) (bool, error)) error {
	query := `SELECT "` + strings.Join(columns, `", "`) + `" FROM samples ORDER BY "id"`
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for j := 0; rows.Next(); j++ {
		values := make([]int, len(columns))
		dest := make([]interface{}, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		err = rows.Scan(dest...)
		if err != nil {
			return err
		}
		ok, err := lambda(j, values)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return rows.Err()
}

func (a *adapter) CountSamples(ctx context.Context) (int, error) {
	var count int
	err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM samples`).Scan(&count)
	return count, err
}

func (a *adapter) Close() error {
	return a.db.Close()
}
