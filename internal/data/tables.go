package data

import (
	"FoosTableApi/internal/codes"
	"FoosTableApi/internal/validator"
	"context"
	"database/sql"
	"errors"
	"time"
)

var errDuplicateCode = errors.New("duplicate table code")

// Table is a physical foosball table, identified to walk-up players by the
// 4-character join code printed on it.
type Table struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	UniqueCode string `json:"unique_code"`
}

type TableModel struct {
	db *sql.DB
}

func (m *TableModel) Insert(table *Table) error {
	table.UniqueCode = codes.Generate()

	err := m.insert(table)
	if err != nil {
		switch {
		case errors.Is(err, errDuplicateCode):
			return m.Insert(table)
		default:
			return err
		}
	}

	return nil
}

func (m *TableModel) insert(table *Table) error {
	stmt := `
		INSERT INTO fooseballtables (name, unique_code)
		VALUES ($1, $2)
		RETURNING id`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := m.db.QueryRowContext(ctx, stmt, table.Name, table.UniqueCode).Scan(&table.ID)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint `+
			`"fooseballtables_unique_code_key"`:
			return errDuplicateCode
		default:
			return err
		}
	}

	return nil
}

func (m *TableModel) Get(id int64) (*Table, error) {
	stmt := `
		SELECT id, name, unique_code
		FROM fooseballtables
		WHERE id = $1`

	var table Table

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := m.db.QueryRowContext(ctx, stmt, id).Scan(&table.ID, &table.Name, &table.UniqueCode)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &table, nil
}

func (m *TableModel) GetByCode(uniqueCode string) (*Table, error) {
	stmt := `
		SELECT id, name, unique_code
		FROM fooseballtables
		WHERE unique_code = $1`

	var table Table

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := m.db.QueryRowContext(ctx, stmt, uniqueCode).Scan(&table.ID, &table.Name,
		&table.UniqueCode)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &table, nil
}

func (m *TableModel) GetAll() ([]*Table, error) {
	stmt := `
		SELECT id, name, unique_code
		FROM fooseballtables
		ORDER BY id`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := make([]*Table, 0)
	for rows.Next() {
		var table Table
		err := rows.Scan(&table.ID, &table.Name, &table.UniqueCode)
		if err != nil {
			return nil, err
		}
		tables = append(tables, &table)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tables, nil
}

func ValidateTable(v *validator.Validator, table *Table) {
	v.Check(table.Name != "", "name", "must be provided")
	v.Check(len(table.Name) <= 50, "name", "must be 50 characters or less")
}
