// Copyright 2025 RentScout Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package listings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// SQLStore reads the apartments table over a MySQL-protocol connection
// (TiDB in production).
type SQLStore struct {
	db *sql.DB
}

// OpenSQL connects with the given DSN and verifies the connection before
// returning, so a bad DSN surfaces at startup rather than on first query.
func OpenSQL(ctx context.Context, dsn string) (*SQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open listings db: %w", err)
	}
	db.SetConnMaxLifetime(3 * time.Minute)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping listings db: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Source() string { return "tidb" }

// Close releases the connection pool.
func (s *SQLStore) Close() error { return s.db.Close() }

const listingColumns = "id, name, address, city, state, price, bed_info, phone"

func (s *SQLStore) Search(ctx context.Context, city, state string, maxPrice float64, limit int) ([]Listing, error) {
	query := "SELECT " + listingColumns + " FROM apartments WHERE state = ? AND price < ?"
	args := []any{state, maxPrice}
	if city != "" {
		query += " AND city = ?"
		args = append(args, city)
	}
	query += " ORDER BY price LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}
	defer rows.Close()

	var out []Listing
	for rows.Next() {
		var l Listing
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.City, &l.State, &l.Price, &l.BedInfo, &l.Phone); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}
	return out, nil
}

func (s *SQLStore) Get(ctx context.Context, id int64) (Listing, error) {
	var l Listing
	row := s.db.QueryRowContext(ctx,
		"SELECT "+listingColumns+" FROM apartments WHERE id = ?", id)
	err := row.Scan(&l.ID, &l.Name, &l.Address, &l.City, &l.State, &l.Price, &l.BedInfo, &l.Phone)
	if errors.Is(err, sql.ErrNoRows) {
		return Listing{}, ErrNotFound
	}
	if err != nil {
		return Listing{}, fmt.Errorf("get listing %d: %w", id, err)
	}
	return l, nil
}
