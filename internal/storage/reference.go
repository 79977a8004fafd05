package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/conorfennell/vocabdeck/internal/domain"
)

// SearchLimit caps every reference search.
const SearchLimit = 10

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchIrregularVerbs returns up to SearchLimit verbs whose infinitive
// starts with q, case-insensitively, in alphabetical order. An empty q
// matches nothing.
func (db *DB) SearchIrregularVerbs(ctx context.Context, q string) ([]domain.IrregularVerb, error) {
	verbs := []domain.IrregularVerb{}
	if q == "" {
		return verbs, nil
	}

	rows, err := db.conn.QueryContext(ctx, `
		SELECT infinitive, simple_past, past_participle, translation_ru
		FROM irregular_verbs
		WHERE infinitive LIKE ? ESCAPE '\'
		ORDER BY infinitive LIMIT ?
	`, likeEscaper.Replace(strings.ToLower(q))+"%", SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search irregular verbs for %q: %w", q, err)
	}
	defer rows.Close()

	for rows.Next() {
		var v domain.IrregularVerb
		if err := rows.Scan(&v.Infinitive, &v.SimplePast, &v.PastParticiple, &v.Translation); err != nil {
			return nil, fmt.Errorf("failed to scan irregular verb row: %w", err)
		}
		verbs = append(verbs, v)
	}
	return verbs, rows.Err()
}

// FindIrregularVerb retrieves a verb by its exact infinitive. Returns nil if not found.
func (db *DB) FindIrregularVerb(ctx context.Context, infinitive string) (*domain.IrregularVerb, error) {
	var v domain.IrregularVerb
	err := db.conn.QueryRowContext(ctx, `
		SELECT infinitive, simple_past, past_participle, translation_ru
		FROM irregular_verbs WHERE infinitive = ?
	`, infinitive).Scan(&v.Infinitive, &v.SimplePast, &v.PastParticiple, &v.Translation)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Verb not found
		}
		return nil, fmt.Errorf("failed to find irregular verb %s: %w", infinitive, err)
	}
	return &v, nil
}

// InsertIrregularVerbs bulk-inserts verbs in one transaction, skipping
// infinitives that already exist. It returns the number of rows added.
func (db *DB) InsertIrregularVerbs(ctx context.Context, verbs []domain.IrregularVerb) (int, error) {
	var added int
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT OR IGNORE INTO irregular_verbs (infinitive, simple_past, past_participle, translation_ru)
			VALUES (?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare irregular verb insert: %w", err)
		}
		defer stmt.Close()

		for _, v := range verbs {
			res, err := stmt.ExecContext(ctx, v.Infinitive, v.SimplePast, v.PastParticiple, v.Translation)
			if err != nil {
				return fmt.Errorf("failed to insert irregular verb %s: %w", v.Infinitive, err)
			}
			n, _ := res.RowsAffected()
			added += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

const phrasalColumns = `id, infinitive, particle, preposition, full_expression, translation, type`

func scanPhrasalVerb(row rowScanner) (domain.PhrasalVerb, error) {
	var (
		v           domain.PhrasalVerb
		particle    sql.NullString
		preposition sql.NullString
	)
	err := row.Scan(&v.ID, &v.Infinitive, &particle, &preposition, &v.FullExpression, &v.Translation, &v.Type)
	if err != nil {
		return v, err
	}
	if particle.Valid {
		v.Particle = &particle.String
	}
	if preposition.Valid {
		v.Preposition = &preposition.String
	}
	return v, nil
}

// SearchPhrasalVerbs returns up to SearchLimit entries where q occurs anywhere
// in the infinitive, full expression or translation, ordered by full
// expression. An empty q matches nothing.
func (db *DB) SearchPhrasalVerbs(ctx context.Context, q string) ([]domain.PhrasalVerb, error) {
	verbs := []domain.PhrasalVerb{}
	if q == "" {
		return verbs, nil
	}

	pattern := "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
	rows, err := db.conn.QueryContext(ctx, `
		SELECT `+phrasalColumns+`
		FROM verbs_governance
		WHERE LOWER(infinitive) LIKE ? ESCAPE '\'
		   OR LOWER(full_expression) LIKE ? ESCAPE '\'
		   OR LOWER(translation) LIKE ? ESCAPE '\'
		ORDER BY full_expression LIMIT ?
	`, pattern, pattern, pattern, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search phrasal verbs for %q: %w", q, err)
	}
	defer rows.Close()

	for rows.Next() {
		v, err := scanPhrasalVerb(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan phrasal verb row: %w", err)
		}
		verbs = append(verbs, v)
	}
	return verbs, rows.Err()
}

// FindPhrasalVerb retrieves an entry by id. Returns nil if not found.
func (db *DB) FindPhrasalVerb(ctx context.Context, id int64) (*domain.PhrasalVerb, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT `+phrasalColumns+`
		FROM verbs_governance WHERE id = ?
	`, id)
	v, err := scanPhrasalVerb(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Entry not found
		}
		return nil, fmt.Errorf("failed to find phrasal verb %d: %w", id, err)
	}
	return &v, nil
}

// InsertPhrasalVerbs bulk-inserts entries in one transaction. Ids are
// assigned by the table, so the same expression may be inserted twice.
func (db *DB) InsertPhrasalVerbs(ctx context.Context, verbs []domain.PhrasalVerb) (int, error) {
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO verbs_governance (infinitive, particle, preposition, full_expression, translation, type)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare phrasal verb insert: %w", err)
		}
		defer stmt.Close()

		for _, v := range verbs {
			_, err := stmt.ExecContext(ctx,
				v.Infinitive,
				nullString(v.Particle),
				nullString(v.Preposition),
				v.FullExpression,
				v.Translation,
				v.Type,
			)
			if err != nil {
				return fmt.Errorf("failed to insert phrasal verb %q: %w", v.FullExpression, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(verbs), nil
}
