package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fekuna/boutique-catalog-service/internal/category/dto"
	"github.com/fekuna/boutique-catalog-service/internal/model"
	"github.com/fekuna/boutique-catalog-service/internal/query"
	"github.com/jmoiron/sqlx"
)

// SQLRepository works against both the Postgres and the SQLite schema;
// queries are written with named or ? placeholders and rebound per driver.
type SQLRepository struct {
	DB  *sqlx.DB
	Now func() time.Time
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{DB: db, Now: func() time.Time { return time.Now().UTC() }}
}

func (r *SQLRepository) Create(ctx context.Context, c *model.Category) error {
	c.Description = nullIfEmpty(c.Description)
	c.Image = nullIfEmpty(c.Image)
	q := `
        INSERT INTO categories (id, name, slug, description, image, created_at, updated_at)
        VALUES (:id, :name, :slug, :description, :image, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, q, c)
	return err
}

func (r *SQLRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	return r.findOne(ctx, `SELECT * FROM categories WHERE id = ? LIMIT 1`, id)
}

func (r *SQLRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return r.findOne(ctx, `SELECT * FROM categories WHERE slug = ? LIMIT 1`, slug)
}

func (r *SQLRepository) findOne(ctx context.Context, q string, arg interface{}) (*model.Category, error) {
	var category model.Category
	err := r.DB.GetContext(ctx, &category, r.DB.Rebind(q), arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *SQLRepository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, int, error) {
	categories := []model.Category{}
	var count int

	where := query.NewWhere()
	if f.SearchTerm != "" {
		where.ContainsFold("name", "search", f.SearchTerm)
	}

	countQuery, args, err := r.named("SELECT count(*) FROM categories"+where.SQL(), where.Args())
	if err != nil {
		return nil, 0, err
	}
	if err := r.DB.GetContext(ctx, &count, countQuery, args...); err != nil {
		return nil, 0, err
	}

	page := query.Page{Page: f.Page, Limit: f.Limit}
	listQuery, args, err := r.named(
		"SELECT * FROM categories"+where.SQL()+" ORDER BY name ASC, id ASC"+page.Clause(0),
		where.Args(),
	)
	if err != nil {
		return nil, 0, err
	}
	if err := r.DB.SelectContext(ctx, &categories, listQuery, args...); err != nil {
		return nil, 0, err
	}

	return categories, count, nil
}

func (r *SQLRepository) Update(ctx context.Context, id string, patch *dto.UpdateCategoryInput) (bool, error) {
	sets := []string{"updated_at = :updated_at"}
	args := map[string]interface{}{
		"id":         id,
		"updated_at": r.Now(),
	}
	if patch.Name != nil {
		sets = append(sets, "name = :name")
		args["name"] = *patch.Name
	}
	if patch.Slug != nil {
		sets = append(sets, "slug = :slug")
		args["slug"] = *patch.Slug
	}
	if patch.Description != nil {
		sets = append(sets, "description = :description")
		args["description"] = nullIfEmpty(patch.Description)
	}
	if patch.Image != nil {
		sets = append(sets, "image = :image")
		args["image"] = nullIfEmpty(patch.Image)
	}

	q := "UPDATE categories SET " + strings.Join(sets, ", ") + " WHERE id = :id"
	res, err := r.DB.NamedExecContext(ctx, q, args)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	// Products keep their category slug; there is no cascade.
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind("DELETE FROM categories WHERE id = ?"), id)
	return err
}

func (r *SQLRepository) named(q string, arg interface{}) (string, []interface{}, error) {
	bound, args, err := sqlx.Named(q, arg)
	if err != nil {
		return "", nil, err
	}
	return r.DB.Rebind(bound), args, nil
}

func nullIfEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
