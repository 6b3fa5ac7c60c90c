package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fekuna/boutique-catalog-service/internal/model"
	"github.com/fekuna/boutique-catalog-service/internal/product/dto"
	"github.com/fekuna/boutique-catalog-service/internal/query"
	"github.com/jmoiron/sqlx"
)

type SQLRepository struct {
	DB  *sqlx.DB
	Now func() time.Time
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{DB: db, Now: func() time.Time { return time.Now().UTC() }}
}

func (r *SQLRepository) Create(ctx context.Context, p *model.Product) error {
	if p.Images == nil {
		p.Images = model.StringList{}
	}
	p.SubCategory = nullIfEmpty(p.SubCategory)
	q := `
        INSERT INTO products (
            id, name, description, price, category, sub_category, images,
            in_stock, featured, created_at, updated_at
        ) VALUES (
            :id, :name, :description, :price, :category, :sub_category, :images,
            :in_stock, :featured, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, q, p)
	return err
}

func (r *SQLRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	err := r.DB.GetContext(ctx, &product, r.DB.Rebind(`SELECT * FROM products WHERE id = ? LIMIT 1`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *SQLRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	products := []model.Product{}
	var count int

	where := query.NewWhere()
	if f.Category != "" {
		where.Eq("category", "category", f.Category)
	}
	if f.Featured != nil {
		where.Eq("featured", "featured", *f.Featured)
	}
	if f.SearchTerm != "" {
		where.ContainsFold("name", "search", f.SearchTerm)
	}

	countQuery, args, err := r.named("SELECT count(*) FROM products"+where.SQL(), where.Args())
	if err != nil {
		return nil, 0, err
	}
	if err := r.DB.GetContext(ctx, &count, countQuery, args...); err != nil {
		return nil, 0, err
	}

	page := query.Page{Page: f.Page, Limit: f.Limit}
	listQuery, args, err := r.named(
		"SELECT * FROM products"+where.SQL()+" ORDER BY created_at DESC, id DESC"+page.Clause(f.LimitCount),
		where.Args(),
	)
	if err != nil {
		return nil, 0, err
	}
	if err := r.DB.SelectContext(ctx, &products, listQuery, args...); err != nil {
		return nil, 0, err
	}

	return products, count, nil
}

func (r *SQLRepository) Update(ctx context.Context, id string, patch *dto.UpdateProductInput) (bool, error) {
	sets := []string{"updated_at = :updated_at"}
	args := map[string]interface{}{
		"id":         id,
		"updated_at": r.Now(),
	}
	set := func(col string, v interface{}) {
		sets = append(sets, col+" = :"+col)
		args[col] = v
	}

	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Price != nil {
		set("price", *patch.Price)
	}
	if patch.Category != nil {
		set("category", *patch.Category)
	}
	if patch.SubCategory != nil {
		set("sub_category", nullIfEmpty(patch.SubCategory))
	}
	if patch.Images != nil {
		set("images", model.StringList(*patch.Images))
	}
	if patch.InStock != nil {
		set("in_stock", *patch.InStock)
	}
	if patch.Featured != nil {
		set("featured", *patch.Featured)
	}

	q := "UPDATE products SET " + strings.Join(sets, ", ") + " WHERE id = :id"
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
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind("DELETE FROM products WHERE id = ?"), id)
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
