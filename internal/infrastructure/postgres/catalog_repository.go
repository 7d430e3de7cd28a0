package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/globalia/stock-api/internal/domain"
	"github.com/globalia/stock-api/internal/domain/entity"
	"github.com/globalia/stock-api/internal/domain/repository"
)

var _ repository.ModelInfoRepository = (*ModelInfoRepo)(nil)
var _ repository.WorkshopRepository = (*WorkshopRepo)(nil)
var _ repository.ClientRepository = (*ClientRepo)(nil)

// ModelInfoRepo fichas de modelo sobre PostgreSQL.
type ModelInfoRepo struct {
	q Querier
}

// NewModelInfoRepository construye el adaptador.
func NewModelInfoRepository(q Querier) *ModelInfoRepo {
	return &ModelInfoRepo{q: q}
}

// Upsert crea o actualiza la ficha.
func (r *ModelInfoRepo) Upsert(info *entity.ModelInfo) error {
	query := `
		INSERT INTO modelos (modelo, descripcion, color, cliente)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (modelo)
		DO UPDATE SET descripcion = EXCLUDED.descripcion, color = EXCLUDED.color, cliente = EXCLUDED.cliente`
	if _, err := r.q.Exec(context.Background(), query, info.Modelo, info.Descripcion, info.Color, info.Cliente); err != nil {
		return fmt.Errorf("upsert modelo: %w", err)
	}
	return nil
}

// Get devuelve la ficha o ErrNotFound.
func (r *ModelInfoRepo) Get(modelo string) (*entity.ModelInfo, error) {
	query := `SELECT modelo, descripcion, color, cliente FROM modelos WHERE modelo = $1`
	var info entity.ModelInfo
	err := r.q.QueryRow(context.Background(), query, modelo).Scan(
		&info.Modelo, &info.Descripcion, &info.Color, &info.Cliente,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: modelo %s", domain.ErrNotFound, modelo)
		}
		return nil, fmt.Errorf("get modelo: %w", err)
	}
	return &info, nil
}

// List devuelve las fichas ordenadas por modelo.
func (r *ModelInfoRepo) List() ([]entity.ModelInfo, error) {
	rows, err := r.q.Query(context.Background(), `SELECT modelo, descripcion, color, cliente FROM modelos ORDER BY modelo`)
	if err != nil {
		return nil, fmt.Errorf("list modelos: %w", err)
	}
	defer rows.Close()
	var list []entity.ModelInfo
	for rows.Next() {
		var info entity.ModelInfo
		if err := rows.Scan(&info.Modelo, &info.Descripcion, &info.Color, &info.Cliente); err != nil {
			return nil, fmt.Errorf("scan modelo: %w", err)
		}
		list = append(list, info)
	}
	return list, rows.Err()
}

// WorkshopRepo talleres sobre PostgreSQL.
type WorkshopRepo struct {
	q Querier
}

// NewWorkshopRepository construye el adaptador.
func NewWorkshopRepository(q Querier) *WorkshopRepo {
	return &WorkshopRepo{q: q}
}

// Add registra el taller; nombre duplicado es ErrDuplicate.
func (r *WorkshopRepo) Add(w *entity.Workshop) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO talleres (nombre, contacto) VALUES ($1, $2)`, w.Nombre, w.Contacto)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: taller %s", domain.ErrDuplicate, w.Nombre)
		}
		return fmt.Errorf("add taller: %w", err)
	}
	return nil
}

// Update cambia el contacto del taller.
func (r *WorkshopRepo) Update(nombre, contacto string) (*entity.Workshop, error) {
	query := `
		UPDATE talleres SET contacto = $2
		WHERE LOWER(nombre) = LOWER($1)
		RETURNING nombre, contacto`
	var w entity.Workshop
	err := r.q.QueryRow(context.Background(), query, nombre, contacto).Scan(&w.Nombre, &w.Contacto)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: taller %s", domain.ErrNotFound, nombre)
		}
		return nil, fmt.Errorf("update taller: %w", err)
	}
	return &w, nil
}

// Delete elimina el taller por nombre.
func (r *WorkshopRepo) Delete(nombre string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM talleres WHERE LOWER(nombre) = LOWER($1)`, nombre)
	if err != nil {
		return fmt.Errorf("delete taller: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: taller %s", domain.ErrNotFound, nombre)
	}
	return nil
}

// List devuelve los talleres por orden de nombre.
func (r *WorkshopRepo) List() ([]entity.Workshop, error) {
	rows, err := r.q.Query(context.Background(), `SELECT nombre, contacto FROM talleres ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list talleres: %w", err)
	}
	defer rows.Close()
	var list []entity.Workshop
	for rows.Next() {
		var w entity.Workshop
		if err := rows.Scan(&w.Nombre, &w.Contacto); err != nil {
			return nil, fmt.Errorf("scan taller: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

// ClientRepo clientes sobre PostgreSQL.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Add registra el cliente; nombre duplicado es ErrDuplicate.
func (r *ClientRepo) Add(c *entity.Client) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO clientes (nombre, contacto) VALUES ($1, $2)`, c.Nombre, c.Contacto)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: cliente %s", domain.ErrDuplicate, c.Nombre)
		}
		return fmt.Errorf("add cliente: %w", err)
	}
	return nil
}

// Update cambia el contacto del cliente.
func (r *ClientRepo) Update(nombre, contacto string) (*entity.Client, error) {
	query := `
		UPDATE clientes SET contacto = $2
		WHERE LOWER(nombre) = LOWER($1)
		RETURNING nombre, contacto`
	var c entity.Client
	err := r.q.QueryRow(context.Background(), query, nombre, contacto).Scan(&c.Nombre, &c.Contacto)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, nombre)
		}
		return nil, fmt.Errorf("update cliente: %w", err)
	}
	return &c, nil
}

// Delete elimina el cliente por nombre.
func (r *ClientRepo) Delete(nombre string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM clientes WHERE LOWER(nombre) = LOWER($1)`, nombre)
	if err != nil {
		return fmt.Errorf("delete cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, nombre)
	}
	return nil
}

// List devuelve los clientes por orden de nombre.
func (r *ClientRepo) List() ([]entity.Client, error) {
	rows, err := r.q.Query(context.Background(), `SELECT nombre, contacto FROM clientes ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()
	var list []entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.Nombre, &c.Contacto); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
