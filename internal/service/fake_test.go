// fake_test.go — in-memory реализация репозиториев и транзакций для unit-тестов сервисов.
package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/bigkaa/componentor/internal/domain/model"
	"github.com/bigkaa/componentor/internal/domain/search"
	"github.com/bigkaa/componentor/internal/domain/validation"
	"github.com/bigkaa/componentor/internal/repository"
)

// errStorage — имитация сбоя хранилища.
var errStorage = errors.New("connection reset by peer")

// memState — содержимое таблиц в порядке вставки.
type memState struct {
	materials  []model.Material
	parts      []model.Part
	assemblies []model.Assembly
	lines      []model.AssemblyPart
}

func (s memState) clone() memState {
	return memState{
		materials:  append([]model.Material(nil), s.materials...),
		parts:      append([]model.Part(nil), s.parts...),
		assemblies: append([]model.Assembly(nil), s.assemblies...),
		lines:      append([]model.AssemblyPart(nil), s.lines...),
	}
}

// memDB — in-memory база с внешними ключами и откатом транзакций.
type memDB struct {
	state memState
	clock time.Time
	// fail — операции, возвращающие errStorage ("materials.delete", ...)
	fail map[string]bool
	// hideDependents — счётчики зависимых всегда возвращают 0
	hideDependents bool
	// txCount — число выполненных транзакций
	txCount int
}

func newMemDB() *memDB {
	return &memDB{
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		fail:  map[string]bool{},
	}
}

func (db *memDB) now() time.Time {
	db.clock = db.clock.Add(time.Millisecond)
	return db.clock
}

func (db *memDB) check(op string) error {
	if db.fail[op] {
		return errStorage
	}
	return nil
}

func (db *memDB) stores() *repository.Stores {
	return &repository.Stores{
		Materials:     &memMaterials{db: db},
		Parts:         &memParts{db: db},
		Assemblies:    &memAssemblies{db: db},
		AssemblyParts: &memLines{db: db},
	}
}

// WithinTx выполняет fn и откатывает состояние при ошибке.
func (db *memDB) WithinTx(_ context.Context, fn func(stores *repository.Stores) error) error {
	db.txCount++
	snapshot := db.state.clone()
	if err := fn(db.stores()); err != nil {
		db.state = snapshot
		return err
	}
	return nil
}

func (db *memDB) materialName(id string) (string, bool) {
	for _, m := range db.state.materials {
		if m.ID == id {
			return m.Name, true
		}
	}
	return "", false
}

// --- materials ---

type memMaterials struct{ db *memDB }

func (r *memMaterials) Create(_ context.Context, m *model.Material) error {
	if err := r.db.check("materials.create"); err != nil {
		return err
	}
	m.CreatedAt = r.db.now()
	m.UpdatedAt = m.CreatedAt
	r.db.state.materials = append(r.db.state.materials, *m)
	return nil
}

func (r *memMaterials) GetByID(_ context.Context, id string) (*model.Material, error) {
	for _, m := range r.db.state.materials {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memMaterials) LockByID(ctx context.Context, id string) error {
	_, err := r.GetByID(ctx, id)
	return err
}

func (r *memMaterials) List(_ context.Context, query string) ([]*model.Material, error) {
	if err := r.db.check("materials.list"); err != nil {
		return nil, err
	}
	out := make([]*model.Material, 0)
	for _, m := range r.db.state.materials {
		if search.Matches(query, m.Name) {
			out = append(out, &m)
		}
	}
	return out, nil
}

func (r *memMaterials) Update(_ context.Context, m *model.Material) error {
	for i, cur := range r.db.state.materials {
		if cur.ID == m.ID {
			m.CreatedAt = cur.CreatedAt
			m.UpdatedAt = r.db.now()
			r.db.state.materials[i] = *m
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memMaterials) Delete(_ context.Context, id string) error {
	if err := r.db.check("materials.delete"); err != nil {
		return err
	}
	for _, p := range r.db.state.parts {
		if p.MaterialID == id {
			return repository.ErrReferenced
		}
	}
	for i, m := range r.db.state.materials {
		if m.ID == id {
			r.db.state.materials = append(r.db.state.materials[:i:i], r.db.state.materials[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// --- parts ---

type memParts struct{ db *memDB }

func (r *memParts) withMaterial(p model.Part) *model.Part {
	p.MaterialName, _ = r.db.materialName(p.MaterialID)
	return &p
}

func (r *memParts) Create(_ context.Context, p *model.Part) error {
	if _, ok := r.db.materialName(p.MaterialID); !ok {
		return repository.ErrReferenced
	}
	p.CreatedAt = r.db.now()
	p.UpdatedAt = p.CreatedAt
	r.db.state.parts = append(r.db.state.parts, *p)
	return nil
}

func (r *memParts) GetByID(_ context.Context, id string) (*model.Part, error) {
	if err := r.db.check("parts.get"); err != nil {
		return nil, err
	}
	for _, p := range r.db.state.parts {
		if p.ID == id {
			return r.withMaterial(p), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memParts) LockByID(ctx context.Context, id string) error {
	_, err := r.GetByID(ctx, id)
	return err
}

func (r *memParts) List(_ context.Context, query string) ([]*model.Part, error) {
	out := make([]*model.Part, 0)
	for _, p := range r.db.state.parts {
		if search.Matches(query, p.Designation, p.Name) {
			out = append(out, r.withMaterial(p))
		}
	}
	return out, nil
}

func (r *memParts) ListByMaterial(_ context.Context, materialID string) ([]*model.Part, error) {
	out := make([]*model.Part, 0)
	for _, p := range r.db.state.parts {
		if p.MaterialID == materialID {
			out = append(out, r.withMaterial(p))
		}
	}
	return out, nil
}

func (r *memParts) CountByMaterial(_ context.Context, materialID string) (int, error) {
	if r.db.hideDependents {
		return 0, nil
	}
	n := 0
	for _, p := range r.db.state.parts {
		if p.MaterialID == materialID {
			n++
		}
	}
	return n, nil
}

func (r *memParts) Update(_ context.Context, p *model.Part) error {
	if _, ok := r.db.materialName(p.MaterialID); !ok {
		return repository.ErrReferenced
	}
	for i, cur := range r.db.state.parts {
		if cur.ID == p.ID {
			p.CreatedAt = cur.CreatedAt
			p.UpdatedAt = r.db.now()
			r.db.state.parts[i] = *p
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memParts) Delete(_ context.Context, id string) error {
	for _, l := range r.db.state.lines {
		if l.PartID == id {
			return repository.ErrReferenced
		}
	}
	for i, p := range r.db.state.parts {
		if p.ID == id {
			r.db.state.parts = append(r.db.state.parts[:i:i], r.db.state.parts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// --- assemblies ---

type memAssemblies struct{ db *memDB }

func (r *memAssemblies) Create(_ context.Context, a *model.Assembly) error {
	a.CreatedAt = r.db.now()
	a.UpdatedAt = a.CreatedAt
	r.db.state.assemblies = append(r.db.state.assemblies, *a)
	return nil
}

func (r *memAssemblies) GetByID(_ context.Context, id string) (*model.Assembly, error) {
	for _, a := range r.db.state.assemblies {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memAssemblies) List(_ context.Context, query string) ([]*model.Assembly, error) {
	out := make([]*model.Assembly, 0)
	for _, a := range r.db.state.assemblies {
		if search.Matches(query, a.Designation, a.Name) {
			out = append(out, &a)
		}
	}
	return out, nil
}

func (r *memAssemblies) Update(_ context.Context, a *model.Assembly) error {
	for i, cur := range r.db.state.assemblies {
		if cur.ID == a.ID {
			a.CreatedAt = cur.CreatedAt
			a.UpdatedAt = r.db.now()
			r.db.state.assemblies[i] = *a
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memAssemblies) Delete(_ context.Context, id string) error {
	for i, a := range r.db.state.assemblies {
		if a.ID == id {
			r.db.state.assemblies = append(r.db.state.assemblies[:i:i], r.db.state.assemblies[i+1:]...)
			kept := r.db.state.lines[:0:0]
			for _, l := range r.db.state.lines {
				if l.AssemblyID != id {
					kept = append(kept, l)
				}
			}
			r.db.state.lines = kept
			return nil
		}
	}
	return repository.ErrNotFound
}

// --- assembly_parts ---

type memLines struct{ db *memDB }

func (r *memLines) partExists(id string) bool {
	for _, p := range r.db.state.parts {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (r *memLines) Create(_ context.Context, ap *model.AssemblyPart) error {
	if err := r.db.check("lines.create"); err != nil {
		return err
	}
	if !r.partExists(ap.PartID) {
		return repository.ErrReferenced
	}
	ap.CreatedAt = r.db.now()
	ap.UpdatedAt = ap.CreatedAt
	r.db.state.lines = append(r.db.state.lines, *ap)
	return nil
}

func (r *memLines) GetByID(_ context.Context, id string) (*model.AssemblyPart, error) {
	for _, l := range r.db.state.lines {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memLines) Update(_ context.Context, ap *model.AssemblyPart) error {
	if !r.partExists(ap.PartID) {
		return repository.ErrReferenced
	}
	for i, cur := range r.db.state.lines {
		if cur.ID == ap.ID {
			ap.AssemblyID = cur.AssemblyID
			ap.CreatedAt = cur.CreatedAt
			ap.UpdatedAt = r.db.now()
			r.db.state.lines[i] = *ap
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memLines) Delete(_ context.Context, id string) error {
	for i, l := range r.db.state.lines {
		if l.ID == id {
			r.db.state.lines = append(r.db.state.lines[:i:i], r.db.state.lines[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memLines) line(l model.AssemblyPart) *model.AssemblyLine {
	out := &model.AssemblyLine{AssemblyPart: l}
	for _, p := range r.db.state.parts {
		if p.ID == l.PartID {
			out.PartDesignation = p.Designation
			out.PartName = p.Name
			out.MaterialID = p.MaterialID
			out.MaterialName, _ = r.db.materialName(p.MaterialID)
		}
	}
	for _, a := range r.db.state.assemblies {
		if a.ID == l.AssemblyID {
			out.AssemblyDesignation = a.Designation
			out.AssemblyName = a.Name
		}
	}
	return out
}

func (r *memLines) ListByAssembly(_ context.Context, assemblyID string) ([]*model.AssemblyLine, error) {
	out := make([]*model.AssemblyLine, 0)
	for _, l := range r.db.state.lines {
		if l.AssemblyID == assemblyID {
			out = append(out, r.line(l))
		}
	}
	return out, nil
}

func (r *memLines) ListByPart(_ context.Context, partID string) ([]*model.AssemblyLine, error) {
	out := make([]*model.AssemblyLine, 0)
	for _, l := range r.db.state.lines {
		if l.PartID == partID {
			out = append(out, r.line(l))
		}
	}
	return out, nil
}

func (r *memLines) CountByPart(_ context.Context, partID string) (int, error) {
	if r.db.hideDependents {
		return 0, nil
	}
	n := 0
	for _, l := range r.db.state.lines {
		if l.PartID == partID {
			n++
		}
	}
	return n, nil
}

// --- сборка сервисов поверх memDB ---

type testCatalog struct {
	db         *memDB
	materials  *MaterialService
	parts      *PartService
	assemblies *AssemblyService
}

func newTestCatalog() *testCatalog {
	db := newMemDB()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	v := validation.New()
	stores := db.stores()
	return &testCatalog{
		db:         db,
		materials:  NewMaterialService(stores, db, v, logger),
		parts:      NewPartService(stores, db, v, logger),
		assemblies: NewAssemblyService(stores, db, v, logger),
	}
}
