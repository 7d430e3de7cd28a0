// Package jsonstore es el driver canónico de persistencia: ficheros JSON
// planos guardados tras cada mutación, con un candado por grupo de
// colecciones y espera acotada para adquirirlo. Con directorio vacío el
// store es volátil (solo memoria), el modo que usan los tests.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/globalia/stock-api/internal/domain"
	"github.com/globalia/stock-api/internal/domain/entity"
)

// Ficheros de datos dentro del directorio del store.
const (
	ficheroAlmacen   = "datos_almacen.json"
	ficheroPrevision = "prevision.json"
	ficheroModelos   = "modelos.json"
	ficheroTalleres  = "talleres.json"
	ficheroClientes  = "clientes.json"
)

// LockWaitDefault espera máxima por el candado de un grupo.
const LockWaitDefault = 5 * time.Second

// almacenData libro de movimientos + tabla de stock (un solo candado).
// Los valores de la tabla son `any`: la basura heredada se conserva tal
// cual hasta que el saneador decida.
type almacenData struct {
	Almacen   map[string]map[string]any `json:"almacen"`
	Historial []entity.Movement         `json:"historial"`
	NextSeq   int64                     `json:"next_seq"`
}

// previsionData libro de previsión (su propio candado).
type previsionData struct {
	Pendientes         []entity.PendingOrder     `json:"pendientes"`
	Fabricacion        []entity.FabricationOrder `json:"fabricacion"`
	NextIdxPendientes  int64                     `json:"next_idx_pendientes"`
	NextIdxFabricacion int64                     `json:"next_idx_fabricacion"`
}

// catalogoData maestro de modelos, talleres y clientes (candado propio,
// repartido en tres ficheros en disco).
type catalogoData struct {
	Modelos  map[string]entity.ModelInfo
	Talleres []entity.Workshop
	Clientes []entity.Client
}

// Store estado en memoria más los candados. Toda lectura o mutación pasa
// por conAlmacen / conPrevision / conCatalogo. Cada grupo lleva dos
// guardias: el semáforo serializa el ciclo leer-modificar-persistir de los
// escritores con espera acotada, y el RWMutex protege el estado en memoria.
// Los lectores solo toman la parte compartida del RWMutex, así que nunca
// compiten por el semáforo ni pueden agotar su espera.
type Store struct {
	dir      string
	lockWait time.Duration
	closed   atomic.Bool

	semAlmacen   chan struct{}
	semPrevision chan struct{}
	semCatalogo  chan struct{}

	muAlmacen   sync.RWMutex
	muPrevision sync.RWMutex
	muCatalogo  sync.RWMutex

	almacen   almacenData
	prevision previsionData
	catalogo  catalogoData
}

// Open carga (o inicializa) el store del directorio dado. Directorio vacío
// = store volátil. lockWait <= 0 usa LockWaitDefault.
func Open(dir string, lockWait time.Duration) (*Store, error) {
	if lockWait <= 0 {
		lockWait = LockWaitDefault
	}
	s := &Store{
		dir:          dir,
		lockWait:     lockWait,
		semAlmacen:   make(chan struct{}, 1),
		semPrevision: make(chan struct{}, 1),
		semCatalogo:  make(chan struct{}, 1),
	}
	s.almacen.Almacen = make(map[string]map[string]any)
	s.catalogo.Modelos = make(map[string]entity.ModelInfo)

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio de datos: %w", err)
		}
		if err := cargar(filepath.Join(dir, ficheroAlmacen), &s.almacen); err != nil {
			return nil, err
		}
		if err := cargar(filepath.Join(dir, ficheroPrevision), &s.prevision); err != nil {
			return nil, err
		}
		if err := cargar(filepath.Join(dir, ficheroModelos), &s.catalogo.Modelos); err != nil {
			return nil, err
		}
		if err := cargar(filepath.Join(dir, ficheroTalleres), &s.catalogo.Talleres); err != nil {
			return nil, err
		}
		if err := cargar(filepath.Join(dir, ficheroClientes), &s.catalogo.Clientes); err != nil {
			return nil, err
		}
	}
	if s.almacen.Almacen == nil {
		s.almacen.Almacen = make(map[string]map[string]any)
	}
	if s.catalogo.Modelos == nil {
		s.catalogo.Modelos = make(map[string]entity.ModelInfo)
	}
	s.recuperarContadores()
	return s, nil
}

// recuperarContadores reconstruye los contadores monótonos desde los datos
// si el fichero viene de una versión que no los guardaba.
func (s *Store) recuperarContadores() {
	if s.almacen.NextSeq == 0 {
		var max int64
		for _, m := range s.almacen.Historial {
			if m.Seq > max {
				max = m.Seq
			}
		}
		s.almacen.NextSeq = max + 1
	}
	if s.prevision.NextIdxPendientes == 0 {
		var max int64
		for _, p := range s.prevision.Pendientes {
			if p.Idx > max {
				max = p.Idx
			}
		}
		s.prevision.NextIdxPendientes = max + 1
	}
	if s.prevision.NextIdxFabricacion == 0 {
		var max int64
		for _, f := range s.prevision.Fabricacion {
			if f.Idx > max {
				max = f.Idx
			}
		}
		s.prevision.NextIdxFabricacion = max + 1
	}
}

// Close marca el store como cerrado; las operaciones posteriores devuelven
// ErrStoreClosed. Las mutaciones ya estaban en disco.
func (s *Store) Close() {
	s.closed.Store(true)
}

// acquire toma el candado del grupo con espera acotada.
func (s *Store) acquire(sem chan struct{}) error {
	if s.closed.Load() {
		return domain.ErrStoreClosed
	}
	t := time.NewTimer(s.lockWait)
	defer t.Stop()
	select {
	case sem <- struct{}{}:
		if s.closed.Load() {
			<-sem
			return domain.ErrStoreClosed
		}
		return nil
	case <-t.C:
		return domain.ErrLockTimeout
	}
}

func (s *Store) release(sem chan struct{}) {
	<-sem
}

// conAlmacen ejecuta fn con el grupo almacén. held indica que el llamante
// ya tiene semáforo y mutex (dentro del tx runner); mutado fuerza el flush.
func (s *Store) conAlmacen(held, mutado bool, fn func(d *almacenData) error) error {
	if held {
		return fn(&s.almacen)
	}
	if !mutado {
		return s.leer(&s.muAlmacen, func() error { return fn(&s.almacen) })
	}
	if err := s.acquire(s.semAlmacen); err != nil {
		return err
	}
	defer s.release(s.semAlmacen)
	s.muAlmacen.Lock()
	err := fn(&s.almacen)
	s.muAlmacen.Unlock()
	if err != nil {
		return err
	}
	return s.flushAlmacen()
}

func (s *Store) conPrevision(mutado bool, fn func(d *previsionData) error) error {
	if !mutado {
		return s.leer(&s.muPrevision, func() error { return fn(&s.prevision) })
	}
	if err := s.acquire(s.semPrevision); err != nil {
		return err
	}
	defer s.release(s.semPrevision)
	s.muPrevision.Lock()
	err := fn(&s.prevision)
	s.muPrevision.Unlock()
	if err != nil {
		return err
	}
	return s.flushPrevision()
}

func (s *Store) conCatalogo(mutado bool, fn func(d *catalogoData) error) error {
	if !mutado {
		return s.leer(&s.muCatalogo, func() error { return fn(&s.catalogo) })
	}
	if err := s.acquire(s.semCatalogo); err != nil {
		return err
	}
	defer s.release(s.semCatalogo)
	s.muCatalogo.Lock()
	err := fn(&s.catalogo)
	s.muCatalogo.Unlock()
	if err != nil {
		return err
	}
	return s.flushCatalogo()
}

// leer ejecuta fn bajo el candado compartido del grupo. Los lectores no
// pasan por el semáforo: esperan como mucho la mutación en curso.
func (s *Store) leer(mu *sync.RWMutex, fn func() error) error {
	if s.closed.Load() {
		return domain.ErrStoreClosed
	}
	mu.RLock()
	defer mu.RUnlock()
	return fn()
}

func (s *Store) flushAlmacen() error {
	return guardar(s.dir, ficheroAlmacen, &s.almacen)
}

func (s *Store) flushPrevision() error {
	return guardar(s.dir, ficheroPrevision, &s.prevision)
}

func (s *Store) flushCatalogo() error {
	if err := guardar(s.dir, ficheroModelos, s.catalogo.Modelos); err != nil {
		return err
	}
	if err := guardar(s.dir, ficheroTalleres, s.catalogo.Talleres); err != nil {
		return err
	}
	return guardar(s.dir, ficheroClientes, s.catalogo.Clientes)
}

// cargar deserializa el fichero sobre dst si existe.
func cargar(ruta string, dst any) error {
	data, err := os.ReadFile(ruta)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("leer %s: %w", ruta, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parsear %s: %w", ruta, err)
	}
	return nil
}

// guardar escribe el fichero de forma atómica (tmp + rename). En modo
// volátil no hace nada.
func guardar(dir, nombre string, v any) error {
	if dir == "" {
		return nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("serializar %s: %w", nombre, err)
	}
	tmp := filepath.Join(dir, nombre+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", nombre, err)
	}
	if err := os.Rename(tmp, filepath.Join(dir, nombre)); err != nil {
		return fmt.Errorf("renombrar %s: %w", nombre, err)
	}
	return nil
}

// clone copia profunda del grupo almacén, para el rollback del tx runner.
func (d *almacenData) clone() almacenData {
	c := almacenData{
		Almacen:   make(map[string]map[string]any, len(d.Almacen)),
		Historial: append([]entity.Movement(nil), d.Historial...),
		NextSeq:   d.NextSeq,
	}
	for modelo, tallas := range d.Almacen {
		m := make(map[string]any, len(tallas))
		for t, v := range tallas {
			m[t] = v
		}
		c.Almacen[modelo] = m
	}
	return c
}
