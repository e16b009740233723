package records

import (
	"context"
	"errors"
	"sort"
	"strings"

	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/platform/pagination"
	"vet-clinic/internal/platform/textsearch"

	"github.com/google/uuid"
)

type Service[T any] struct {
	desc  Descriptor[T]
	repo  Repository[T]
	log   logger.Logger
	newID func() string
}

func NewService[T any](desc Descriptor[T], repo Repository[T], log logger.Logger) *Service[T] {
	if log == nil {
		log = logger.Discard()
	}
	return &Service[T]{
		desc:  desc,
		repo:  repo,
		log:   log.With(logger.Fields{"kind": desc.Kind}),
		newID: uuid.NewString,
	}
}

func (s *Service[T]) Descriptor() Descriptor[T] { return s.desc }

// All devuelve todos los registros en su orden natural.
func (s *Service[T]) All(ctx context.Context) ([]T, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("list failed", logger.Fields{"err": err})
		return nil, err
	}
	if s.desc.Less != nil {
		sort.SliceStable(items, func(i, j int) bool { return s.desc.Less(items[i], items[j]) })
	}
	return items, nil
}

// List filtra por query (subcadena, sin distinguir mayúsculas) y pagina.
func (s *Service[T]) List(ctx context.Context, query string, page int) (pagination.Page[T], error) {
	items, err := s.All(ctx)
	if err != nil {
		return pagination.Page[T]{}, err
	}

	query = strings.TrimSpace(query)
	if query != "" && s.desc.SearchFields != nil {
		filtered := items[:0]
		for _, it := range items {
			if textsearch.AnyContains(s.desc.SearchFields(it), query) {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}

	return pagination.Paginate(items, page, pagination.PageSize), nil
}

func (s *Service[T]) Get(ctx context.Context, id string) (T, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		var zero T
		return zero, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service[T]) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *Service[T]) Create(ctx context.Context, v T) (T, error) {
	var zero T

	v = s.normalize(v)
	if err := s.validate(ctx, v, ""); err != nil {
		return zero, err
	}

	v = s.desc.WithID(v, s.newID())
	if err := s.repo.Create(ctx, v); err != nil {
		return zero, s.storeError("create", err)
	}

	s.log.Debug("record created", logger.Fields{"id": s.desc.ID(v)})
	return v, nil
}

// Update reemplaza el registro id conservando su identificador.
func (s *Service[T]) Update(ctx context.Context, id string, v T) (T, error) {
	var zero T

	current, err := s.Get(ctx, id)
	if err != nil {
		return zero, err
	}
	id = s.desc.ID(current)

	v = s.desc.WithID(s.normalize(v), id)
	if err := s.validate(ctx, v, id); err != nil {
		return zero, err
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return zero, s.storeError("update", err)
	}

	s.log.Debug("record updated", logger.Fields{"id": id})
	return v, nil
}

// Delete borra y devuelve el registro que existía.
func (s *Service[T]) Delete(ctx context.Context, id string) (T, error) {
	var zero T

	current, err := s.Get(ctx, id)
	if err != nil {
		return zero, err
	}
	if err := s.repo.Delete(ctx, s.desc.ID(current)); err != nil {
		return zero, s.storeError("delete", err)
	}

	s.log.Debug("record deleted", logger.Fields{"id": s.desc.ID(current)})
	return current, nil
}

// Validate corre las mismas reglas que Create/Update sin persistir.
func (s *Service[T]) Validate(ctx context.Context, v T, selfID string) error {
	return s.validate(ctx, s.normalize(v), selfID)
}

func (s *Service[T]) normalize(v T) T {
	if s.desc.Normalize == nil {
		return v
	}
	return s.desc.Normalize(v)
}

// validate corre las reglas de campo, las cruzadas y las de unicidad; selfID
// excluye al propio registro en una edición.
func (s *Service[T]) validate(ctx context.Context, v T, selfID string) error {
	errs := Struct(v, s.desc.Messages)

	if s.desc.Check != nil {
		more, err := s.desc.Check(ctx, v)
		if err != nil {
			s.log.Error("check failed", logger.Fields{"err": err})
			return err
		}
		errs.Merge(more)
	}

	if len(s.desc.Unique) > 0 {
		items, err := s.repo.List(ctx)
		if err != nil {
			s.log.Error("list failed", logger.Fields{"err": err})
			return err
		}
		for _, rule := range s.desc.Unique {
			if _, taken := errs[rule.Field]; taken {
				continue
			}
			want := strings.TrimSpace(rule.Value(v))
			if want == "" {
				continue
			}
			for _, it := range items {
				if s.desc.ID(it) == selfID {
					continue
				}
				if strings.EqualFold(strings.TrimSpace(rule.Value(it)), want) {
					errs.Add(rule.Field, rule.Message)
					break
				}
			}
		}
	}

	if errs.Empty() {
		return nil
	}
	s.log.Debug("validation failed", logger.Fields{"fields": len(errs)})
	return &ValidationError{Fields: errs}
}

// storeError convierte un conflicto del store en error de campo.
func (s *Service[T]) storeError(op string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return err
	}
	if _, ok := AsValidation(err); ok {
		return err
	}

	var conflict *ConflictError
	if errors.As(err, &conflict) {
		msg := "this value is already registered"
		for _, rule := range s.desc.Unique {
			if rule.Field == conflict.Field {
				msg = rule.Message
				break
			}
		}
		return &ValidationError{Fields: FieldErrors{conflict.Field: msg}}
	}

	s.log.Error(op+" failed", logger.Fields{"err": err})
	return err
}
