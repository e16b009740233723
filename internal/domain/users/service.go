package users

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"vet-clinic/internal/domain/access"
	"vet-clinic/internal/domain/records"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/platform/pagination"
	"vet-clinic/internal/platform/textsearch"
	"vet-clinic/internal/ports/auth"

	"github.com/google/uuid"
)

const MinPasswordLength = 6

var (
	ErrNotFound            = records.ErrNotFound
	ErrMissingFields       = errors.New("all fields except phone are required")
	ErrMissingEditFields   = errors.New("email, full name and role are required")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrPasswordTooShort    = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrUnknownRole         = errors.New("role must be administrator or veterinarian")
	ErrInvalidEmail        = errors.New("email is not valid")
	ErrFieldTooLong        = errors.New("username up to 45, email and full name up to 100, phone up to 15 characters")
	ErrSelfDelete          = errors.New("you cannot delete your own account")
	ErrBootstrapIncomplete = errors.New("bootstrap admin requires username and password")
)

// UsernameTakenError se devuelve cuando el nombre de usuario ya existe.
type UsernameTakenError struct {
	Username string
}

func (e *UsernameTakenError) Error() string {
	return fmt.Sprintf("username %q already exists", e.Username)
}

type CreateInput struct {
	Username string
	Password string
	Confirm  string
	Email    string
	Phone    string
	FullName string
	Role     string
}

// UpdateInput: Password vacío deja la clave como está.
type UpdateInput struct {
	Email    string
	Phone    string
	FullName string
	Role     string
	Password string
	Confirm  string
}

type Service struct {
	repo   Repository
	hasher auth.PasswordHasher
	log    logger.Logger
	newID  func() string
}

func NewService(repo Repository, hasher auth.PasswordHasher, log logger.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		repo:   repo,
		hasher: hasher,
		log:    log.With(logger.Fields{"kind": "users"}),
		newID:  uuid.NewString,
	}
}

func (s *Service) List(ctx context.Context, query string, page int) (pagination.Page[User], error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("list failed", logger.Fields{"err": err})
		return pagination.Page[User]{}, err
	}

	query = strings.TrimSpace(query)
	if query != "" {
		filtered := items[:0]
		for _, u := range items {
			if textsearch.AnyContains([]string{u.Username, u.FullName, u.Email, string(u.Role)}, query) {
				filtered = append(filtered, u)
			}
		}
		items = filtered
	}

	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Username) < strings.ToLower(items[j].Username)
	})
	return pagination.Paginate(items, page, pagination.PageSize), nil
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) FindByUsername(ctx context.Context, username string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return User{}, ErrNotFound
	}
	return s.repo.GetByUsername(ctx, username)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.FullName = strings.TrimSpace(in.FullName)

	if in.Username == "" || in.Password == "" || in.Confirm == "" ||
		in.Email == "" || in.FullName == "" || strings.TrimSpace(in.Role) == "" {
		return User{}, ErrMissingFields
	}
	if err := checkPassword(in.Password, in.Confirm); err != nil {
		return User{}, err
	}

	role, err := checkProfile(in.Email, in.FullName, in.Phone, in.Role)
	if err != nil {
		return User{}, err
	}
	if utf8.RuneCountInString(in.Username) > 45 {
		return User{}, ErrFieldTooLong
	}

	if _, err := s.repo.GetByUsername(ctx, in.Username); err == nil {
		return User{}, &UsernameTakenError{Username: in.Username}
	} else if !errors.Is(err, ErrNotFound) {
		s.log.Error("lookup failed", logger.Fields{"err": err})
		return User{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return User{}, err
	}

	u := User{
		ID:           s.newID(),
		Username:     in.Username,
		PasswordHash: hash,
		Email:        in.Email,
		Phone:        in.Phone,
		FullName:     in.FullName,
		Role:         role,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, s.storeError("create", u.Username, err)
	}

	s.log.Info("user created", logger.Fields{"username": u.Username, "role": string(u.Role)})
	return u, nil
}

// Update cambia perfil y rol; el username no se edita.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (User, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return User{}, err
	}

	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.FullName = strings.TrimSpace(in.FullName)

	if in.Email == "" || in.FullName == "" || strings.TrimSpace(in.Role) == "" {
		return User{}, ErrMissingEditFields
	}
	role, err := checkProfile(in.Email, in.FullName, in.Phone, in.Role)
	if err != nil {
		return User{}, err
	}

	updated := current
	updated.Email = in.Email
	updated.Phone = in.Phone
	updated.FullName = in.FullName
	updated.Role = role

	if in.Password != "" || in.Confirm != "" {
		if err := checkPassword(in.Password, in.Confirm); err != nil {
			return User{}, err
		}
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return User{}, err
		}
		updated.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return User{}, s.storeError("update", updated.Username, err)
	}
	return updated, nil
}

// CanDelete resuelve el usuario y rechaza borrar la cuenta de la sesión.
func (s *Service) CanDelete(ctx context.Context, id, actorUsername string) (User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return User{}, err
	}
	if strings.EqualFold(u.Username, strings.TrimSpace(actorUsername)) {
		return User{}, ErrSelfDelete
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id, actorUsername string) (User, error) {
	u, err := s.CanDelete(ctx, id, actorUsername)
	if err != nil {
		return User{}, err
	}
	if err := s.repo.Delete(ctx, u.ID); err != nil {
		return User{}, s.storeError("delete", u.Username, err)
	}
	s.log.Info("user deleted", logger.Fields{"username": u.Username, "by": actorUsername})
	return u, nil
}

// Bootstrap crea un administrador cuando no existe ningún usuario.
func (s *Service) Bootstrap(ctx context.Context, in CreateInput) (bool, error) {
	if strings.TrimSpace(in.Username) == "" || in.Password == "" {
		return false, ErrBootstrapIncomplete
	}
	n, err := s.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	in.Confirm = in.Password
	in.Role = string(access.RoleAdministrator)
	if _, err := s.Create(ctx, in); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) storeError(op, username string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return err
	}
	var conflict *records.ConflictError
	if errors.As(err, &conflict) {
		return &UsernameTakenError{Username: username}
	}
	s.log.Error(op+" failed", logger.Fields{"err": err})
	return err
}

func checkPassword(password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

func checkProfile(email, fullName, phone, rawRole string) (access.Role, error) {
	role, ok := access.ParseRole(rawRole)
	if !ok {
		return "", ErrUnknownRole
	}
	if err := records.Validator().Var(email, "email"); err != nil {
		return "", ErrInvalidEmail
	}
	if utf8.RuneCountInString(email) > 100 || utf8.RuneCountInString(fullName) > 100 ||
		utf8.RuneCountInString(phone) > 15 {
		return "", ErrFieldTooLong
	}
	return role, nil
}
