package hotelservice

import (
	"errors"
	"slices"
	"strings"
	"unicode/utf8"

	"hotel-booking/internal/domain/shared/money"

	"github.com/google/uuid"
)

var (
	ErrInvalidTitle        = errors.New("service title must be 3-20 characters")
	ErrInvalidDescription  = errors.New("service description must be 3-100 characters")
	ErrNonPositivePrice    = errors.New("service price per day must be positive")
	ErrDuplicateService    = errors.New("service already applied to the booking")
	ErrUnknownServiceTitle = errors.New("unknown service title")
)

const (
	MinTitleLength       = 3
	MaxTitleLength       = 20
	MinDescriptionLength = 3
	MaxDescriptionLength = 100
)

// Service is an add-on hotel service (cleaning, breakfast, ...). Reference
// data; a booking bills each applied service for the full stay length.
type Service struct {
	id          uuid.UUID
	title       string
	description string
	pricePerDay money.Money
}

func NewService(id uuid.UUID, title, description string, pricePerDay money.Money) (*Service, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if l := utf8.RuneCountInString(title); l < MinTitleLength || l > MaxTitleLength {
		return nil, ErrInvalidTitle
	}
	if l := utf8.RuneCountInString(description); l < MinDescriptionLength || l > MaxDescriptionLength {
		return nil, ErrInvalidDescription
	}
	if !pricePerDay.IsPositive() {
		return nil, ErrNonPositivePrice
	}
	return &Service{
		id:          id,
		title:       title,
		description: description,
		pricePerDay: pricePerDay,
	}, nil
}

func (s *Service) ID() uuid.UUID            { return s.id }
func (s *Service) Title() string            { return s.title }
func (s *Service) Description() string      { return s.description }
func (s *Service) PricePerDay() money.Money { return s.pricePerDay }

// Set is a collection of services deduplicated by title. Order is irrelevant
// for pricing.
type Set struct {
	items map[string]*Service
}

func NewSet(services ...*Service) (Set, error) {
	set := Set{items: make(map[string]*Service, len(services))}
	for _, svc := range services {
		if _, ok := set.items[svc.title]; ok {
			return Set{}, ErrDuplicateService
		}
		set.items[svc.title] = svc
	}
	return set, nil
}

func (s Set) Len() int {
	return len(s.items)
}

// Items returns the services sorted by title for stable iteration.
func (s Set) Items() []*Service {
	out := make([]*Service, 0, len(s.items))
	for _, svc := range s.items {
		out = append(out, svc)
	}
	slices.SortFunc(out, func(a, b *Service) int {
		return strings.Compare(a.title, b.title)
	})
	return out
}

// Covers verifies every requested title resolved into the set.
func (s Set) Covers(titles []string) error {
	for _, title := range titles {
		if _, ok := s.items[title]; !ok {
			return ErrUnknownServiceTitle
		}
	}
	return nil
}

func (s Set) Titles() []string {
	items := s.Items()
	titles := make([]string, len(items))
	for i, svc := range items {
		titles[i] = svc.title
	}
	return titles
}
