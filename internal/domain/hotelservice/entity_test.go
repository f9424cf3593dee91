//go:build unit

package hotelservice_test

import (
	"strings"
	"testing"

	"hotel-booking/internal/domain/hotelservice"
	"hotel-booking/internal/domain/shared/money"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, title string) *hotelservice.Service {
	t.Helper()
	svc, err := hotelservice.NewService(uuid.New(), title, "Описание услуги", money.Must("150.00"))
	require.NoError(t, err)
	return svc
}

func TestNewService(t *testing.T) {
	t.Run("valid service", func(t *testing.T) {
		svc, err := hotelservice.NewService(uuid.New(), "  Уборка  ", "Ежедневная уборка", money.Must("150.00"))
		require.NoError(t, err)
		assert.Equal(t, "Уборка", svc.Title())
	})

	t.Run("title length bounds", func(t *testing.T) {
		_, err := hotelservice.NewService(uuid.New(), "ab", "Описание", money.Must("1.00"))
		assert.ErrorIs(t, err, hotelservice.ErrInvalidTitle)

		_, err = hotelservice.NewService(uuid.New(), strings.Repeat("a", 21), "Описание", money.Must("1.00"))
		assert.ErrorIs(t, err, hotelservice.ErrInvalidTitle)
	})

	t.Run("description length bounds", func(t *testing.T) {
		_, err := hotelservice.NewService(uuid.New(), "Уборка", "ab", money.Must("1.00"))
		assert.ErrorIs(t, err, hotelservice.ErrInvalidDescription)

		_, err = hotelservice.NewService(uuid.New(), "Уборка", strings.Repeat("a", 101), money.Must("1.00"))
		assert.ErrorIs(t, err, hotelservice.ErrInvalidDescription)
	})

	t.Run("price must be positive", func(t *testing.T) {
		_, err := hotelservice.NewService(uuid.New(), "Уборка", "Описание", money.FromKopecks(0))
		assert.ErrorIs(t, err, hotelservice.ErrNonPositivePrice)
	})
}

func TestSet(t *testing.T) {
	t.Run("duplicates by title rejected", func(t *testing.T) {
		_, err := hotelservice.NewSet(newService(t, "Уборка"), newService(t, "Уборка"))
		assert.ErrorIs(t, err, hotelservice.ErrDuplicateService)
	})

	t.Run("items are sorted by title", func(t *testing.T) {
		set, err := hotelservice.NewSet(newService(t, "Ужин"), newService(t, "Завтрак"), newService(t, "Обед"))
		require.NoError(t, err)

		assert.Equal(t, 3, set.Len())
		assert.Equal(t, []string{"Завтрак", "Обед", "Ужин"}, set.Titles())
	})

	t.Run("empty set is valid", func(t *testing.T) {
		set, err := hotelservice.NewSet()
		require.NoError(t, err)
		assert.Equal(t, 0, set.Len())
	})

	t.Run("covers resolved titles", func(t *testing.T) {
		set, err := hotelservice.NewSet(newService(t, "Завтрак"), newService(t, "Уборка"))
		require.NoError(t, err)

		assert.NoError(t, set.Covers([]string{"Уборка", "Завтрак"}))
		assert.ErrorIs(t, set.Covers([]string{"Уборка", "Массаж"}), hotelservice.ErrUnknownServiceTitle)
	})
}
