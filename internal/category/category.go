package category

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("category not found")
	ErrInUse    = errors.New("category is referenced by transactions")
	ErrInvalid  = errors.New("invalid category")
)

// Type tells income categories from expense categories.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Icon is a symbolic icon name drawn from a fixed set.
type Icon string

const (
	IconRestaurant     Icon = "restaurant"
	IconDirectionsCar  Icon = "directions_car"
	IconShoppingCart   Icon = "shopping_cart"
	IconReceipt        Icon = "receipt"
	IconMovie          Icon = "movie"
	IconLocalHospital  Icon = "local_hospital"
	IconSchool         Icon = "school"
	IconMoreHoriz      Icon = "more_horiz"
	IconAccountBalance Icon = "account_balance"
	IconCardGiftcard   Icon = "card_giftcard"
	IconTrendingUp     Icon = "trending_up"
	IconRedeem         Icon = "redeem"
	IconAttachMoney    Icon = "attach_money"

	// IconCategory is shown for stored icons that are no longer known.
	IconCategory Icon = "category"
)

var icons = []Icon{
	IconRestaurant, IconDirectionsCar, IconShoppingCart, IconReceipt, IconMovie,
	IconLocalHospital, IconSchool, IconMoreHoriz, IconAccountBalance, IconCardGiftcard,
	IconTrendingUp, IconRedeem, IconAttachMoney,
}

// Icons lists the selectable icons.
func Icons() []Icon {
	return append([]Icon(nil), icons...)
}

func (i Icon) Valid() bool {
	for _, known := range icons {
		if i == known {
			return true
		}
	}

	return false
}

// OrFallback returns i, or IconCategory when i is not a known icon.
func (i Icon) OrFallback() Icon {
	if i.Valid() {
		return i
	}

	return IconCategory
}

// Color is a 32-bit ARGB value. It is rendered as "#AARRGGBB" in text form.
type Color uint32

func (c Color) String() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText accepts "#AARRGGBB" or "#RRGGBB"; the latter is fully opaque.
func (c *Color) UnmarshalText(b []byte) error {
	s := strings.TrimPrefix(strings.TrimSpace(string(b)), "#")

	switch len(s) {
	case 6:
		s = "FF" + s
	case 8:
	default:
		return fmt.Errorf("%w: color %q", ErrInvalid, string(b))
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("%w: color %q", ErrInvalid, string(b))
	}

	*c = Color(v)

	return nil
}

// Category groups transactions of one type.
type Category struct {
	ID        uuid.UUID
	Name      string
	Icon      Icon
	Color     Color
	Type      Type
	CreatedAt time.Time
}
