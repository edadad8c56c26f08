package reconcile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingRequiredItems is matched by errors.Is for any MissingRequiredItemsError.
var ErrMissingRequiredItems = errors.New("missing required items")

// MissingRequiredItemsError lists the required items absent from a request.
type MissingRequiredItemsError struct {
	// Items are the names of the required items not selected with quantity >= 1.
	Items []string
}

func (e *MissingRequiredItemsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingRequiredItems, strings.Join(e.Items, ", "))
}

// Is makes errors.Is(err, ErrMissingRequiredItems) hold.
func (e *MissingRequiredItemsError) Is(target error) bool {
	return target == ErrMissingRequiredItems
}
