package cart

import "errors"

var ErrLineNotFound = errors.New("item not in cart")
